package temporal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxOffsetSeconds bounds the magnitude of an Offset (exclusive).
const MaxOffsetSeconds = 24 * 3600

// ErrOffsetOutOfRange is returned when an offset is 24 hours or more from UTC.
var ErrOffsetOutOfRange = errors.New("offset out of range")

// Offset is a signed difference between local time and UTC, to the second.
// It is used both as a UTC offset and as a daylight savings amount.
type Offset struct {
	seconds int32
}

// Zero is the UTC offset.
var Zero = Offset{}

// NewOffset validates and creates an offset of the given seconds.
func NewOffset(seconds int) (Offset, error) {
	if seconds <= -MaxOffsetSeconds || seconds >= MaxOffsetSeconds {
		return Offset{}, fmt.Errorf("%w: %d seconds", ErrOffsetOutOfRange, seconds)
	}
	return Offset{seconds: int32(seconds)}, nil
}

// MustOffset is like NewOffset but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustOffset(seconds int) Offset {
	o, err := NewOffset(seconds)
	if err != nil {
		panic(err)
	}
	return o
}

// OffsetFromHours returns an offset of whole hours. Panics if out of range.
func OffsetFromHours(hours int) Offset {
	return MustOffset(hours * 3600)
}

// OffsetFromHoursAndMinutes returns an offset of hours and minutes; both
// components carry the same sign. Panics if out of range.
func OffsetFromHoursAndMinutes(hours, minutes int) Offset {
	return MustOffset(hours*3600 + minutes*60)
}

// ParseOffset parses "+05", "-08:00", "+05:30", "+05:45:15" or "Z".
func ParseOffset(s string) (Offset, error) {
	if s == "Z" || s == "z" {
		return Zero, nil
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return Offset{}, fmt.Errorf("parse offset %q: missing sign", s)
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	parts := strings.Split(s[1:], ":")
	if len(parts) > 3 {
		return Offset{}, fmt.Errorf("parse offset %q: too many components", s)
	}
	total := 0
	scale := []int{3600, 60, 1}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || (i > 0 && v > 59) {
			return Offset{}, fmt.Errorf("parse offset %q: invalid component %q", s, p)
		}
		total += v * scale[i]
	}
	o, err := NewOffset(sign * total)
	if err != nil {
		return Offset{}, fmt.Errorf("parse offset %q: %w", s, err)
	}
	return o, nil
}

// Seconds returns the offset in seconds.
func (o Offset) Seconds() int {
	return int(o.seconds)
}

// Ticks returns the offset in ticks.
func (o Offset) Ticks() int64 {
	return int64(o.seconds) * TicksPerSecond
}

// Duration returns the offset as a Duration.
func (o Offset) Duration() Duration {
	return Duration(o.Ticks())
}

// Plus adds two offsets. Panics if the result is out of range.
func (o Offset) Plus(p Offset) Offset {
	return MustOffset(int(o.seconds) + int(p.seconds))
}

// Minus subtracts p from o. Panics if the result is out of range.
func (o Offset) Minus(p Offset) Offset {
	return MustOffset(int(o.seconds) - int(p.seconds))
}

// Negate returns -o.
func (o Offset) Negate() Offset {
	return Offset{seconds: -o.seconds}
}

// Compare returns -1, 0 or +1.
func (o Offset) Compare(p Offset) int {
	switch {
	case o.seconds < p.seconds:
		return -1
	case o.seconds > p.seconds:
		return 1
	}
	return 0
}

// MinOffset returns the smaller of a and b.
func MinOffset(a, b Offset) Offset {
	if a.seconds <= b.seconds {
		return a
	}
	return b
}

// MaxOffset returns the larger of a and b.
func MaxOffset(a, b Offset) Offset {
	if a.seconds >= b.seconds {
		return a
	}
	return b
}

// String formats o as +HH:MM, adding :SS when seconds are present.
func (o Offset) String() string {
	sign := '+'
	s := int(o.seconds)
	if s < 0 {
		sign = '-'
		s = -s
	}
	h, m, sec := s/3600, (s/60)%60, s%60
	if sec != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, sec)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}

// MarshalText implements encoding.TextMarshaler.
func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Offset) UnmarshalText(text []byte) error {
	v, err := ParseOffset(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
