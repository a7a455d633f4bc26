package definition

import (
	"fmt"

	"github.com/roach88/tzcore/internal/cache"
	"github.com/roach88/tzcore/internal/daylight"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

// Build validates z and materialises it. Non-fixed zones come back behind
// a cache.Map configured with opts.
func Build(z Zone, opts ...cache.Option) (zone.Map, error) {
	if errs := Validate(z); len(errs) > 0 {
		return nil, fmt.Errorf("zone %q: %w", z.ID, AsError(errs))
	}
	m, err := build(z)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", z.ID, err)
	}
	return cache.ForZone(m, opts...), nil
}

// BuildUncached is Build without the cache.
func BuildUncached(z Zone) (zone.Map, error) {
	if errs := Validate(z); len(errs) > 0 {
		return nil, fmt.Errorf("zone %q: %w", z.ID, AsError(errs))
	}
	return build(z)
}

func build(z Zone) (zone.Map, error) {
	switch z.Kind {
	case KindFixed:
		offset, err := parseOffset(z.Offset)
		if err != nil {
			return nil, err
		}
		return zone.NewFixed(z.ID, offset), nil

	case KindDaylight:
		standard, err := parseOffset(z.Standard)
		if err != nil {
			return nil, err
		}
		a, err := z.Rules[0].recurrence()
		if err != nil {
			return nil, err
		}
		b, err := z.Rules[1].recurrence()
		if err != nil {
			return nil, err
		}
		return daylight.New(standard, a, b)

	case KindPrecalculated:
		periods := make([]*zone.ZoneInterval, 0, len(z.Periods))
		for i, p := range z.Periods {
			iv, err := p.interval()
			if err != nil {
				return nil, fmt.Errorf("periods[%d]: %w", i, err)
			}
			periods = append(periods, iv)
		}
		var tail zone.Map
		if z.Tail != nil {
			var err error
			if tail, err = build(*z.Tail); err != nil {
				return nil, fmt.Errorf("tail: %w", err)
			}
		}
		return zone.NewPrecalculated(periods, tail)
	}
	return nil, fmt.Errorf("unknown kind %q", z.Kind)
}

func (p Period) interval() (*zone.ZoneInterval, error) {
	start, err := parseBound(p.Start, temporal.BeforeMinValue)
	if err != nil {
		return nil, err
	}
	end, err := parseBound(p.End, temporal.AfterMaxValue)
	if err != nil {
		return nil, err
	}
	offset, err := parseOffset(p.Offset)
	if err != nil {
		return nil, err
	}
	savings, err := parseOffset(p.Savings)
	if err != nil {
		return nil, err
	}
	return zone.NewZoneInterval(p.Name, start, end, offset, savings)
}
