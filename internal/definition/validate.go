package definition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/tzcore/internal/recurrence"
	"github.com/roach88/tzcore/internal/temporal"
)

// Validation error codes (Z100-Z199)
const (
	// General (Z100-Z103)
	ErrMissingID     = "Z101" // id is required
	ErrUnknownKind   = "Z102" // kind is not fixed, daylight or precalculated
	ErrInvalidOffset = "Z103" // offset string does not parse or is out of range
	ErrDuplicateID   = "Z104" // two zones in one set share an id

	// Daylight (Z110-Z119)
	ErrRuleCount    = "Z110" // daylight zones need exactly two rules
	ErrInvalidRule  = "Z111" // month, day, weekday, time or mode invalid
	ErrRuleWindow   = "Z112" // from year after to year
	ErrSameSavings  = "Z113" // both rules save the same amount
	ErrMisplacedKey = "Z114" // field does not apply to this kind

	// Precalculated (Z120-Z129)
	ErrNoPeriods       = "Z120" // at least one period required
	ErrInvalidInstant  = "Z121" // period start or end does not parse
	ErrPeriodOrder     = "Z122" // period empty or not contiguous with its predecessor
	ErrPeriodBounds    = "Z123" // first period bounded at start, or last period end disagrees with tail
	ErrInvalidTailKind = "Z124" // tail must be fixed or daylight
)

// ValidationError is one problem found in a zone definition.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a zone definition. It returns every error found rather
// than stopping at the first.
func Validate(z Zone) []ValidationError {
	var errs []ValidationError
	if strings.TrimSpace(z.ID) == "" {
		errs = append(errs, ValidationError{Field: "id", Message: "id is required", Code: ErrMissingID})
	}
	return append(errs, validateBody(z, "")...)
}

// ValidateSet validates every zone and rejects duplicate IDs.
func ValidateSet(s Set) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, z := range s.Zones {
		for _, e := range Validate(z) {
			e.Field = fmt.Sprintf("zones[%d].%s", i, e.Field)
			errs = append(errs, e)
		}
		if z.ID != "" && seen[z.ID] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("zones[%d].id", i),
				Message: fmt.Sprintf("duplicate zone id %q", z.ID),
				Code:    ErrDuplicateID,
			})
		}
		seen[z.ID] = true
	}
	return errs
}

// AsError joins validation errors into a single error, or nil.
func AsError(errs []ValidationError) error {
	all := make([]error, len(errs))
	for i, e := range errs {
		all[i] = e
	}
	return errors.Join(all...)
}

func validateBody(z Zone, prefix string) []ValidationError {
	switch z.Kind {
	case KindFixed:
		return validateFixed(z, prefix)
	case KindDaylight:
		return validateDaylight(z, prefix)
	case KindPrecalculated:
		return validatePrecalculated(z, prefix)
	}
	return []ValidationError{{
		Field:   prefix + "kind",
		Message: fmt.Sprintf("unknown kind %q, must be %q, %q or %q", z.Kind, KindFixed, KindDaylight, KindPrecalculated),
		Code:    ErrUnknownKind,
	}}
}

func validateOffset(field, s string, required bool) []ValidationError {
	if s == "" && !required {
		return nil
	}
	if _, err := temporal.ParseOffset(s); err != nil {
		return []ValidationError{{Field: field, Message: err.Error(), Code: ErrInvalidOffset}}
	}
	return nil
}

func misplaced(prefix string, fields map[string]bool) []ValidationError {
	var errs []ValidationError
	for _, name := range []string{"offset", "standard", "rules", "periods", "tail"} {
		if fields[name] {
			errs = append(errs, ValidationError{
				Field:   prefix + name,
				Message: fmt.Sprintf("%s does not apply to this kind", name),
				Code:    ErrMisplacedKey,
			})
		}
	}
	return errs
}

func validateFixed(z Zone, prefix string) []ValidationError {
	errs := validateOffset(prefix+"offset", z.Offset, true)
	return append(errs, misplaced(prefix, map[string]bool{
		"standard": z.Standard != "",
		"rules":    len(z.Rules) > 0,
		"periods":  len(z.Periods) > 0,
		"tail":     z.Tail != nil,
	})...)
}

func validateDaylight(z Zone, prefix string) []ValidationError {
	errs := validateOffset(prefix+"standard", z.Standard, true)
	errs = append(errs, misplaced(prefix, map[string]bool{
		"offset":  z.Offset != "",
		"periods": len(z.Periods) > 0,
		"tail":    z.Tail != nil,
	})...)

	if len(z.Rules) != 2 {
		return append(errs, ValidationError{
			Field:   prefix + "rules",
			Message: fmt.Sprintf("daylight zone needs exactly 2 rules, found %d", len(z.Rules)),
			Code:    ErrRuleCount,
		})
	}

	var rules []*recurrence.Recurrence
	for i, r := range z.Rules {
		field := fmt.Sprintf("%srules[%d]", prefix, i)
		if r.Savings != "" {
			if ruleErrs := validateOffset(field+".savings", r.Savings, false); len(ruleErrs) > 0 {
				errs = append(errs, ruleErrs...)
				continue
			}
		}
		rec, err := r.recurrence()
		switch {
		case errors.Is(err, recurrence.ErrInvalidWindow):
			errs = append(errs, ValidationError{Field: field, Message: err.Error(), Code: ErrRuleWindow})
		case err != nil:
			errs = append(errs, ValidationError{Field: field, Message: err.Error(), Code: ErrInvalidRule})
		default:
			rules = append(rules, rec)
		}
	}
	if len(rules) == 2 && rules[0].Savings() == rules[1].Savings() {
		errs = append(errs, ValidationError{
			Field:   prefix + "rules",
			Message: fmt.Sprintf("rules %q and %q both save %s", rules[0].Name(), rules[1].Name(), rules[0].Savings()),
			Code:    ErrSameSavings,
		})
	}
	return errs
}

func validatePrecalculated(z Zone, prefix string) []ValidationError {
	errs := misplaced(prefix, map[string]bool{
		"offset":   z.Offset != "",
		"standard": z.Standard != "",
		"rules":    len(z.Rules) > 0,
	})
	if len(z.Periods) == 0 {
		return append(errs, ValidationError{Field: prefix + "periods", Message: "at least one period is required", Code: ErrNoPeriods})
	}

	prevEnd := temporal.BeforeMinValue
	for i, p := range z.Periods {
		field := fmt.Sprintf("%speriods[%d]", prefix, i)
		errs = append(errs, validateOffset(field+".offset", p.Offset, true)...)
		errs = append(errs, validateOffset(field+".savings", p.Savings, false)...)

		start, err := parseBound(p.Start, temporal.BeforeMinValue)
		if err != nil {
			errs = append(errs, ValidationError{Field: field + ".start", Message: err.Error(), Code: ErrInvalidInstant})
			continue
		}
		end, err := parseBound(p.End, temporal.AfterMaxValue)
		if err != nil {
			errs = append(errs, ValidationError{Field: field + ".end", Message: err.Error(), Code: ErrInvalidInstant})
			continue
		}

		switch {
		case i == 0 && p.Start != "":
			errs = append(errs, ValidationError{Field: field + ".start", Message: "first period must be unbounded at start", Code: ErrPeriodBounds})
		case i > 0 && start != prevEnd:
			errs = append(errs, ValidationError{Field: field + ".start", Message: fmt.Sprintf("period starts at %s, previous ends at %s", start, prevEnd), Code: ErrPeriodOrder})
		}
		if !start.Before(end) {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("period ends at %s, not after its start %s", end, start), Code: ErrPeriodOrder})
		}
		if i < len(z.Periods)-1 && p.End == "" {
			errs = append(errs, ValidationError{Field: field + ".end", Message: "only the last period may be unbounded at end", Code: ErrPeriodBounds})
		}
		prevEnd = end
	}

	last := z.Periods[len(z.Periods)-1]
	switch {
	case z.Tail == nil && last.End != "":
		errs = append(errs, ValidationError{Field: prefix + "periods", Message: "last period must be unbounded at end when there is no tail", Code: ErrPeriodBounds})
	case z.Tail != nil && last.End == "":
		errs = append(errs, ValidationError{Field: prefix + "periods", Message: "last period must end where the tail takes over", Code: ErrPeriodBounds})
	}

	if z.Tail != nil {
		if z.Tail.Kind != KindFixed && z.Tail.Kind != KindDaylight {
			errs = append(errs, ValidationError{
				Field:   prefix + "tail.kind",
				Message: fmt.Sprintf("tail must be %q or %q, got %q", KindFixed, KindDaylight, z.Tail.Kind),
				Code:    ErrInvalidTailKind,
			})
		} else {
			errs = append(errs, validateBody(*z.Tail, prefix+"tail.")...)
		}
	}
	return errs
}
