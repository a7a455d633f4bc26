// Package compiler turns CUE zone definitions into definition.Zone values.
//
// Zones live under a top-level "zone" struct keyed by zone ID. Daylight rules
// are keyed by rule name; precalculated periods are an ordered list:
//
//	zone: "Test/Summer": {
//		kind:     "daylight"
//		standard: "+05:00"
//		rule: summer: {savings: "+01:00", month: 3, day: 10, at: "1:00"}
//		rule: winter: {month: 10, day: 5, at: "2:00"}
//	}
package compiler

import (
	"strconv"

	"cuelang.org/go/cue"

	"github.com/roach88/tzcore/internal/definition"
)

// CompileZones compiles every field of the "zone" struct in v, in
// declaration order. A missing "zone" struct yields an empty set.
func CompileZones(v cue.Value) (definition.Set, error) {
	var set definition.Set
	if err := v.Err(); err != nil {
		return set, formatCUEError("zone", err)
	}
	zones := v.LookupPath(cue.ParsePath("zone"))
	if !zones.Exists() {
		return set, nil
	}
	iter, err := zones.Fields()
	if err != nil {
		return set, formatCUEError("zone", err)
	}
	for iter.Next() {
		z, err := CompileZone(iter.Label(), iter.Value())
		if err != nil {
			return definition.Set{}, err
		}
		set.Zones = append(set.Zones, z)
	}
	return set, nil
}

// CompileZone compiles one zone struct. The result is not validated; pass
// it to definition.Validate.
func CompileZone(id string, v cue.Value) (definition.Zone, error) {
	z := definition.Zone{ID: id}
	if err := compileBody(&z, v, "zone."+id); err != nil {
		return definition.Zone{}, err
	}
	return z, nil
}

func compileBody(z *definition.Zone, v cue.Value, field string) error {
	if err := v.Err(); err != nil {
		return formatCUEError(field, err)
	}

	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return &CompileError{Field: field + ".kind", Message: "kind is required", Pos: v.Pos()}
	}
	var err error
	if z.Kind, err = kindVal.String(); err != nil {
		return formatCUEError(field+".kind", err)
	}
	if z.Offset, err = optString(v, "offset", field); err != nil {
		return err
	}
	if z.Standard, err = optString(v, "standard", field); err != nil {
		return err
	}
	if z.Rules, err = compileRules(v, field); err != nil {
		return err
	}
	if z.Periods, err = compilePeriods(v, field); err != nil {
		return err
	}

	if tailVal := v.LookupPath(cue.ParsePath("tail")); tailVal.Exists() {
		z.Tail = &definition.Zone{}
		if err := compileBody(z.Tail, tailVal, field+".tail"); err != nil {
			return err
		}
	}
	return nil
}

func compileRules(v cue.Value, field string) ([]definition.Rule, error) {
	rulesVal := v.LookupPath(cue.ParsePath("rule"))
	if !rulesVal.Exists() {
		return nil, nil
	}
	iter, err := rulesVal.Fields()
	if err != nil {
		return nil, formatCUEError(field+".rule", err)
	}

	var rules []definition.Rule
	for iter.Next() {
		rv := iter.Value()
		rf := field + ".rule." + iter.Label()
		r := definition.Rule{Name: iter.Label()}

		if r.Savings, err = optString(rv, "savings", rf); err != nil {
			return nil, err
		}
		if r.Month, err = reqInt(rv, "month", rf); err != nil {
			return nil, err
		}
		if r.Day, err = reqInt(rv, "day", rf); err != nil {
			return nil, err
		}
		if r.Weekday, err = optString(rv, "weekday", rf); err != nil {
			return nil, err
		}
		if r.OnOrAfter, err = optBool(rv, "on_or_after", rf); err != nil {
			return nil, err
		}
		if r.At, err = optString(rv, "at", rf); err != nil {
			return nil, err
		}
		if r.Mode, err = optString(rv, "mode", rf); err != nil {
			return nil, err
		}
		if r.From, err = optIntPtr(rv, "from", rf); err != nil {
			return nil, err
		}
		if r.To, err = optIntPtr(rv, "to", rf); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func compilePeriods(v cue.Value, field string) ([]definition.Period, error) {
	periodsVal := v.LookupPath(cue.ParsePath("periods"))
	if !periodsVal.Exists() {
		return nil, nil
	}
	iter, err := periodsVal.List()
	if err != nil {
		return nil, formatCUEError(field+".periods", err)
	}

	var periods []definition.Period
	for i := 0; iter.Next(); i++ {
		pv := iter.Value()
		pf := field + ".periods[" + strconv.Itoa(i) + "]"
		var p definition.Period
		if p.Name, err = optString(pv, "name", pf); err != nil {
			return nil, err
		}
		if p.Start, err = optString(pv, "start", pf); err != nil {
			return nil, err
		}
		if p.End, err = optString(pv, "end", pf); err != nil {
			return nil, err
		}
		if p.Offset, err = optString(pv, "offset", pf); err != nil {
			return nil, err
		}
		if p.Savings, err = optString(pv, "savings", pf); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, nil
}
