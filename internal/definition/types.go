package definition

// Zone kinds.
const (
	KindFixed         = "fixed"
	KindDaylight      = "daylight"
	KindPrecalculated = "precalculated"
)

// Zone is a declarative zone definition. Which fields apply depends on Kind.
type Zone struct {
	ID   string `json:"id" yaml:"id"`
	Kind string `json:"kind" yaml:"kind"`

	// Offset is the single offset of a fixed zone.
	Offset string `json:"offset,omitempty" yaml:"offset,omitempty"`

	// Standard and Rules describe a daylight zone.
	Standard string `json:"standard,omitempty" yaml:"standard,omitempty"`
	Rules    []Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	// Periods and Tail describe a precalculated zone. Tail takes over at the
	// end of the last period and has no ID of its own.
	Periods []Period `json:"periods,omitempty" yaml:"periods,omitempty"`
	Tail    *Zone    `json:"tail,omitempty" yaml:"tail,omitempty"`
}

// Rule is one yearly transition of a daylight zone.
type Rule struct {
	Name    string `json:"name" yaml:"name"`
	Savings string `json:"savings" yaml:"savings"`
	Month   int    `json:"month" yaml:"month"`
	// Day is the day of month; negative values count back from the end.
	Day int `json:"day" yaml:"day"`
	// Weekday, when set, moves the transition to that weekday on or before
	// Day, or on or after it with OnOrAfter.
	Weekday   string `json:"weekday,omitempty" yaml:"weekday,omitempty"`
	OnOrAfter bool   `json:"on_or_after,omitempty" yaml:"on_or_after,omitempty"`
	At        string `json:"at" yaml:"at"`
	// Mode is "wall" (default), "standard" or "utc".
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`
	// From and To bound the years the rule fires in; nil is open.
	From *int `json:"from,omitempty" yaml:"from,omitempty"`
	To   *int `json:"to,omitempty" yaml:"to,omitempty"`
}

// Period is one explicit interval of a precalculated zone. An empty Start
// or End is unbounded.
type Period struct {
	Name    string `json:"name" yaml:"name"`
	Start   string `json:"start,omitempty" yaml:"start,omitempty"`
	End     string `json:"end,omitempty" yaml:"end,omitempty"`
	Offset  string `json:"offset" yaml:"offset"`
	Savings string `json:"savings,omitempty" yaml:"savings,omitempty"`
}

// Set is the top level of a definitions file.
type Set struct {
	Zones []Zone `json:"zones" yaml:"zones"`
}

// Lookup returns the zone with the given ID.
func (s Set) Lookup(id string) (Zone, bool) {
	for _, z := range s.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}
