package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tzcore/internal/cache"
	"github.com/roach88/tzcore/internal/definition"
	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

// ErrCodeUnresolvable is reported when --resolve rejects a local date-time.
const ErrCodeUnresolvable = "E014"

// resolvers maps --resolve values to policies.
var resolvers = map[string]zone.Resolver{
	"strict":  zone.StrictResolver,
	"lenient": zone.LenientResolver,
	"earlier": {Ambiguous: zone.ReturnEarlier, Gap: zone.ReturnStartOfLaterInterval},
	"later":   {Ambiguous: zone.ReturnLater, Gap: zone.ShiftForward},
}

// buildZone loads and builds one zone for a query command. The built cache
// is registered with col under the zone id.
func buildZone(formatter *OutputFormatter, col *cache.Collector, path, zoneID string) (zone.Map, error) {
	def, err := loadZone(path, zoneID, formatter)
	if err != nil {
		return nil, err
	}
	m, err := definition.Build(def)
	if err != nil {
		return nil, commandError(formatter, ErrCodeInvalidZone, err.Error())
	}
	registerCache(col, zoneID, m)
	return m, nil
}

// NewIntervalCommand creates the interval command.
func NewIntervalCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interval <definitions> <zone> <instant>",
		Short: "Show the zone interval containing an instant",
		Long: `Show the zone interval containing an instant.

The instant is an RFC 3339 timestamp, StartOfTime or EndOfTime.

Examples:
  tzcore interval ./zones Test/Summer 2000-06-01T00:00:00Z
  tzcore interval zones.yaml Test/Summer 2000-06-01T00:00:00Z --format json`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			col := newCollector(rootOpts)
			m, err := buildZone(formatter, col, args[0], args[1])
			if err != nil {
				return err
			}
			at, err := parseInstant(formatter, "instant", args[2])
			if err != nil {
				return err
			}
			return withMetrics(formatter, col, formatter.Success(newIntervalView(m.ZoneInterval(at))))
		},
	}
}

// MapOptions holds flags for the map command.
type MapOptions struct {
	*RootOptions
	Resolve string // "" or a key of resolvers
}

// MappingView is the output of the map command.
type MappingView struct {
	Local     string         `json:"local"`
	Count     int            `json:"count"`
	Intervals []IntervalView `json:"intervals"`
	Resolved  string         `json:"resolved,omitempty"`
}

func (v MappingView) String() string {
	var b strings.Builder
	switch v.Count {
	case 0:
		fmt.Fprintf(&b, "%s is skipped", v.Local)
	case 1:
		fmt.Fprintf(&b, "%s maps to 1 interval", v.Local)
	default:
		fmt.Fprintf(&b, "%s maps to %d intervals", v.Local, v.Count)
	}
	for _, iv := range v.Intervals {
		fmt.Fprintf(&b, "\n  %s", iv)
	}
	if v.Resolved != "" {
		fmt.Fprintf(&b, "\nresolved: %s", v.Resolved)
	}
	return b.String()
}

// NewMapCommand creates the map command.
func NewMapCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MapOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "map <definitions> <zone> <local>",
		Short: "Map a local date-time to zone intervals",
		Long: `Map a local date-time (2006-01-02T15:04:05) to the zone intervals whose
wall-clock range contains it: none in a gap, two in an overlap.

With --resolve the local date-time is also resolved to one instant:
  strict   reject gaps and overlaps
  lenient  shift forward out of gaps, take the earlier overlap instant
  earlier  start of the later interval for gaps, earlier overlap instant
  later    shift forward out of gaps, later overlap instant

Exit codes:
  0 - Success
  1 - The resolver rejected the local date-time
  2 - Command error`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMap(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Resolve, "resolve", "", "resolve to one instant (strict|lenient|earlier|later)")
	return cmd
}

func runMap(opts *MapOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	resolver, ok := resolvers[opts.Resolve]
	if opts.Resolve != "" && !ok {
		return commandError(formatter, ErrCodeInvalidArg, fmt.Sprintf("unknown resolver %q", opts.Resolve))
	}
	col := newCollector(opts.RootOptions)
	m, err := buildZone(formatter, col, args[0], args[1])
	if err != nil {
		return err
	}
	local, err := temporal.ParseLocalDateTime(args[2])
	if err != nil {
		return commandError(formatter, ErrCodeInvalidArg, err.Error())
	}

	mapping := zone.MapLocal(m, local)
	view := MappingView{Local: local.String(), Count: mapping.Count(), Intervals: []IntervalView{}}
	if iv := mapping.EarlyInterval(); iv != nil {
		view.Intervals = append(view.Intervals, newIntervalView(iv))
	}
	if iv := mapping.LateInterval(); iv != nil {
		view.Intervals = append(view.Intervals, newIntervalView(iv))
	}

	if opts.Resolve != "" {
		at, err := zone.Resolve(m, local, resolver)
		if err != nil {
			_ = formatter.Error(ErrCodeUnresolvable, err.Error(), view)
			return withMetrics(formatter, col, WrapExitError(ExitFailure, "resolve failed", err))
		}
		view.Resolved = at.String()
	}
	return withMetrics(formatter, col, formatter.Success(view))
}

// TransitionsOptions holds flags for the transitions command.
type TransitionsOptions struct {
	*RootOptions
	From string
	To   string
}

// TransitionsView is the output of the transitions command.
type TransitionsView struct {
	Zone        string           `json:"zone"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Transitions []TransitionView `json:"transitions"`
}

func (v TransitionsView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d transition(s) in [%s, %s)", v.Zone, len(v.Transitions), v.From, v.To)
	for _, t := range v.Transitions {
		fmt.Fprintf(&b, "\n  %s", t)
	}
	return b.String()
}

// NewTransitionsCommand creates the transitions command.
func NewTransitionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransitionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "transitions <definitions> <zone>",
		Short: "List the transitions of a zone in a range",
		Long: `List every offset change of a zone in [--from, --to).

Examples:
  tzcore transitions ./zones Test/Summer --from 2000-01-01T00:00:00Z --to 2005-01-01T00:00:00Z`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransitions(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "1970-01-01T00:00:00Z", "range start (inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "2038-01-01T00:00:00Z", "range end (exclusive)")
	return cmd
}

func runTransitions(opts *TransitionsOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	from, err := parseInstant(formatter, "--from", opts.From)
	if err != nil {
		return err
	}
	to, err := parseInstant(formatter, "--to", opts.To)
	if err != nil {
		return err
	}
	col := newCollector(opts.RootOptions)
	m, err := buildZone(formatter, col, args[0], args[1])
	if err != nil {
		return err
	}

	view := TransitionsView{Zone: args[1], From: from.String(), To: to.String(), Transitions: []TransitionView{}}
	for t := range zone.Transitions(m, from, to) {
		view.Transitions = append(view.Transitions, newTransitionView(t))
	}
	formatter.VerboseLog("Enumerated %d transition(s)", len(view.Transitions))
	return withMetrics(formatter, col, formatter.Success(view))
}
