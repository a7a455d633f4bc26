package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tzcore/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Database  string
	Zone      string // optional - one zone only
	Recording string // optional - one recording only
}

// VerifyRecordingResult holds the outcome for one recording.
type VerifyRecordingResult struct {
	Recording RecordView  `json:"recording"`
	OK        bool        `json:"ok"`
	Drift     []DriftView `json:"drift,omitempty"`
}

// VerifyResult holds the overall verify result.
type VerifyResult struct {
	Recordings []VerifyRecordingResult `json:"recordings"`
	Total      int                     `json:"total"`
	Drifted    int                     `json:"drifted"`
}

func (r VerifyResult) String() string {
	var b strings.Builder
	for _, rec := range r.Recordings {
		mark := "✓"
		if !rec.OK {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s %s [%s, %s) %d transition(s)\n", mark, rec.Recording.ID, rec.Recording.Zone, rec.Recording.From, rec.Recording.To, rec.Recording.Transitions)
		for _, d := range rec.Drift {
			fmt.Fprintf(&b, "    seq %d: recorded %s, computed %s\n", d.Seq, describe(d.Recorded), describe(d.Computed))
		}
	}
	fmt.Fprintf(&b, "\nVerify Summary: %d recording(s), %d drifted", r.Total, r.Drifted)
	return b.String()
}

// DriftView is the output form of one drift position.
type DriftView struct {
	Seq      int             `json:"seq"`
	Recorded *TransitionView `json:"recorded,omitempty"`
	Computed *TransitionView `json:"computed,omitempty"`
}

func newDriftViews(drift []store.Drift) []DriftView {
	views := make([]DriftView, 0, len(drift))
	for _, d := range drift {
		v := DriftView{Seq: d.Seq}
		if d.Recorded != nil {
			tv := newTransitionView(*d.Recorded)
			v.Recorded = &tv
		}
		if d.Computed != nil {
			tv := newTransitionView(*d.Computed)
			v.Computed = &tv
		}
		views = append(views, v)
	}
	return views
}

func describe(t *TransitionView) string {
	if t == nil {
		return "nothing"
	}
	return t.String()
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay recordings and report drift",
		Long: `Rebuild each recorded zone from its stored definition, enumerate its
transitions again over the recorded range and compare them with the stored
ones.

Exit codes:
  0 - Every recording replayed unchanged
  1 - At least one recording drifted
  2 - Command error (database not found, unknown recording, etc.)

Examples:
  tzcore verify --db ./tz.db
  tzcore verify --db ./tz.db --zone Test/Summer
  tzcore verify --db ./tz.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Zone, "zone", "", "verify recordings of one zone only")
	cmd.Flags().StringVar(&opts.Recording, "recording", "", "verify one recording only")
	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}
	defer st.Close()

	var results []store.VerifyResult
	if opts.Recording != "" {
		r, err := st.Verify(ctx, opts.Recording, logger)
		if errors.Is(err, store.ErrNotFound) {
			return commandError(formatter, ErrCodeNotFound, fmt.Sprintf("recording %q not found", opts.Recording))
		}
		if err != nil {
			return commandError(formatter, ErrCodeDatabase, err.Error())
		}
		results = []store.VerifyResult{r}
	} else {
		results, err = st.VerifyAll(ctx, opts.Zone, logger)
		if err != nil {
			return commandError(formatter, ErrCodeDatabase, err.Error())
		}
	}

	out := VerifyResult{Recordings: make([]VerifyRecordingResult, 0, len(results)), Total: len(results)}
	for _, r := range results {
		out.Recordings = append(out.Recordings, VerifyRecordingResult{
			Recording: newRecordView(r.Recording),
			OK:        r.OK(),
			Drift:     newDriftViews(r.Drift),
		})
		if !r.OK() {
			out.Drifted++
		}
	}

	if out.Drifted == 0 {
		return formatter.Success(out)
	}
	msg := fmt.Sprintf("%d recording(s) drifted", out.Drifted)
	if formatter.IsJSON() {
		if err := formatter.Failure("E_DRIFT", msg, out); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(formatter.Writer, out)
	}
	return NewExitError(ExitFailure, msg)
}
