package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tzcore/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Database string
	From     string
	To       string
}

// RecordView is the output of the record command.
type RecordView struct {
	ID          string `json:"id"`
	ContentID   string `json:"content_id"`
	Zone        string `json:"zone"`
	From        string `json:"from"`
	To          string `json:"to"`
	Transitions int    `json:"transitions"`
}

func newRecordView(rec store.Recording) RecordView {
	return RecordView{
		ID:          rec.ID,
		ContentID:   rec.ContentID,
		Zone:        rec.ZoneID,
		From:        rec.Start.String(),
		To:          rec.End.String(),
		Transitions: rec.Transitions,
	}
}

func (v RecordView) String() string {
	return fmt.Sprintf("recorded %d transition(s) of %s in [%s, %s) as %s", v.Transitions, v.Zone, v.From, v.To, v.ID)
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <definitions> <zone>",
		Short: "Record a zone's transitions in a database",
		Long: `Store a zone definition and the transitions it produces in [--from, --to)
so that a later verify can detect drift.

Examples:
  tzcore record ./zones Test/Summer --db ./tz.db --from 1990-01-01T00:00:00Z --to 2030-01-01T00:00:00Z`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.From, "from", "1970-01-01T00:00:00Z", "range start (inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "2038-01-01T00:00:00Z", "range end (exclusive)")
	return cmd
}

func runRecord(opts *RecordOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	from, err := parseInstant(formatter, "--from", opts.From)
	if err != nil {
		return err
	}
	to, err := parseInstant(formatter, "--to", opts.To)
	if err != nil {
		return err
	}
	def, err := loadZone(args[0], args[1], formatter)
	if err != nil {
		return err
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}
	defer st.Close()

	rec, err := st.Record(context.Background(), def, from, to)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, err.Error())
	}
	newLogger(opts.RootOptions, cmd).Debug("recorded zone", "recording", rec.ID, "zone", rec.ZoneID, "transitions", rec.Transitions)
	return formatter.Success(newRecordView(rec))
}
