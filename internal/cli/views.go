package cli

import (
	"fmt"

	"github.com/roach88/tzcore/internal/temporal"
	"github.com/roach88/tzcore/internal/zone"
)

// IntervalView is the output form of a zone interval.
type IntervalView struct {
	Name    string `json:"name"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Offset  string `json:"offset"`
	Savings string `json:"savings"`
}

func newIntervalView(iv *zone.ZoneInterval) IntervalView {
	return IntervalView{
		Name:    iv.Name(),
		Start:   iv.Start().String(),
		End:     iv.End().String(),
		Offset:  iv.WallOffset().String(),
		Savings: iv.Savings().String(),
	}
}

func (v IntervalView) String() string {
	return fmt.Sprintf("%s [%s, %s) offset %s savings %s", v.Name, v.Start, v.End, v.Offset, v.Savings)
}

// TransitionView is the output form of a transition.
type TransitionView struct {
	Instant      string `json:"instant"`
	OffsetBefore string `json:"offset_before"`
	OffsetAfter  string `json:"offset_after"`
}

func newTransitionView(t zone.Transition) TransitionView {
	return TransitionView{
		Instant:      t.Instant.String(),
		OffsetBefore: t.OffsetBefore.String(),
		OffsetAfter:  t.OffsetAfter.String(),
	}
}

func (v TransitionView) String() string {
	return fmt.Sprintf("%s %s -> %s", v.Instant, v.OffsetBefore, v.OffsetAfter)
}

// parseInstant parses a command-line instant, reporting failures as
// command errors.
func parseInstant(formatter *OutputFormatter, what, s string) (temporal.Instant, error) {
	at, err := temporal.ParseInstant(s)
	if err != nil {
		return temporal.Instant{}, commandError(formatter, ErrCodeInvalidArg, fmt.Sprintf("%s: %v", what, err))
	}
	return at, nil
}
