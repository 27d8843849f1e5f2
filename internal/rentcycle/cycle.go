package rentcycle

import (
	"time"

	"pg-backend/internal/timeutil"
)

// Rent payment status values, derived from amount comparison at submission time.
const (
	StatusPaid    = "PAID"
	StatusPartial = "PARTIAL"
	StatusPending = "PENDING"
	StatusVoid    = "VOID"
)

// Supported rent cycle types
const (
	CycleMonthly = "MONTHLY"
	CycleWeekly  = "WEEKLY"
)

// Window is a single billing period. Both ends are inclusive dates
// (start-of-day IST).
type Window struct {
	Start time.Time
	End   time.Time
}

// Cycle is a billing window with its database identity and expected rent.
// Cycle IDs are minted server-side; clients never fabricate them.
type Cycle struct {
	ID      int
	Start   time.Time
	End     time.Time
	RentDue float64
}

// Gap is a billing cycle for which expected rent exceeds the amount received.
// Recomputed on every gap-detection call, never persisted.
type Gap struct {
	CycleID      int     `json:"cycle_id"`
	GapStart     string  `json:"gapStart"`
	GapEnd       string  `json:"gapEnd"`
	RentDue      float64 `json:"rentDue"`
	TotalPaid    float64 `json:"totalPaid"`
	RemainingDue float64 `json:"remainingDue"`
}

// SuggestedPeriod is the fallback window offered when no gaps exist (or the
// caller explicitly skips them): the next not-yet-billed cycle.
type SuggestedPeriod struct {
	SuggestedCycleID   int    `json:"suggestedCycleId"`
	SuggestedStartDate string `json:"suggestedStartDate"`
	SuggestedEndDate   string `json:"suggestedEndDate"`
}

// ComputeStatus derives the payment status from the paid/expected comparison:
// PAID if amountPaid >= actualRent, PARTIAL if 0 < amountPaid < actualRent,
// PENDING otherwise.
func ComputeStatus(amountPaid, actualRent float64) string {
	if amountPaid >= actualRent {
		return StatusPaid
	}
	if amountPaid > 0 {
		return StatusPartial
	}
	return StatusPending
}

// Windows generates the billing windows for a tenancy, from the move-in date
// up to and including the window containing now. Windows are anchored on the
// move-in day in IST; monthly windows clamp month-end days.
func Windows(moveIn, now time.Time, cycleType string) []Window {
	start := timeutil.StartOfDay(moveIn)
	now = timeutil.StartOfDay(now)

	var windows []Window
	for i := 0; ; i++ {
		w := NthWindow(start, i, cycleType)
		if w.Start.After(now) {
			break
		}
		windows = append(windows, w)
	}
	return windows
}

// NthWindow returns the n-th billing window (0-based) of a tenancy anchored
// on the move-in date. Every window must be derived from the anchor, never
// from a neighbouring window: for a month-end anchor the clamped windows are
// not translation-invariant (Jan 31 + 1 month + 1 month != Jan 31 + 2 months),
// so recomputing "the next window" from a previous window's end drifts off
// the windows the generator mints.
func NthWindow(anchor time.Time, n int, cycleType string) Window {
	anchor = timeutil.StartOfDay(anchor)
	switch cycleType {
	case CycleWeekly:
		start := anchor.AddDate(0, 0, n*7)
		return Window{Start: start, End: start.AddDate(0, 0, 6)}
	default:
		start := timeutil.AddMonthsClamped(anchor, n)
		end := timeutil.AddMonthsClamped(anchor, n+1).AddDate(0, 0, -1)
		return Window{Start: start, End: end}
	}
}

// DetectGaps returns the cycles whose received total falls short of the
// expected rent, in chronological order. paid maps cycle ID to the summed
// non-void payments for that cycle.
func DetectGaps(cycles []Cycle, paid map[int]float64) []Gap {
	var gaps []Gap
	for _, c := range cycles {
		total := paid[c.ID]
		if total >= c.RentDue {
			continue
		}
		gaps = append(gaps, Gap{
			CycleID:      c.ID,
			GapStart:     c.Start.Format(timeutil.DateLayout),
			GapEnd:       c.End.Format(timeutil.DateLayout),
			RentDue:      c.RentDue,
			TotalPaid:    total,
			RemainingDue: c.RentDue - total,
		})
	}
	return gaps
}
