package rentcycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pg-backend/internal/rentcycle"
	"pg-backend/internal/timeutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, timeutil.IST)
}

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountPaid float64
		actualRent float64
		want       string
	}{
		{"full payment", 9000, 9000, rentcycle.StatusPaid},
		{"overpayment", 9500, 9000, rentcycle.StatusPaid},
		{"partial payment", 4000, 9000, rentcycle.StatusPartial},
		{"one rupee paid", 1, 9000, rentcycle.StatusPartial},
		{"zero paid", 0, 9000, rentcycle.StatusPending},
		{"negative paid", -100, 9000, rentcycle.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rentcycle.ComputeStatus(tt.amountPaid, tt.actualRent))
		})
	}
}

func TestWindows_Monthly(t *testing.T) {
	moveIn := date(2024, time.January, 15)
	now := date(2024, time.April, 1)

	windows := rentcycle.Windows(moveIn, now, rentcycle.CycleMonthly)
	require.Len(t, windows, 3)

	assert.Equal(t, date(2024, time.January, 15), windows[0].Start)
	assert.Equal(t, date(2024, time.February, 14), windows[0].End)
	assert.Equal(t, date(2024, time.February, 15), windows[1].Start)
	assert.Equal(t, date(2024, time.March, 14), windows[1].End)
	assert.Equal(t, date(2024, time.March, 15), windows[2].Start)
	assert.Equal(t, date(2024, time.April, 14), windows[2].End)
}

func TestWindows_MonthEndClamp(t *testing.T) {
	// Move-in on Jan 31: February window must clamp to Feb 29 (2024 is a leap year)
	moveIn := date(2024, time.January, 31)
	now := date(2024, time.March, 15)

	windows := rentcycle.Windows(moveIn, now, rentcycle.CycleMonthly)
	require.Len(t, windows, 2)

	assert.Equal(t, date(2024, time.January, 31), windows[0].Start)
	assert.Equal(t, date(2024, time.February, 28), windows[0].End)
	assert.Equal(t, date(2024, time.February, 29), windows[1].Start)
}

func TestWindows_Weekly(t *testing.T) {
	moveIn := date(2024, time.June, 3)
	now := date(2024, time.June, 16)

	windows := rentcycle.Windows(moveIn, now, rentcycle.CycleWeekly)
	require.Len(t, windows, 2)
	assert.Equal(t, date(2024, time.June, 3), windows[0].Start)
	assert.Equal(t, date(2024, time.June, 9), windows[0].End)
	assert.Equal(t, date(2024, time.June, 10), windows[1].Start)
	assert.Equal(t, date(2024, time.June, 16), windows[1].End)
}

func TestNthWindow(t *testing.T) {
	anchor := date(2024, time.January, 1)

	next := rentcycle.NthWindow(anchor, 1, rentcycle.CycleMonthly)
	assert.Equal(t, date(2024, time.February, 1), next.Start)
	assert.Equal(t, date(2024, time.February, 29), next.End)

	nextWeek := rentcycle.NthWindow(anchor, 1, rentcycle.CycleWeekly)
	assert.Equal(t, date(2024, time.January, 8), nextWeek.Start)
	assert.Equal(t, date(2024, time.January, 14), nextWeek.End)
}

func TestNthWindow_MonthEndAnchor(t *testing.T) {
	// Jan 31 anchor: the February window clamps to Feb 29 (leap year), and the
	// window after it must run to Mar 30 (anchor day 31 clamped minus one),
	// not to Feb 29 + 1 month - 1 day = Mar 28.
	anchor := date(2024, time.January, 31)

	second := rentcycle.NthWindow(anchor, 1, rentcycle.CycleMonthly)
	assert.Equal(t, date(2024, time.February, 29), second.Start)
	assert.Equal(t, date(2024, time.March, 30), second.End)

	third := rentcycle.NthWindow(anchor, 2, rentcycle.CycleMonthly)
	assert.Equal(t, date(2024, time.March, 31), third.Start)
	assert.Equal(t, date(2024, time.April, 29), third.End)
}

func TestNthWindow_AgreesWithGenerator(t *testing.T) {
	// The suggested next window and the window the generator later mints for
	// the same index must be identical, or the cycle row would be rewritten
	// with a different end date on the next gap computation.
	anchors := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.January, 31),
		date(2023, time.December, 31),
	}

	for _, moveIn := range anchors {
		windows := rentcycle.Windows(moveIn, date(2024, time.June, 1), rentcycle.CycleMonthly)
		for i, w := range windows {
			assert.Equal(t, w, rentcycle.NthWindow(moveIn, i, rentcycle.CycleMonthly),
				"window %d for move-in %s", i, moveIn.Format(timeutil.DateLayout))
		}
	}
}

func TestDetectGaps(t *testing.T) {
	cycles := []rentcycle.Cycle{
		{ID: 7, Start: date(2024, time.January, 1), End: date(2024, time.January, 31), RentDue: 9000},
		{ID: 8, Start: date(2024, time.February, 1), End: date(2024, time.February, 29), RentDue: 9000},
		{ID: 9, Start: date(2024, time.March, 1), End: date(2024, time.March, 31), RentDue: 9000},
	}
	paid := map[int]float64{
		7: 4000, // underpaid
		8: 9000, // covered
		// 9: nothing paid
	}

	gaps := rentcycle.DetectGaps(cycles, paid)
	require.Len(t, gaps, 2)

	assert.Equal(t, rentcycle.Gap{
		CycleID:      7,
		GapStart:     "2024-01-01",
		GapEnd:       "2024-01-31",
		RentDue:      9000,
		TotalPaid:    4000,
		RemainingDue: 5000,
	}, gaps[0])

	assert.Equal(t, 9, gaps[1].CycleID)
	assert.Equal(t, float64(0), gaps[1].TotalPaid)
	assert.Equal(t, float64(9000), gaps[1].RemainingDue)
}

func TestDetectGaps_OverpaidCycleIsNotAGap(t *testing.T) {
	cycles := []rentcycle.Cycle{
		{ID: 1, Start: date(2024, time.May, 1), End: date(2024, time.May, 31), RentDue: 8000},
	}
	gaps := rentcycle.DetectGaps(cycles, map[int]float64{1: 8500})
	assert.Empty(t, gaps)
}
