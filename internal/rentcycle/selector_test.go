package rentcycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pg-backend/internal/rentcycle"
)

func janGap() rentcycle.Gap {
	return rentcycle.Gap{
		CycleID:      7,
		GapStart:     "2024-01-01",
		GapEnd:       "2024-01-31",
		RentDue:      9000,
		TotalPaid:    4000,
		RemainingDue: 5000,
	}
}

func TestSelector_ToggleGap(t *testing.T) {
	s := rentcycle.NewSelector([]rentcycle.Gap{janGap()})
	require.True(t, s.HasGaps())

	// First click selects and exposes the gap's window
	assert.True(t, s.ToggleGap(7))
	active, ok := s.ActivePeriod()
	require.True(t, ok)
	assert.Equal(t, rentcycle.Active{CycleID: 7, Start: "2024-01-01", End: "2024-01-31"}, active)

	// Second click deselects
	assert.False(t, s.ToggleGap(7))
	_, ok = s.ActivePeriod()
	assert.False(t, ok)
}

func TestSelector_ToggleUnknownCycleIsNoop(t *testing.T) {
	s := rentcycle.NewSelector([]rentcycle.Gap{janGap()})
	assert.False(t, s.ToggleGap(99))
	_, ok := s.ActivePeriod()
	assert.False(t, ok)
}

func TestSelector_GapAndSuggestedAreMutuallyExclusive(t *testing.T) {
	s := rentcycle.NewSelector([]rentcycle.Gap{janGap()})
	suggested := rentcycle.SuggestedPeriod{
		SuggestedCycleID:   12,
		SuggestedStartDate: "2024-02-01",
		SuggestedEndDate:   "2024-02-29",
	}

	s.ToggleGap(7)
	s.AdoptSuggested(suggested)

	_, gapSelected := s.SelectedGap()
	assert.False(t, gapSelected, "adopting the suggested period must clear the gap selection")

	active, ok := s.ActivePeriod()
	require.True(t, ok)
	assert.Equal(t, rentcycle.Active{CycleID: 12, Start: "2024-02-01", End: "2024-02-29"}, active)

	// Selecting a gap again clears the suggested period
	s.ToggleGap(7)
	active, ok = s.ActivePeriod()
	require.True(t, ok)
	assert.Equal(t, 7, active.CycleID)
}

func TestSelector_PrefillAmount(t *testing.T) {
	t.Run("positive remaining due prefills", func(t *testing.T) {
		s := rentcycle.NewSelector([]rentcycle.Gap{janGap()})
		s.ToggleGap(7)
		assert.Equal(t, float64(5000), s.PrefillAmount(0))
	})

	t.Run("zero remaining due leaves amount as-is", func(t *testing.T) {
		g := janGap()
		g.TotalPaid = 9000
		g.RemainingDue = 0
		s := rentcycle.NewSelector([]rentcycle.Gap{g})
		s.ToggleGap(7)
		assert.Equal(t, float64(1234), s.PrefillAmount(1234))
	})

	t.Run("suggested period applies no prefill", func(t *testing.T) {
		s := rentcycle.NewSelector(nil)
		s.AdoptSuggested(rentcycle.SuggestedPeriod{SuggestedCycleID: 12, SuggestedStartDate: "2024-02-01", SuggestedEndDate: "2024-02-29"})
		assert.Equal(t, float64(777), s.PrefillAmount(777))
	})

	t.Run("no selection leaves amount as-is", func(t *testing.T) {
		s := rentcycle.NewSelector([]rentcycle.Gap{janGap()})
		assert.Equal(t, float64(42), s.PrefillAmount(42))
	})
}

func TestSelector_Clear(t *testing.T) {
	s := rentcycle.NewSelector([]rentcycle.Gap{janGap()})
	s.ToggleGap(7)
	s.Clear()
	_, ok := s.ActivePeriod()
	assert.False(t, ok)
}
