package rentcycle

// Selector holds the rent-period selection state behind a tenant payment
// form. Exactly one of {selected gap, suggested next period} is active at a
// time; activating one clears the other.
type Selector struct {
	gaps      []Gap
	selected  *Gap
	suggested *SuggestedPeriod
}

// Active is the period a payment submission will reference.
type Active struct {
	CycleID int
	Start   string
	End     string
}

func NewSelector(gaps []Gap) *Selector {
	return &Selector{gaps: gaps}
}

func (s *Selector) HasGaps() bool {
	return len(s.gaps) > 0
}

func (s *Selector) Gaps() []Gap {
	return s.gaps
}

// ToggleGap selects the gap with the given cycle ID, or deselects it if it is
// already selected. Selecting a gap clears any suggested-period selection.
// Returns true if the gap is selected after the call.
func (s *Selector) ToggleGap(cycleID int) bool {
	if s.selected != nil && s.selected.CycleID == cycleID {
		s.selected = nil
		return false
	}
	for i := range s.gaps {
		if s.gaps[i].CycleID == cycleID {
			g := s.gaps[i]
			s.selected = &g
			s.suggested = nil
			return true
		}
	}
	return false
}

// AdoptSuggested makes the suggested next period the active selection,
// clearing any gap selection.
func (s *Selector) AdoptSuggested(p SuggestedPeriod) {
	s.suggested = &p
	s.selected = nil
}

// Clear drops any active selection, forcing the user to pick a period again
// before submission is possible.
func (s *Selector) Clear() {
	s.selected = nil
	s.suggested = nil
}

// SelectedGap returns the currently selected gap, if any.
func (s *Selector) SelectedGap() (Gap, bool) {
	if s.selected == nil {
		return Gap{}, false
	}
	return *s.selected, true
}

// ActivePeriod returns the cycle and window a submission would reference.
func (s *Selector) ActivePeriod() (Active, bool) {
	if s.selected != nil {
		return Active{CycleID: s.selected.CycleID, Start: s.selected.GapStart, End: s.selected.GapEnd}, true
	}
	if s.suggested != nil {
		return Active{CycleID: s.suggested.SuggestedCycleID, Start: s.suggested.SuggestedStartDate, End: s.suggested.SuggestedEndDate}, true
	}
	return Active{}, false
}

// PrefillAmount returns the amount the form should show: the selected gap's
// remaining due when it is positive, otherwise the current value unchanged.
// The suggested next period never prefills an amount.
func (s *Selector) PrefillAmount(current float64) float64 {
	if s.selected != nil && s.selected.RemainingDue > 0 {
		return s.selected.RemainingDue
	}
	return current
}
