package session

import "strings"

// Eligible reports whether the set qualifies for persistence: explicitly
// marked completed with both reps and weight entered.
func (s Set) Eligible() bool {
	return s.Completed && strings.TrimSpace(s.Reps) != "" && strings.TrimSpace(s.Weight) != ""
}

// AllSetsCompleted reports whether every set in the session is marked
// completed. Exercises without sets do not block completion here; they are
// dropped by the persistence filter.
func (snap Snapshot) AllSetsCompleted() bool {
	for _, ex := range snap.Exercises {
		for _, set := range ex.Sets {
			if !set.Completed {
				return false
			}
		}
	}
	return true
}

// CanComplete reports whether the finish button should be offered: at least
// one exercise exists and every set is marked completed.
func (snap Snapshot) CanComplete() bool {
	return len(snap.Exercises) > 0 && snap.AllSetsCompleted()
}
