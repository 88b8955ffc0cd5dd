// Package session holds the in-progress workout: the single source of truth
// shared by the exercise picker, the active-workout view and the completion
// flow. Every mutation replaces state instead of editing it in place, so a
// snapshot handed to a reader is never changed underneath it.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// WeightUnit is the unit a set's weight was entered in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// DefaultUnit is applied to new sessions and newly created sets.
const DefaultUnit = UnitKg

// Set is one logged attempt within an exercise. Reps and Weight hold the
// raw text the user typed; validation happens at completion time.
type Set struct {
	ID        uuid.UUID
	Reps      string
	Weight    string
	Unit      WeightUnit
	Completed bool
}

// Exercise is one exercise added to the session with its ordered sets.
type Exercise struct {
	ID        uuid.UUID
	Name      string
	CatalogID uuid.UUID
	Sets      []Set
}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	Exercises []Exercise
	Unit      WeightUnit
	StartedAt time.Time
}

// Store is the active workout session container. It is safe for concurrent
// use; readers always observe a fully applied state.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New returns an empty session store with the default weight unit.
func New() *Store {
	return &Store{snap: Snapshot{Unit: DefaultUnit}}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snap)
}

// AddExercise appends a new exercise with an empty set list and returns its
// ID. Adding the same catalog exercise twice creates two independent entries.
func (s *Store) AddExercise(name string, catalogID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex := Exercise{ID: uuid.New(), Name: name, CatalogID: catalogID}
	next := cloneSnapshot(s.snap)
	next.Exercises = append(next.Exercises, ex)
	s.snap = next
	return ex.ID
}

// RemoveExercise removes an exercise and all its sets. Unknown IDs are a
// silent no-op.
func (s *Store) RemoveExercise(exerciseID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.snap)
	for i, ex := range next.Exercises {
		if ex.ID == exerciseID {
			next.Exercises = append(next.Exercises[:i], next.Exercises[i+1:]...)
			s.snap = next
			return
		}
	}
}

// AddSet appends an empty set to the given exercise, initialized with the
// session's current weight unit. Returns the new set's ID, or uuid.Nil when
// the exercise does not exist.
func (s *Store) AddSet(exerciseID uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.snap)
	for i := range next.Exercises {
		if next.Exercises[i].ID == exerciseID {
			set := Set{ID: uuid.New(), Unit: next.Unit}
			next.Exercises[i].Sets = append(next.Exercises[i].Sets, set)
			s.snap = next
			return set.ID
		}
	}
	return uuid.Nil
}

// Set fields accepted by UpdateSet.
const (
	FieldReps   = "reps"
	FieldWeight = "weight"
)

// UpdateSet replaces the reps or weight text of exactly one set. Missing
// targets and unknown fields are a no-op.
func (s *Store) UpdateSet(exerciseID, setID uuid.UUID, field, value string) {
	if field != FieldReps && field != FieldWeight {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.snap)
	set := findSet(&next, exerciseID, setID)
	if set == nil {
		return
	}
	if field == FieldReps {
		set.Reps = value
	} else {
		set.Weight = value
	}
	s.snap = next
}

// ToggleSetCompletion flips a set's completed flag. The store accepts the
// call regardless of the current flag; whether an editable field should be
// locked after completion is presentation policy.
func (s *Store) ToggleSetCompletion(exerciseID, setID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.snap)
	set := findSet(&next, exerciseID, setID)
	if set == nil {
		return
	}
	set.Completed = !set.Completed
	s.snap = next
}

// RemoveSet removes one set from its exercise. Calling it again with the
// same IDs is a no-op.
func (s *Store) RemoveSet(exerciseID, setID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.snap)
	for i := range next.Exercises {
		if next.Exercises[i].ID != exerciseID {
			continue
		}
		sets := next.Exercises[i].Sets
		for j := range sets {
			if sets[j].ID == setID {
				next.Exercises[i].Sets = append(sets[:j], sets[j+1:]...)
				s.snap = next
				return
			}
		}
		return
	}
}

// SetWeightUnit updates the session-wide default for newly created sets.
// Already-created sets keep the unit they were entered with.
func (s *Store) SetWeightUnit(unit WeightUnit) {
	if unit != UnitKg && unit != UnitLbs {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneSnapshot(s.snap)
	next.Unit = unit
	s.snap = next
}

// Reset clears the session: no exercises, default unit, timer disarmed.
// Used on cancel and after a successful save.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{Unit: DefaultUnit}
}

// StartTimer arms the session timer, but only when the session is empty.
// Re-entering the active-workout view must not restart a running session.
func (s *Store) StartTimer(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snap.Exercises) == 0 {
		next := cloneSnapshot(s.snap)
		next.StartedAt = now
		s.snap = next
	}
}

// Elapsed returns the whole seconds since the timer was armed, or 0 when it
// never was.
func (s *Store) Elapsed(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.StartedAt.IsZero() {
		return 0
	}
	return int(now.Sub(s.snap.StartedAt) / time.Second)
}

// Restore replaces the whole session state, used when resuming a saved
// draft. The snapshot is deep-copied on the way in.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Unit != UnitLbs {
		snap.Unit = DefaultUnit
	}
	s.snap = cloneSnapshot(snap)
}

func findSet(snap *Snapshot, exerciseID, setID uuid.UUID) *Set {
	for i := range snap.Exercises {
		if snap.Exercises[i].ID != exerciseID {
			continue
		}
		sets := snap.Exercises[i].Sets
		for j := range sets {
			if sets[j].ID == setID {
				return &sets[j]
			}
		}
		return nil
	}
	return nil
}

func cloneSnapshot(snap Snapshot) Snapshot {
	out := Snapshot{Unit: snap.Unit, StartedAt: snap.StartedAt}
	if snap.Exercises == nil {
		return out
	}
	out.Exercises = make([]Exercise, len(snap.Exercises))
	for i, ex := range snap.Exercises {
		copied := ex
		copied.Sets = append([]Set(nil), ex.Sets...)
		out.Exercises[i] = copied
	}
	return out
}
