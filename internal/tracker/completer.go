package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
	"github.com/stridefit/stride/internal/session"
)

var (
	// ErrNothingToSave means no set in the session qualified for
	// persistence, so no request was made.
	ErrNothingToSave = errors.New("no completed sets to save")

	// ErrSaveInFlight means a save is already running; the caller should
	// wait for it rather than start another.
	ErrSaveInFlight = errors.New("a save is already in progress")
)

// Completer turns a finished session into a persisted workout. It filters
// the session down to eligible sets, resolves catalog references, submits
// the document and resets the session only after the server confirms.
type Completer struct {
	api   API
	store *session.Store

	mu     sync.Mutex
	saving bool
}

// NewCompleter creates a Completer bound to the given session store.
func NewCompleter(api API, store *session.Store) *Completer {
	return &Completer{api: api, store: store}
}

// Complete saves the current session for the given user and returns the
// server-assigned workout ID. On any failure the session is left untouched
// so the user can retry; only a confirmed save clears it.
func (c *Completer) Complete(ctx context.Context, userID string, now time.Time) (uuid.UUID, error) {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return uuid.Nil, ErrSaveInFlight
	}
	c.saving = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	snap := c.store.Snapshot()
	data, err := c.buildWorkoutData(ctx, snap, userID, now)
	if err != nil {
		return uuid.Nil, err
	}

	workoutID, err := c.api.SaveWorkout(ctx, *data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("saving workout: %w", err)
	}

	c.store.Reset()
	return workoutID, nil
}

// buildWorkoutData filters the snapshot to eligible sets and converts the
// free-text fields to numbers. Exercises left with no eligible sets are
// dropped entirely.
func (c *Completer) buildWorkoutData(ctx context.Context, snap session.Snapshot, userID string, now time.Time) (*models.WorkoutData, error) {
	var entries []models.WorkoutEntry
	for _, ex := range snap.Exercises {
		var sets []models.WorkoutSet
		for _, set := range ex.Sets {
			if !set.Eligible() {
				continue
			}
			reps, err := strconv.Atoi(strings.TrimSpace(set.Reps))
			if err != nil || reps <= 0 {
				continue
			}
			weight, err := strconv.ParseFloat(strings.TrimSpace(set.Weight), 64)
			if err != nil || weight < 0 {
				continue
			}
			sets = append(sets, models.WorkoutSet{
				Reps:       reps,
				Weight:     weight,
				WeightUnit: string(set.Unit),
			})
		}
		if len(sets) == 0 {
			continue
		}

		catalogID := ex.CatalogID
		if catalogID == uuid.Nil {
			resolved, err := c.api.FetchExerciseByName(ctx, ex.Name)
			if err != nil {
				return nil, fmt.Errorf("resolving exercise %q: %w", ex.Name, err)
			}
			catalogID = resolved.ID
		}
		entries = append(entries, models.WorkoutEntry{ExerciseRef: catalogID, Sets: sets})
	}

	if len(entries) == 0 {
		return nil, ErrNothingToSave
	}

	return &models.WorkoutData{
		Type:      "workout",
		UserID:    userID,
		Date:      now,
		Duration:  c.store.Elapsed(now),
		Exercises: entries,
	}, nil
}
