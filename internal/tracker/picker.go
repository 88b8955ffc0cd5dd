package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
	"github.com/stridefit/stride/internal/session"
)

// Picker lets the user browse the exercise catalog and add entries to the
// active session. The catalog is fetched once per open; Filter narrows the
// most recent fetch without another round trip.
type Picker struct {
	api     API
	store   *session.Store
	catalog []models.Exercise
}

// NewPicker creates a Picker bound to the given session store.
func NewPicker(api API, store *session.Store) *Picker {
	return &Picker{api: api, store: store}
}

// Open fetches the catalog and returns it. The fetched list becomes the base
// for subsequent Filter calls.
func (p *Picker) Open(ctx context.Context) ([]models.Exercise, error) {
	exercises, err := p.api.FetchExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exercise catalog: %w", err)
	}
	p.catalog = exercises
	return exercises, nil
}

// Filter returns the catalog entries whose name contains the query,
// case-insensitively. An empty query returns the full catalog.
func (p *Picker) Filter(query string) []models.Exercise {
	if query == "" {
		return p.catalog
	}
	query = strings.ToLower(query)
	var out []models.Exercise
	for _, ex := range p.catalog {
		if strings.Contains(strings.ToLower(ex.Name), query) {
			out = append(out, ex)
		}
	}
	return out
}

// Select adds a catalog exercise to the session and returns the new session
// entry's ID. Selecting the same exercise twice adds two entries.
func (p *Picker) Select(ex models.Exercise) uuid.UUID {
	return p.store.AddExercise(ex.Name, ex.ID)
}
