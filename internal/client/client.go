// Package client is the HTTP client for a stride server. Every failure is
// surfaced to the caller; retries are always manual (the user re-triggers
// the action), so no request is ever replayed automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stridefit/stride/internal/models"
)

// Client talks to a stride server over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a Client for the given base URL. The API key is only sent on
// mutating endpoints.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchExercises retrieves the full active exercise catalog.
func (c *Client) FetchExercises(ctx context.Context) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := c.getJSON(ctx, "/api/v1/exercises", nil, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// FetchExercise retrieves a single catalog exercise by ID.
func (c *Client) FetchExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	var ex models.Exercise
	if err := c.getJSON(ctx, "/api/v1/exercises/"+id.String(), nil, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

// FetchExerciseByName resolves a catalog exercise by its exact name.
func (c *Client) FetchExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	var ex models.Exercise
	params := url.Values{"name": {name}}
	if err := c.getJSON(ctx, "/api/v1/exercises/by-name", params, &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

// FetchWorkouts retrieves a user's persisted workouts, newest first.
func (c *Client) FetchWorkouts(ctx context.Context, userID string) ([]models.Workout, error) {
	var workouts []models.Workout
	params := url.Values{"user": {userID}}
	if err := c.getJSON(ctx, "/api/v1/workouts", params, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// FetchWorkout retrieves a single persisted workout by ID.
func (c *Client) FetchWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var w models.Workout
	if err := c.getJSON(ctx, "/api/v1/workouts/"+id.String(), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// UserStats retrieves a user's aggregate workout numbers.
func (c *Client) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	var stats models.UserStats
	if err := c.getJSON(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Me retrieves the identity the server resolved for this connection.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var me struct {
		Login       string `json:"login"`
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.getJSON(ctx, "/api/v1/me", nil, &me); err != nil {
		return nil, err
	}
	return &models.User{ID: me.Login, DisplayName: me.DisplayName, AvatarURL: me.AvatarURL}, nil
}

type saveWorkoutResponse struct {
	Success   bool      `json:"success"`
	WorkoutID uuid.UUID `json:"workoutId"`
}

// SaveWorkout submits one completed workout document and returns the
// server-assigned ID. A non-2xx response is an error; nothing is retried.
func (c *Client) SaveWorkout(ctx context.Context, data models.WorkoutData) (uuid.UUID, error) {
	var resp saveWorkoutResponse
	body := map[string]models.WorkoutData{"workoutData": data}
	if err := c.postJSON(ctx, "/api/v1/workouts", body, &resp); err != nil {
		return uuid.Nil, err
	}
	if !resp.Success {
		return uuid.Nil, fmt.Errorf("save workout: server reported failure")
	}
	return resp.WorkoutID, nil
}

// DeleteWorkout removes one persisted workout.
func (c *Client) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	body := map[string]uuid.UUID{"workoutId": id}
	return c.postJSON(ctx, "/api/v1/workouts/delete", body, nil)
}

// Guidance requests AI coaching guidance for an exercise.
func (c *Client) Guidance(ctx context.Context, exerciseName string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	body := map[string]string{"exerciseName": exerciseName}
	if err := c.postJSON(ctx, "/api/v1/ai/guidance", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
