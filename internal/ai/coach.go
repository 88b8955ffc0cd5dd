// Package ai generates exercise coaching guidance via the Gemini API.
package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when the config does not name one.
const DefaultModel = "gemini-3-flash-preview"

// Coach produces coaching guidance for a named exercise.
type Coach interface {
	Guidance(ctx context.Context, exerciseName string) (string, error)
}

// GeminiCoach is a Coach backed by Google's Gemini models.
type GeminiCoach struct {
	client *genai.Client
	model  string
}

// NewGeminiCoach creates a Gemini-backed coach.
func NewGeminiCoach(ctx context.Context, apiKey, model string) (*GeminiCoach, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiCoach{client: client, model: model}, nil
}

// Guidance generates markdown coaching guidance for the exercise.
func (c *GeminiCoach) Guidance(ctx context.Context, exerciseName string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(buildPrompt(exerciseName)), nil)
	if err != nil {
		return "", fmt.Errorf("generating guidance: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty guidance response")
	}
	return text, nil
}

func buildPrompt(exerciseName string) string {
	return fmt.Sprintf(`
You are an expert AI fitness coach with deep knowledge of biomechanics,
injury prevention, and beginner coaching psychology.

Your task is to generate personalized coaching guidance for the exercise below.

Exercise Name: %s

GOALS:
- This must NOT sound like a generic textbook explanation.
- It should feel like a real coach analyzing how a beginner would perform this exercise.
- Explain the WHY behind each instruction.
- Anticipate common beginner mistakes and correct them proactively.
- Add intelligent cues that show awareness of human movement patterns.

ASSUME:
- The user is a beginner or early-intermediate trainee.
- The user may have limited mobility, weak stabilizer muscles, or poor mind-muscle connection.
- Safety and long-term progress matter more than lifting heavy.

FORMAT STRICTLY IN MARKDOWN:

## What This Exercise Actually Trains
Briefly explain the primary and secondary muscles AND why this exercise matters.

## Equipment & Setup
Mention required equipment and explain setup with reasoning (not just steps).

## Step-by-Step Execution (With Coaching Cues)
Explain how to perform the movement.
For each major step, include:
- what to do
- why it matters biomechanically
- one internal coaching cue (what to "feel")

## Common Mistakes Beginners Make (And How to Fix Them)
List realistic mistakes and corrective advice.

## Smart Variations (Based on Ability)
Suggest:
- one easier regression
- one progression
Explain when each should be used.

## Safety & Recovery Notes
Mention joints at risk, breathing, and recovery guidance.

TONE:
- Clear, confident, supportive
- Concise but insightful (no fluff)

Do NOT mention that you are an AI or language model.
Do NOT include emojis.
Do NOT include disclaimers.
`, exerciseName)
}
