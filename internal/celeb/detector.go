// Package celeb identifies celebrities from photos using a vision-capable
// language model.
package celeb

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
	"github.com/cropsage/cropsage/internal/llm"
)

// Result holds the recognition output for one photo.
type Result struct {
	// Analysis is the full markdown analysis from the model, or an inline
	// error message when the request failed.
	Analysis string
	// Name is the identified celebrity or "Unknown".
	Name         string
	FaceDetected bool
	Profession   string
}

const recognitionPrompt = `You are a celebrity recognition expert AI.

Analyze this image step by step:

STEP 1: Describe the visible facial features in detail
- Age range
- Facial structure
- Distinctive features

STEP 2: Identify the person
- If you recognize them as a celebrity, state their full name
- If you're uncertain, say "Uncertain" rather than guessing
- ONLY identify as a celebrity if you are confident (>80% sure)

STEP 3: Provide information in this format:
- **Confidence Level**: High/Medium/Low
- **Face Detected**: Yes/No
- **Full Name**: [Celebrity name or "Unknown" or "Uncertain"]
- **Profession**: [Their primary profession]
- **Nationality**: [Country of origin]
- **Famous For**: [What they are most known for]
- **Top Achievements**: [List 2-3 key accomplishments]

CRITICAL: If multiple celebrities might match, list them as alternatives:
- **Alternative Matches**: [Other possible identities if uncertain]
Be precise. Do NOT guess if uncertain.`

// Detector recognizes celebrities in photos.
type Detector struct {
	client llm.Client
	logger *slog.Logger
}

func NewDetector(client llm.Client, logger *slog.Logger) *Detector {
	return &Detector{
		client: client,
		logger: logger,
	}
}

// Identify runs the recognition for one image. A failed model call degrades to
// an error-marked result instead of propagating the failure.
func (d *Detector) Identify(ctx context.Context, image []byte, mimeType string) Result {
	analysis, err := d.client.CompleteVision(ctx, recognitionPrompt, image, mimeType)
	if err != nil {
		d.logger.LogAttrs(ctx, slog.LevelError, "celebrity recognition failed", errors.SlogError(err))
		return Result{
			Analysis:     "Error analyzing image",
			Name:         "Unknown",
			FaceDetected: false,
			Profession:   "Unknown",
		}
	}
	return Result{
		Analysis:     analysis,
		Name:         extractName(analysis),
		FaceDetected: extractFaceDetected(analysis),
		Profession:   extractProfession(analysis),
	}
}

// extractFaceDetected reports whether the model found a face in the image.
func extractFaceDetected(analysis string) bool {
	for _, line := range strings.Split(analysis, "\n") {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "- **face detected**:") {
			status := strings.TrimSpace(lower[len("- **face detected**:"):])
			return status == "yes"
		}
	}
	return false
}

func extractName(analysis string) string {
	for _, line := range strings.Split(analysis, "\n") {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "- **full name**:") {
			name := strings.TrimSpace(line[len("- **full name**:"):])
			if name != "" && name != "Unknown" {
				return name
			}
		}
	}
	return "Unknown"
}

func extractProfession(analysis string) string {
	for _, line := range strings.Split(analysis, "\n") {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "- **profession**:") {
			return strings.TrimSpace(line[len("- **profession**:"):])
		}
	}
	return "Unknown"
}
