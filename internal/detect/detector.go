// Package detect identifies plant diseases and pests from photos using a
// vision-capable language model and deterministic extraction rules over its
// free-text analysis.
package detect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
	"github.com/cropsage/cropsage/internal/llm"
)

// Subject classifies what an analyzed image depicts.
type Subject string

const (
	SubjectPlant   Subject = "plant"
	SubjectPest    Subject = "pest"
	SubjectUnknown Subject = "unknown"
	SubjectError   Subject = "error"
)

// Result is the flat record produced once per uploaded image. It is immutable
// after creation; every field is filled even when the classification failed.
type Result struct {
	// Analysis is the full markdown analysis returned by the model, or an
	// inline error message when the request failed.
	Analysis string
	// Issue is the primary identification: disease name, plant species or
	// insect species, in that priority order.
	Issue string
	// Severity is one of Mild, Moderate, Severe or Unknown.
	Severity string
	// PlantType is the identified plant species or "Unknown".
	PlantType string
	Subject   Subject
}

const detectionPrompt = `You are an agricultural AI expert specializing in plant health and pest identification.

Analyze this image and determine:

1. Is this a PLANT or an INSECT/PEST?

If it's a PLANT:
- **Plant Species**: [Identify if possible]
- **Health Status**: Healthy or Diseased
- **Disease Name**: [If diseased, provide specific name]
- **Symptoms Observed**: [Describe visible issues: spots, discoloration, wilting, etc.]
- **Severity Level**: Mild / Moderate / Severe
- **Recommended Treatments**: [List 2-3 treatment options]
- **Prevention Measures**: [How to prevent this issue]

If it's an INSECT/PEST:
- **Insect Species**: [Scientific and common name]
- **Classification**: Pest / Beneficial / Pollinator
- **Crops Affected**: [Which plants does it attack?]
- **Damage Description**: [What damage does it cause?]
- **Control Methods**: [List 2-3 control strategies]
- **Natural Predators**: [If applicable]

If the image shows something else or is unclear, respond with "Unable to identify - please provide a clearer image of a plant or insect."`

// Detector classifies plant and pest photos.
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

// Identify runs the classification for one image. A failed model call degrades
// to an error-marked result instead of propagating the failure.
func (d *Detector) Identify(ctx context.Context, image []byte, mimeType string) Result {
	analysis, err := d.client.CompleteVision(ctx, detectionPrompt, image, mimeType)
	if err != nil {
		d.logger.LogAttrs(ctx, slog.LevelError, "image classification failed", errors.SlogError(err))
		return Result{
			Analysis:  fmt.Sprintf("API request failed: %s", err),
			Issue:     "Error",
			Severity:  "Unknown",
			PlantType: "Unknown",
			Subject:   SubjectError,
		}
	}
	return newResult(analysis)
}

// newResult applies the extraction rules to a model analysis.
func newResult(analysis string) Result {
	if failedAnalysis(analysis) {
		return Result{
			Analysis:  analysis,
			Issue:     "Error",
			Severity:  "Unknown",
			PlantType: "Unknown",
			Subject:   SubjectError,
		}
	}
	return Result{
		Analysis:  analysis,
		Issue:     extractIdentification(analysis),
		Severity:  extractSeverity(analysis),
		PlantType: extractPlantType(analysis),
		Subject:   extractSubject(analysis),
	}
}

// failedAnalysis recognizes inline error strings produced instead of a real
// analysis.
func failedAnalysis(analysis string) bool {
	return analysis == "" || strings.HasPrefix(analysis, "Error") || strings.HasPrefix(analysis, "API")
}
