package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
)

// completer is a single-shot completion without conversational state.
type completer interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
}

const briefAssessmentPrompt = `Provide a VERY BRIEF 1-2 sentence risk assessment for:
Pest/Disease: %s
Severity: %s
Plant: %s

Format: One sentence about the key risk this poses to the plant. Keep it under 25 words.
Example: "Voracious feeders capable of defoliating plants within days, significantly impacting yield."

Be concise and urgent.`

// BriefAssessment produces the short risk line shown with the detection
// result, before any session exists. A model failure degrades to a canned
// moderate-urgency assessment.
func BriefAssessment(ctx context.Context, logger *slog.Logger, client completer, issue, severity, plantType string) string {
	prompt := fmt.Sprintf(briefAssessmentPrompt, issue, severity, plantType)
	assessment, err := client.CompleteText(ctx, prompt)
	if err != nil {
		logger.Warn("brief assessment failed", errors.SlogError(err))
		return fmt.Sprintf("**Urgency:** Moderate\n**Risk Factor:** %s can cause significant damage to %s.\n**Action:** Treatment recommended.", issue, plantType)
	}
	return strings.TrimSpace(assessment)
}
