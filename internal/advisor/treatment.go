package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
	"github.com/cropsage/cropsage/internal/products"
)

// productKeywords are the treatment-product types worth searching for. The
// advice text is scanned for these in order; at most two become queries.
var productKeywords = []string{
	"Bt", "spinosad", "neem oil", "pyrethrin", "insecticidal soap",
	"copper fungicide", "sulfur spray", "diatomaceous earth",
	"horticultural oil", "bacillus thuringiensis",
}

const (
	maxProductSearches = 2
	maxProductsShown   = 4
)

const allLevelsTreatmentPrompt = `Provide brief treatment recommendations for ALL THREE infestation levels.

For each level, recommend 2-3 SPECIFIC product types (e.g., "Bt insecticide", "Spinosad spray", "Neem oil concentrate").

Format:
**Low Infestation:**
- Manual removal (if applicable)
- Product types: [specific product type 1], [specific product type 2]

**Medium Infestation:**
- Product types: [specific product type 1], [specific product type 2]

**High Infestation:**
- Product types: [specific product type 1], [specific product type 2]

CRITICAL: Mention specific PRODUCT TYPES (not brand names) that we can search on Amazon.`

// GenerateTreatment produces and stores the treatment recommendations: one
// conversational request for advice, then product searches driven by the
// product types the advice mentions.
func (s *Session) GenerateTreatment(ctx context.Context) string {
	s.treatment = s.treatmentRecommendations(ctx)
	return s.treatment
}

func (s *Session) treatmentRecommendations(ctx context.Context) string {
	advice, err := s.channel.Ask(ctx, s.treatmentPrompt())
	if err != nil {
		s.logger.Warn("treatment advice failed", errors.SlogError(err))
		return fmt.Sprintf("Error generating recommendations: %s", err)
	}
	advice = strings.TrimSpace(advice)
	return advice + s.productLinks(ctx, advice)
}

func (s *Session) treatmentPrompt() string {
	if s.details.InfestationLevel == "Unknown" {
		return allLevelsTreatmentPrompt
	}
	manualRemoval := ""
	if s.details.InfestationLevel == "low" {
		manualRemoval = "Include manual removal as first option since infestation is low.\n\n"
	}
	return fmt.Sprintf(`Provide treatment recommendations for %s infestation of %s on %s.

Recommend 2-3 SPECIFIC product types suitable for %s (e.g., "organic Bt spray for caterpillars", "spinosad concentrate", "neem oil spray").

%sFormat in 2 short paragraphs. List specific PRODUCT TYPES (not brand names) that we can search on Amazon.`,
		strings.ToUpper(s.details.InfestationLevel), s.detection.Issue, s.details.PlantType,
		s.details.PlantType, manualRemoval)
}

// productLinks scans the advice for known product types, searches for the
// first two, and renders up to four results. Searches only supplement the
// advice; their failure degrades to an unavailability note.
func (s *Session) productLinks(ctx context.Context, advice string) string {
	adviceLower := strings.ToLower(advice)
	var matched []string
	for _, keyword := range productKeywords {
		if strings.Contains(adviceLower, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	if len(matched) == 0 {
		matched = []string{fmt.Sprintf("%s treatment %s", s.detection.Issue, s.details.PlantType)}
	}
	if len(matched) > maxProductSearches {
		matched = matched[:maxProductSearches]
	}

	var found []products.Product
	for _, keyword := range matched {
		results, err := s.searcher.Search(ctx, keyword+" organic pesticide", 2)
		if err != nil {
			s.logger.Warn("product search failed", errors.SlogError(err))
			continue
		}
		found = append(found, results...)
	}

	var b strings.Builder
	b.WriteString("\n\n---\n\n**🛒 Recommended Products on Amazon:**\n\n")
	if len(found) == 0 {
		b.WriteString("*(Product links temporarily unavailable)*\n")
		return b.String()
	}
	if len(found) > maxProductsShown {
		found = found[:maxProductsShown]
	}
	for i, product := range found {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, product.Name)
		if product.Price != "" || product.Rating != "" {
			fmt.Fprintf(&b, "   💰 %s | ⭐ %s\n", product.Price, product.Rating)
		}
		fmt.Fprintf(&b, "   🔗 [View on Amazon](%s)\n\n", product.URL)
	}
	return b.String()
}
