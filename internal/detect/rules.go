package detect

import (
	"strings"
)

// Unidentified is returned when no identification rule matches the analysis.
const Unidentified = "Unidentified"

// extractionRule matches one markdown bullet heading in the classifier output.
// A value equal to one of the placeholders counts as missing.
type extractionRule struct {
	prefixes     []string
	placeholders []string
}

// identificationRules are evaluated in priority order over the whole analysis:
// a disease name wins over a plant species even when the species line comes
// first, because pathology is more actionable than taxonomy. Prefixes are
// matched case-insensitively at the start of a line.
var identificationRules = []extractionRule{
	{
		prefixes:     []string{"- **disease name**:", "**disease name**:"},
		placeholders: []string{"", "n/a", "none", "unknown"},
	},
	{
		prefixes:     []string{"- **plant species**:", "**plant species**:"},
		placeholders: []string{"", "unknown"},
	},
	{
		prefixes:     []string{"- **insect species**:", "**insect species**:"},
		placeholders: []string{"", "unknown"},
	},
}

// extractIdentification scans the analysis for the primary identification,
// e.g., the disease or species name.
func extractIdentification(analysis string) string {
	for _, rule := range identificationRules {
		if value, ok := rule.scan(analysis); ok {
			return value
		}
	}
	return Unidentified
}

// scan returns the first usable value for the rule in line order.
func (r extractionRule) scan(analysis string) (string, bool) {
	for _, line := range strings.Split(analysis, "\n") {
		lower := strings.ToLower(line)
		for _, prefix := range r.prefixes {
			if !strings.HasPrefix(lower, prefix) {
				continue
			}
			value := strings.TrimSpace(line[len(prefix):])
			if r.placeholder(value) {
				continue
			}
			return value, true
		}
	}
	return "", false
}

func (r extractionRule) placeholder(value string) bool {
	lower := strings.ToLower(value)
	for _, placeholder := range r.placeholders {
		if lower == placeholder {
			return true
		}
	}
	return false
}

// extractSubject determines whether the analysis describes a plant or a pest.
func extractSubject(analysis string) Subject {
	lower := strings.ToLower(analysis)
	switch {
	case strings.Contains(lower, "plant species:") || strings.Contains(lower, "health status:"):
		return SubjectPlant
	case strings.Contains(lower, "insect species:") || strings.Contains(lower, "classification:"):
		return SubjectPest
	}
	return SubjectUnknown
}

// extractSeverity maps the severity level heading to one of Mild, Moderate,
// Severe or Unknown. When the model echoes several levels on the line, the most
// severe one mentioned wins.
func extractSeverity(analysis string) string {
	prefixes := []string{"- **severity level**:", "**severity level**:"}
	for _, line := range strings.Split(analysis, "\n") {
		lower := strings.ToLower(line)
		for _, prefix := range prefixes {
			if !strings.HasPrefix(lower, prefix) {
				continue
			}
			value := strings.ToLower(strings.TrimSpace(line[len(prefix):]))
			switch {
			case strings.Contains(value, "severe"):
				return "Severe"
			case strings.Contains(value, "moderate"):
				return "Moderate"
			case strings.Contains(value, "mild"):
				return "Mild"
			}
		}
	}
	return "Unknown"
}

// extractPlantType returns the plant species heading value or "Unknown".
func extractPlantType(analysis string) string {
	rule := extractionRule{
		prefixes:     []string{"- **plant species**:", "**plant species**:"},
		placeholders: []string{"", "unknown"},
	}
	if value, ok := rule.scan(analysis); ok {
		return value
	}
	return "Unknown"
}
