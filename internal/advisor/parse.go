package advisor

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	zipPattern   = regexp.MustCompile(`\b\d{5}\b`)
	detailsNoise = regexp.MustCompile(`(?i)\b(low|medium|moderate|high|severe|heavy|infestation|level)\b`)
)

// ParseDetails extracts the crop, postal code and infestation level from one
// free-text line such as "tomato 92336 low infestation". Level detection is a
// substring match, so "moderate" and "medium" mean the same bucket; whatever
// remains after removing the postal code and level keywords is title-cased as
// the crop name. Missing parts stay zero-valued.
func ParseDetails(text string) Details {
	var details Details
	details.Zipcode = zipPattern.FindString(text)

	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "low"):
		details.InfestationLevel = "low"
	case strings.Contains(lowered, "medium"), strings.Contains(lowered, "moderate"):
		details.InfestationLevel = "medium"
	case strings.Contains(lowered, "high"), strings.Contains(lowered, "severe"), strings.Contains(lowered, "heavy"):
		details.InfestationLevel = "high"
	}

	remainder := zipPattern.ReplaceAllString(text, "")
	remainder = detailsNoise.ReplaceAllString(remainder, "")
	remainder = strings.Join(strings.Fields(strings.ReplaceAll(remainder, ",", " ")), " ")
	if remainder != "" {
		details.PlantType = cases.Title(language.English).String(remainder)
	}
	return details
}
