package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
	"github.com/cropsage/cropsage/internal/location"
)

// Menu selectors. Treatment has no selector: it is generated when the session
// starts and embedded in the detailed report.
const (
	SelectSoil       = 2
	SelectWeather    = 3
	SelectMonitoring = 4
	SelectReport     = 5
)

const sectionRule = "──────────────────────────────────────────────────────────────────────"

const reportRule = "======================================================================"

// Answer runs the procedure behind one menu selector and appends exactly one
// entry to the conversation log. Failures inside a procedure surface as
// inline text in the answer, never as an error.
func (s *Session) Answer(ctx context.Context, option int) string {
	var label, answer string
	switch option {
	case SelectSoil:
		label = "Soil Impact"
		answer = s.soilImpact(ctx, s.locations.Soil(ctx, s.details.Zipcode))
	case SelectWeather:
		label = "Weather Timing"
		answer = s.weatherTiming(ctx, s.locations.Weather(ctx, s.details.Zipcode))
	case SelectMonitoring:
		label = "Monitoring"
		answer = s.monitoring(ctx)
	case SelectReport:
		label = "Full Report"
		answer = s.report(ctx)
	default:
		return "Invalid option"
	}
	s.log = append(s.log, ConversationEntry{Label: label, Answer: answer})
	return answer
}

// AskCustom forwards the question verbatim over the channel; the standing
// session context is already part of the channel history. The literal
// question becomes the log label.
func (s *Session) AskCustom(ctx context.Context, question string) string {
	answer, err := s.channel.Ask(ctx, question)
	if err != nil {
		s.logger.Warn("custom question failed", errors.SlogError(err))
		answer = fmt.Sprintf("Error: %s", err)
	}
	answer = strings.TrimSpace(answer)
	s.log = append(s.log, ConversationEntry{Label: question, Answer: answer})
	return answer
}

// soilImpact renders the soil display for an already-fetched record and asks
// for a two-paragraph analysis beneath it.
func (s *Session) soilImpact(ctx context.Context, soil location.Soil) string {
	display := formatSoilDisplay(soil)
	prompt := fmt.Sprintf(`The user can see their soil information above.

Provide analysis in 2 SHORT paragraphs:

Paragraph 1: What this soil type means for %s cultivation

Paragraph 2: How soil affects treatment for %s (application adjustments, pH impact)

Keep it concise - exactly 2 paragraphs.`, s.details.PlantType, s.detection.Issue)

	analysis, err := s.channel.Ask(ctx, prompt)
	if err != nil {
		s.logger.Warn("soil analysis failed", errors.SlogError(err))
		analysis = fmt.Sprintf("Error generating analysis: %s", err)
	}
	return display + "\n\n" + strings.TrimSpace(analysis)
}

// weatherTiming renders the weather display for an already-fetched record and
// asks for a two-paragraph timing recommendation beneath it.
func (s *Session) weatherTiming(ctx context.Context, weather location.Weather) string {
	display := formatWeatherDisplay(weather)
	prompt := fmt.Sprintf(`The user can see their weather information above.

Provide timing guidance in 2 short paragraphs:

Paragraph 1: Best application window in next 3 days for treating %s

Paragraph 2: Why timing matters (rain, temperature, wind effects)

Keep it BRIEF - exactly 2 paragraphs.`, s.detection.Issue)

	guidance, err := s.channel.Ask(ctx, prompt)
	if err != nil {
		s.logger.Warn("weather guidance failed", errors.SlogError(err))
		guidance = fmt.Sprintf("Error: %s", err)
	}
	return display + "\n\n" + strings.TrimSpace(guidance)
}

func (s *Session) monitoring(ctx context.Context) string {
	prompt := fmt.Sprintf(`Provide monitoring and prevention advice for %s on %s.

Include:
1. How often to check plants
2. Signs of treatment success/failure
3. Prevention tips

Keep it to 2 paragraphs.`, s.detection.Issue, s.details.PlantType)

	advice, err := s.channel.Ask(ctx, prompt)
	if err != nil {
		s.logger.Warn("monitoring advice failed", errors.SlogError(err))
		advice = fmt.Sprintf("Error: %s", err)
	}
	return strings.TrimSpace(advice)
}

// report composes the four sections in fixed order. Soil and weather are
// fetched once here and their displays reused, unlike the standalone
// selectors which fetch on every call. A failed sub-call leaves its error
// text in that section's slot; the remaining sections still run.
func (s *Session) report(ctx context.Context) string {
	soil := s.locations.Soil(ctx, s.details.Zipcode)
	weather := s.locations.Weather(ctx, s.details.Zipcode)

	treatment := s.treatmentRecommendations(ctx)
	soilImpact := s.soilImpact(ctx, soil)
	weatherTiming := s.weatherTiming(ctx, weather)
	monitoring := s.monitoring(ctx)

	return fmt.Sprintf(`
%s
COMPREHENSIVE TREATMENT REPORT
%s

## 1. TREATMENT RECOMMENDATIONS
%s

%s

## 2. SOIL IMPACT ANALYSIS
%s

%s

## 3. WEATHER-BASED TIMING
%s

%s

## 4. MONITORING & PREVENTION
%s

%s
`, reportRule, reportRule,
		treatment, sectionRule,
		soilImpact, sectionRule,
		weatherTiming, sectionRule,
		monitoring, reportRule)
}
