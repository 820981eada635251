package advisor

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cropsage/cropsage/internal/detect"
	"github.com/cropsage/cropsage/internal/location"
	"github.com/cropsage/cropsage/internal/products"
	"github.com/cropsage/cropsage/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	text string
	err  error
}

// scriptedChannel answers from a fixed reply queue and records every message
// it was asked, including the standing context it was opened with.
type scriptedChannel struct {
	standingContext string
	messages        []string
	replies         []reply
}

func (c *scriptedChannel) Ask(_ context.Context, message string) (string, error) {
	c.messages = append(c.messages, message)
	if len(c.replies) == 0 {
		return "stub answer", nil
	}
	next := c.replies[0]
	c.replies = c.replies[1:]
	return next.text, next.err
}

type fakeLocator struct {
	weather      location.Weather
	soil         location.Soil
	weatherCalls int
	soilCalls    int
}

func (l *fakeLocator) Weather(_ context.Context, _ string) location.Weather {
	l.weatherCalls++
	return l.weather
}

func (l *fakeLocator) Soil(_ context.Context, _ string) location.Soil {
	l.soilCalls++
	return l.soil
}

type fakeSearcher struct {
	queries []string
	results []products.Product
	err     error
}

func (s *fakeSearcher) Search(_ context.Context, query string, maxResults int) ([]products.Product, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) > maxResults {
		return s.results[:maxResults], nil
	}
	return s.results, nil
}

func clayPercent(v float64) *float64 {
	return &v
}

func newTestSession(channel *scriptedChannel, locations *fakeLocator, searcher *fakeSearcher) *Session {
	detection := detect.Result{
		Issue:     "Early Blight",
		Severity:  "Moderate",
		PlantType: "Tomato",
		Subject:   detect.SubjectPlant,
	}
	details := Details{PlantType: "Tomato", Zipcode: "92336", InfestationLevel: "medium"}
	open := func(standingContext string) Channel {
		channel.standingContext = standingContext
		return channel
	}
	return NewSession(testhelpers.NewLogger(io.Discard), open, locations, searcher, detection, details)
}

func TestNewSession_seedsStandingContext(t *testing.T) {
	channel := &scriptedChannel{}
	newTestSession(channel, &fakeLocator{}, &fakeSearcher{})

	assert.Contains(t, channel.standingContext, "Early Blight")
	assert.Contains(t, channel.standingContext, "Tomato")
	assert.Contains(t, channel.standingContext, "medium")
	assert.Contains(t, channel.standingContext, "92336")
}

func TestSession_Answer_soilFetchesFreshEachTime(t *testing.T) {
	channel := &scriptedChannel{}
	locations := &fakeLocator{soil: location.Soil{
		Zipcode: "92336",
		Properties: &location.SoilProperties{
			SoilName:      "Ramona sandy loam",
			SoilTexture:   "Sandy Loam",
			DrainageClass: "Well drained",
			ClayPercent:   clayPercent(10.5),
		},
	}}
	session := newTestSession(channel, locations, &fakeSearcher{})

	answer := session.Answer(context.Background(), SelectSoil)
	session.Answer(context.Background(), SelectSoil)

	assert.Equal(t, 2, locations.soilCalls)
	assert.Contains(t, answer, "- 🪨 Name: Ramona sandy loam")
	assert.Contains(t, answer, "- 🧱 Clay: 10.5%")
	assert.True(t, strings.HasSuffix(answer, "\n\nstub answer"))
	assert.Contains(t, channel.messages[0], "exactly 2 paragraphs")
}

func TestSession_Answer_weatherShowsDisplayBlock(t *testing.T) {
	channel := &scriptedChannel{replies: []reply{{text: "Spray at dawn."}}}
	locations := &fakeLocator{weather: location.Weather{
		Zipcode:  "92336",
		Location: &location.Place{City: "Fontana", State: "CA"},
		Current: &location.Conditions{
			Temperature:     85,
			TemperatureUnit: "F",
			WindSpeed:       "5 mph",
			WindDirection:   "SW",
			ShortForecast:   "Sunny",
		},
		Forecast: []location.Period{{Name: "Today", Temperature: 85, ShortForecast: "Sunny"}},
	}}
	session := newTestSession(channel, locations, &fakeSearcher{})

	answer := session.Answer(context.Background(), SelectWeather)

	assert.Contains(t, answer, "- 📍 Location: Fontana, CA")
	assert.Contains(t, answer, "- 🌡️ Temperature: 85°F")
	assert.Contains(t, answer, "• Today: 85° - Sunny")
	assert.True(t, strings.HasSuffix(answer, "\n\nSpray at dawn."))
}

func TestSession_Answer_appendsExactlyOneLogEntry(t *testing.T) {
	channel := &scriptedChannel{}
	session := newTestSession(channel, &fakeLocator{}, &fakeSearcher{})

	session.Answer(context.Background(), SelectMonitoring)
	require.Len(t, session.Log(), 1)
	assert.Equal(t, "Monitoring", session.Log()[0].Label)

	session.Answer(context.Background(), SelectReport)
	log := session.Log()
	require.Len(t, log, 2)
	assert.Equal(t, "Full Report", log[1].Label)
	assert.Contains(t, log[1].Answer, "COMPREHENSIVE TREATMENT REPORT")
}

func TestSession_Answer_invalidOption(t *testing.T) {
	channel := &scriptedChannel{}
	session := newTestSession(channel, &fakeLocator{}, &fakeSearcher{})

	assert.Equal(t, "Invalid option", session.Answer(context.Background(), 9))
	assert.Empty(t, session.Log())
	assert.Empty(t, channel.messages)
}

func TestSession_report_sectionOrderSurvivesFailures(t *testing.T) {
	channel := &scriptedChannel{replies: []reply{
		{text: "Use neem oil weekly."},          // treatment advice
		{err: assertableError("model timeout")}, // soil analysis fails
		{text: "Spray before Thursday's rain."},
		{err: assertableError("model timeout")}, // monitoring fails
	}}
	locations := &fakeLocator{
		weather: location.Weather{Zipcode: "92336", Err: "Could not find location for zip code 92336"},
		soil:    location.Soil{Zipcode: "92336", Properties: &location.SoilProperties{SoilName: "Ramona"}},
	}
	session := newTestSession(channel, locations, &fakeSearcher{})

	report := session.Answer(context.Background(), SelectReport)

	treatmentAt := strings.Index(report, "## 1. TREATMENT RECOMMENDATIONS")
	soilAt := strings.Index(report, "## 2. SOIL IMPACT ANALYSIS")
	weatherAt := strings.Index(report, "## 3. WEATHER-BASED TIMING")
	monitoringAt := strings.Index(report, "## 4. MONITORING & PREVENTION")
	require.True(t, treatmentAt >= 0 && soilAt >= 0 && weatherAt >= 0 && monitoringAt >= 0)
	assert.True(t, treatmentAt < soilAt && soilAt < weatherAt && weatherAt < monitoringAt)

	assert.Contains(t, report, "Error generating analysis: model timeout")
	assert.Contains(t, report, "⚠️ Weather data unavailable")
	assert.Contains(t, report, "Spray before Thursday's rain.")

	// One report fetch each; the displays are reused across sections.
	assert.Equal(t, 1, locations.soilCalls)
	assert.Equal(t, 1, locations.weatherCalls)
}

func TestSession_AskCustom_forwardsVerbatim(t *testing.T) {
	channel := &scriptedChannel{replies: []reply{{text: "Yes, rotate crops next season."}}}
	session := newTestSession(channel, &fakeLocator{}, &fakeSearcher{})

	question := "Can I still eat the tomatoes?"
	answer := session.AskCustom(context.Background(), question)

	assert.Equal(t, "Yes, rotate crops next season.", answer)
	require.Len(t, channel.messages, 1)
	assert.Equal(t, question, channel.messages[0])
	require.Len(t, session.Log(), 1)
	assert.Equal(t, question, session.Log()[0].Label)
}

type assertableError string

func (e assertableError) Error() string {
	return string(e)
}
