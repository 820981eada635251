package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/cropsage/cropsage/internal/e2etest"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain switches to the repository root so that the handlers resolve the
// ui/templates glob the same way they do in production.
func TestMain(m *testing.M) {
	if err := os.Chdir("../.."); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const plantAnalysis = `1. This is a PLANT.

- **Plant Species**: Tomato
- **Health Status**: Diseased
- **Disease Name**: Early Blight
- **Symptoms Observed**: Brown concentric lesions on lower leaves
- **Severity Level**: Moderate`

const celebrityAnalysis = `STEP 3: Provide information in this format:

- **Confidence Level**: High
- **Face Detected**: Yes
- **Full Name**: Keanu Reeves
- **Profession**: Actor`

const (
	stubAssessment = "Moderate risk: early blight spreads fast in humid weather, treat within days."
	stubTreatment  = "Apply neem oil spray weekly and remove the affected lower leaves."
	stubSoil       = "Clay-heavy soil drains slowly, so water deeply but less often."
	stubWeather    = "Spray tomorrow morning while the wind stays calm."
	stubMonitoring = "Check the undersides of leaves every two days for new lesions."
	stubAnswer     = "Water at the base of the plant early in the morning."
)

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	response := openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(response))
}

// stubVisionAPI answers the image analysis requests. Vision prompts travel as
// multi-part message content, so the routing matches on the raw body.
func stubVisionAPI(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if strings.Contains(string(body), "celebrity recognition expert") {
			writeCompletion(t, w, celebrityAnalysis)
			return
		}
		writeCompletion(t, w, plantAnalysis)
	}))
	t.Cleanup(server.Close)
	return server
}

// stubAssistantAPI answers the chat completions. The reply is picked by the
// newest user message because the conversation history rides along with it.
func stubAssistantAPI(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)
		prompt := req.Messages[len(req.Messages)-1].Content

		var reply string
		switch {
		case strings.Contains(prompt, "risk assessment"):
			reply = stubAssessment
		case strings.Contains(prompt, "treatment recommendations"):
			reply = stubTreatment
		case strings.Contains(prompt, "soil information above"):
			reply = stubSoil
		case strings.Contains(prompt, "weather information above"):
			reply = stubWeather
		case strings.Contains(prompt, "monitoring and prevention"):
			reply = stubMonitoring
		default:
			reply = stubAnswer
		}
		writeCompletion(t, w, reply)
	}))
	t.Cleanup(server.Close)
	return server
}

func stubLocationAPIs(t *testing.T) (string, string, string) {
	t.Helper()

	geocode := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?><dwml><latLonList>34.0964,-117.4651</latLonList></dwml>`))
	}))
	t.Cleanup(geocode.Close)

	weather := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasPrefix(r.URL.Path, "/points/") {
			_, _ = fmt.Fprintf(w,
				`{"properties": {"forecast": "http://%s/forecast", "relativeLocation": {"properties": {"city": "Fontana", "state": "CA"}}}}`,
				r.Host)
			return
		}
		_, _ = w.Write([]byte(`{"properties": {"periods": [
			{"name": "Today", "temperature": 85, "temperatureUnit": "F",
			 "windSpeed": "5 mph", "windDirection": "SW",
			 "shortForecast": "Sunny", "detailedForecast": "Sunny and hot."}
		]}}`))
	}))
	t.Cleanup(weather.Close)

	soil := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Table": [[
			"Ramona sandy loam, 2 to 5 percent slopes", "RaB", "Ramona",
			"Alfisols", "Typic Haploxeralfs", "Well drained",
			"63.2", "21.57", "15.2", "6.8", "0.75"
		]]}`))
	}))
	t.Cleanup(soil.Close)

	return geocode.URL, weather.URL, soil.URL
}

// stubbedEnvironment wires every external API the server talks to into local
// stubs. The Pinecone variables stay unset so the anime recommender is off.
func stubbedEnvironment(t *testing.T) func(string) (string, bool) {
	t.Helper()
	geocodeURL, weatherURL, soilURL := stubLocationAPIs(t)
	serper := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic": [{"title": "Neem Oil Concentrate", "link": "https://www.amazon.com/dp/B00ABCDEFG"}]}`))
	}))
	t.Cleanup(serper.Close)

	env := map[string]string{
		"CROPSAGE_ADDR":        "localhost:0",
		"GROQ_API_KEY":         "test-groq-key",
		"GOOGLE_API_KEY":       "test-google-key",
		"SERPER_API_KEY":       "test-serper-key",
		"CROPSAGE_GROQ_URL":    stubVisionAPI(t).URL,
		"CROPSAGE_GEMINI_URL":  stubAssistantAPI(t).URL,
		"CROPSAGE_SERPER_URL":  serper.URL,
		"CROPSAGE_GEOCODE_URL": geocodeURL,
		"CROPSAGE_WEATHER_URL": weatherURL,
		"CROPSAGE_SOIL_URL":    soilURL,
	}
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func startServer(t *testing.T) *e2etest.Client {
	t.Helper()
	server, err := e2etest.StartServer(context.Background(), io.Discard, stubbedEnvironment(t), run)
	require.NoError(t, err)
	return server.Client()
}

func pngImage() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), []byte("fake image payload")...)
}

func jpegImage() []byte {
	return append([]byte("\xff\xd8\xff\xe0"), []byte("fake image payload")...)
}

func TestApplication_plantDoctorFlow(t *testing.T) {
	ctx := context.Background()
	client := startServer(t)

	// Without an uploaded image the later stages bounce back to the start.
	doc, err := client.GetDoc(ctx, "/details")
	require.NoError(t, err)
	assert.Equal(t, "📸 Upload Plant Image", doc.Find(".upload h2").Text())

	// Uploading a plant photo lands on the details form with the detection
	// summary and the brief risk assessment.
	doc, err = client.UploadImage(ctx, "/", "/analyze", "plant_image", "leaf.png", pngImage())
	require.NoError(t, err)
	assert.Equal(t, "Early Blight", doc.Find("dd.issue").Text())
	assert.Equal(t, "Moderate", doc.Find("dd.severity").Text())
	assert.Equal(t, "Tomato", doc.Find("dd.plant").Text())
	assert.Contains(t, doc.Find("p.assessment").Text(), stubAssessment)

	// A malformed zip code re-renders the form with a warning.
	doc, err = client.SubmitForm(ctx, "/details", "/details", url.Values{
		"plant":       {"Tomato"},
		"zipcode":     {"123"},
		"infestation": {"medium"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Please enter a valid 5-digit zip code", doc.Find("p.warning").Text())

	// Valid details start the advisor session and generate the treatment
	// recommendations with product links.
	doc, err = client.SubmitForm(ctx, "/details", "/details", url.Values{
		"plant":       {"Tomato"},
		"zipcode":     {"92336"},
		"infestation": {"medium"},
	})
	require.NoError(t, err)
	treatment := doc.Find(".treatment pre.answer").Text()
	assert.Contains(t, treatment, stubTreatment)
	assert.Contains(t, treatment, "**🛒 Recommended Products on Amazon:**")
	assert.Contains(t, treatment, "Neem Oil Concentrate")

	// A menu selection appends a labelled entry to the history.
	doc, err = client.SubmitForm(ctx, "/advisor", "/advisor/answer", url.Values{"option": {"4"}})
	require.NoError(t, err)
	history := doc.Find(".history details")
	require.Equal(t, 1, history.Length())
	assert.Equal(t, "💬 Monitoring", history.Find("summary").Text())
	assert.Contains(t, history.Find("pre.answer").Text(), stubMonitoring)

	// A custom question is labelled with the question itself.
	doc, err = client.SubmitForm(ctx, "/advisor", "/advisor/question", url.Values{
		"question": {"How often should I water?"},
	})
	require.NoError(t, err)
	history = doc.Find(".history details")
	require.Equal(t, 2, history.Length())
	assert.Equal(t, "💬 How often should I water?", history.Last().Find("summary").Text())
	assert.Contains(t, history.Last().Find("pre.answer").Text(), stubAnswer)

	// The detailed report stitches its four sections in a fixed order and
	// embeds the fetched location records.
	doc, err = client.SubmitForm(ctx, "/advisor", "/advisor/answer", url.Values{"option": {"5"}})
	require.NoError(t, err)
	report := doc.Find(".history details").Last().Find("pre.answer").Text()
	treatmentAt := strings.Index(report, "## 1. TREATMENT RECOMMENDATIONS")
	soilAt := strings.Index(report, "## 2. SOIL IMPACT ANALYSIS")
	weatherAt := strings.Index(report, "## 3. WEATHER-BASED TIMING")
	monitoringAt := strings.Index(report, "## 4. MONITORING & PREVENTION")
	require.True(t, treatmentAt >= 0)
	assert.True(t, treatmentAt < soilAt)
	assert.True(t, soilAt < weatherAt)
	assert.True(t, weatherAt < monitoringAt)
	assert.Contains(t, report, "📍 Location: Fontana, CA")
	assert.Contains(t, report, "🪨 Name: Ramona sandy loam")
	assert.Contains(t, report, stubSoil)
	assert.Contains(t, report, stubWeather)

	// Reset tears the session down and returns to the upload stage.
	doc, err = client.SubmitForm(ctx, "/advisor", "/reset", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, "📸 Upload Plant Image", doc.Find(".upload h2").Text())

	// The advisor is gone after the reset.
	doc, err = client.GetDoc(ctx, "/advisor")
	require.NoError(t, err)
	assert.Equal(t, "📸 Upload Plant Image", doc.Find(".upload h2").Text())
}

func TestApplication_analyzeRejectsUnknownImageType(t *testing.T) {
	ctx := context.Background()
	client := startServer(t)

	doc, err := client.UploadImage(ctx, "/", "/analyze", "plant_image", "notes.txt", []byte("just some text"))
	require.NoError(t, err)
	assert.Equal(t, invalidImageWarning, doc.Find("p.warning").Text())
}

func TestApplication_celebrityDetector(t *testing.T) {
	ctx := context.Background()
	client := startServer(t)

	doc, err := client.GetDoc(ctx, "/celebrity")
	require.NoError(t, err)
	assert.Equal(t, "🎬 Celebrity Detector", doc.Find(".upload h2").Text())

	doc, err = client.UploadImage(ctx, "/celebrity", "/celebrity", "photo", "face.jpg", jpegImage())
	require.NoError(t, err)
	assert.Equal(t, "Keanu Reeves", doc.Find("dd.name").Text())
	assert.Equal(t, "Yes", doc.Find("dd.face").Text())
	assert.Equal(t, "Actor", doc.Find("dd.profession").Text())
	assert.Contains(t, doc.Find(".recognition pre.answer").Text(), "Keanu Reeves")
}

func TestApplication_animeRecommenderDisabledWithoutIndex(t *testing.T) {
	ctx := context.Background()
	client := startServer(t)

	doc, err := client.GetDoc(ctx, "/anime")
	require.NoError(t, err)
	assert.Equal(t, "Anime recommendations are not configured on this server.", doc.Find("p.warning").Text())
}

func TestApplication_healthEndpoint(t *testing.T) {
	ctx := context.Background()
	client := startServer(t)

	resp, err := client.Get(ctx, "/api/healthy")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","service":"cropsage"}`, string(body))
}
