package advisor

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/cropsage/cropsage/internal/detect"
	"github.com/cropsage/cropsage/internal/products"
	"github.com/cropsage/cropsage/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_GenerateTreatment_searchesMentionedProductTypes(t *testing.T) {
	channel := &scriptedChannel{replies: []reply{
		{text: "Apply spinosad first. Follow up with neem oil and pyrethrin if needed."},
	}}
	searcher := &fakeSearcher{results: []products.Product{
		{Name: "Monterey Garden Insect Spray", Price: "$24.99", Rating: "4.6 out of 5 stars", URL: "https://www.amazon.com/dp/B00ARKS3XO"},
	}}
	session := newTestSession(channel, &fakeLocator{}, searcher)

	treatment := session.GenerateTreatment(context.Background())

	// Two searches at most, in keyword list order.
	require.Equal(t, []string{
		"spinosad organic pesticide",
		"neem oil organic pesticide",
	}, searcher.queries)
	assert.Contains(t, treatment, "Apply spinosad first.")
	assert.Contains(t, treatment, "**🛒 Recommended Products on Amazon:**")
	assert.Contains(t, treatment, "1. **Monterey Garden Insect Spray**")
	assert.Contains(t, treatment, "💰 $24.99 | ⭐ 4.6 out of 5 stars")
	assert.Contains(t, treatment, "[View on Amazon](https://www.amazon.com/dp/B00ARKS3XO)")
	assert.Equal(t, treatment, session.Treatment())

	// The advice request names the infestation level.
	require.Len(t, channel.messages, 1)
	assert.Contains(t, channel.messages[0], "MEDIUM infestation")
}

func TestSession_GenerateTreatment_fallbackQuery(t *testing.T) {
	channel := &scriptedChannel{replies: []reply{
		{text: "Remove affected leaves and improve airflow."},
	}}
	searcher := &fakeSearcher{}
	session := newTestSession(channel, &fakeLocator{}, searcher)

	treatment := session.GenerateTreatment(context.Background())

	require.Equal(t, []string{"Early Blight treatment Tomato organic pesticide"}, searcher.queries)
	assert.Contains(t, treatment, "*(Product links temporarily unavailable)*")
}

func TestSession_GenerateTreatment_nameOnlyProducts(t *testing.T) {
	channel := &scriptedChannel{replies: []reply{{text: "Use copper fungicide."}}}
	searcher := &fakeSearcher{results: []products.Product{
		{Name: "View search results for: copper fungicide organic pesticide", URL: "https://www.amazon.com/s?k=copper+fungicide+organic+pesticide"},
	}}
	session := newTestSession(channel, &fakeLocator{}, searcher)

	treatment := session.GenerateTreatment(context.Background())

	assert.Contains(t, treatment, "1. **View search results for: copper fungicide organic pesticide**")
	assert.NotContains(t, treatment, "💰")
}

func TestSession_GenerateTreatment_adviceFailure(t *testing.T) {
	channel := &scriptedChannel{replies: []reply{{err: assertableError("model overloaded")}}}
	searcher := &fakeSearcher{}
	session := newTestSession(channel, &fakeLocator{}, searcher)

	treatment := session.GenerateTreatment(context.Background())

	assert.Equal(t, "Error generating recommendations: model overloaded", treatment)
	assert.Empty(t, searcher.queries)
}

func TestSession_treatmentPrompt_levelVariants(t *testing.T) {
	open := func(string) Channel { return &scriptedChannel{} }
	logger := testhelpers.NewLogger(io.Discard)
	detection := detect.Result{Issue: "Aphids", Severity: "Mild", PlantType: "Kale"}

	lowSession := NewSession(logger, open, &fakeLocator{}, &fakeSearcher{},
		detection, Details{PlantType: "Kale", Zipcode: "99205", InfestationLevel: "low"})
	assert.Contains(t, lowSession.treatmentPrompt(), "Include manual removal as first option")

	unknownSession := NewSession(logger, open, &fakeLocator{}, &fakeSearcher{},
		detection, Details{PlantType: "Kale", Zipcode: "99205"})
	prompt := unknownSession.treatmentPrompt()
	assert.Contains(t, prompt, "ALL THREE infestation levels")
	assert.True(t, strings.Contains(prompt, "**Low Infestation:**") &&
		strings.Contains(prompt, "**Medium Infestation:**") &&
		strings.Contains(prompt, "**High Infestation:**"))
}

func TestBriefAssessment_fallsBackOnFailure(t *testing.T) {
	failing := failingCompleter{}

	assessment := BriefAssessment(context.Background(), testhelpers.NewLogger(io.Discard),
		failing, "Hornworms", "Severe", "Tomato")

	assert.Equal(t, "**Urgency:** Moderate\n**Risk Factor:** Hornworms can cause significant damage to Tomato.\n**Action:** Treatment recommended.", assessment)
}

func TestBriefAssessment_passesContext(t *testing.T) {
	recorder := &recordingCompleter{reply: "Rapid defoliators; treat within days to protect yield."}

	assessment := BriefAssessment(context.Background(), testhelpers.NewLogger(io.Discard),
		recorder, "Hornworms", "Severe", "Tomato")

	assert.Equal(t, "Rapid defoliators; treat within days to protect yield.", assessment)
	assert.Contains(t, recorder.prompt, "Pest/Disease: Hornworms")
	assert.Contains(t, recorder.prompt, "Severity: Severe")
	assert.Contains(t, recorder.prompt, "under 25 words")
}

type failingCompleter struct{}

func (failingCompleter) CompleteText(_ context.Context, _ string) (string, error) {
	return "", assertableError("bad gateway")
}

type recordingCompleter struct {
	prompt string
	reply  string
}

func (c *recordingCompleter) CompleteText(_ context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.reply, nil
}
