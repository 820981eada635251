// Package advisor implements the menu-driven agricultural assistant. A
// session pairs one detection result with the grower's crop, postal code and
// infestation level, and answers follow-up selections over a single
// conversational channel so the model keeps the earlier turns as context.
package advisor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cropsage/cropsage/internal/detect"
	"github.com/cropsage/cropsage/internal/location"
	"github.com/cropsage/cropsage/internal/products"
)

// Channel is a stateful conversation with the model. Asking appends the turn
// to the channel's history.
type Channel interface {
	Ask(ctx context.Context, message string) (string, error)
}

// OpenChannel opens a conversational channel seeded with the session's
// standing context.
type OpenChannel func(standingContext string) Channel

// locator fetches location records by postal code.
type locator interface {
	Weather(ctx context.Context, zipcode string) location.Weather
	Soil(ctx context.Context, zipcode string) location.Soil
}

// Details are the grower-supplied fields collected after detection.
type Details struct {
	PlantType        string
	Zipcode          string
	InfestationLevel string
}

// ConversationEntry is one answered turn, kept for display only.
type ConversationEntry struct {
	Label  string
	Answer string
}

// Session owns a conversational channel for one detected issue. Menu
// selections and custom questions go through Answer and AskCustom; each
// appends exactly one entry to the conversation log.
type Session struct {
	logger    *slog.Logger
	channel   Channel
	locations locator
	searcher  products.Searcher

	detection detect.Result
	details   Details
	treatment string
	log       []ConversationEntry
}

// NewSession assembles a session and opens its channel. It performs no
// network calls; treatment generation is a separate step so the caller
// controls when the first model round-trip happens.
func NewSession(logger *slog.Logger, open OpenChannel, locations locator, searcher products.Searcher, detection detect.Result, details Details) *Session {
	if details.InfestationLevel == "" {
		details.InfestationLevel = "Unknown"
	}
	return &Session{
		logger:    logger,
		channel:   open(standingContext(detection, details)),
		locations: locations,
		searcher:  searcher,
		detection: detection,
		details:   details,
	}
}

// standingContext is the session framing embedded in the channel history, so
// later turns (including verbatim custom questions) need no added framing.
func standingContext(detection detect.Result, details Details) string {
	return fmt.Sprintf(`You are an agricultural expert advising a grower.

ISSUE: %s (%s)
PLANT: %s
INFESTATION LEVEL: %s
LOCATION: Zip code %s

Answer follow-up questions using this context.`,
		detection.Issue, detection.Severity, details.PlantType,
		details.InfestationLevel, details.Zipcode)
}

// Detection returns the detection result the session was created for.
func (s *Session) Detection() detect.Result {
	return s.detection
}

// Details returns the grower-supplied fields.
func (s *Session) Details() Details {
	return s.details
}

// Treatment returns the stored treatment recommendations, empty until
// GenerateTreatment has run.
func (s *Session) Treatment() string {
	return s.treatment
}

// Log returns a copy of the conversation log in append order.
func (s *Session) Log() []ConversationEntry {
	entries := make([]ConversationEntry, len(s.log))
	copy(entries, s.log)
	return entries
}
