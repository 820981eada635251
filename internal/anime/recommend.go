package anime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
)

const defaultTopK = 5

const recommendationPrompt = `You are an expert anime recommender. Help the user find anime matching their preferences.

Using only the context below, suggest exactly three anime titles. For each one include:
1. The anime title.
2. A concise plot summary (2-3 sentences).
3. A clear explanation of why it matches the user's preferences.

Present the recommendations as a numbered list. If the context does not contain a good match, say so honestly instead of inventing titles.

Context:
%s

User's preferences:
%s`

// completer is a single-shot completion without conversational state.
type completer interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
}

// Recommender answers free-text preference queries with three titles drawn
// from the indexed catalog.
type Recommender struct {
	logger *slog.Logger
	client completer
	embed  embedder
	index  Index
}

func NewRecommender(logger *slog.Logger, client completer, embed embedder, index Index) *Recommender {
	return &Recommender{
		logger: logger,
		client: client,
		embed:  embed,
		index:  index,
	}
}

// Recommend embeds the query, retrieves the nearest catalog rows and asks the
// model to recommend from them.
func (r *Recommender) Recommend(ctx context.Context, query string) (string, error) {
	vector, err := r.embed.Embed(ctx, query)
	if err != nil {
		return "", errors.Wrap(err, "embed query")
	}
	matches, err := r.index.Query(ctx, vector, defaultTopK)
	if err != nil {
		return "", errors.Wrap(err, "retrieve context")
	}
	r.logger.Debug("retrieved context", slog.Int("matches", len(matches)))

	prompt := fmt.Sprintf(recommendationPrompt, strings.Join(matches, "\n\n"), query)
	recommendation, err := r.client.CompleteText(ctx, prompt)
	if err != nil {
		return "", errors.Wrap(err, "generate recommendation")
	}
	return strings.TrimSpace(recommendation), nil
}
