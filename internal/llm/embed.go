package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/cropsage/cropsage/internal/errors"
	"io"
	"log/slog"
	"net/http"
)

// Embedder computes text embeddings against an OpenAI-compatible embeddings
// endpoint.
type Embedder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewEmbedder creates an embedder for the given endpoint and model. An empty
// baseURL means the Gemini OpenAI-compatible endpoint.
func NewEmbedder(apiKey, baseURL, model string) *Embedder {
	if baseURL == "" {
		baseURL = GeminiBaseURL
	}
	return &Embedder{
		client:  &http.Client{},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

type embeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embeddingRequest{
		Input: text,
		Model: e.model,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal embedding request")
	}

	var req *http.Request
	if req, err = http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.baseURL+"/embeddings",
		bytes.NewReader(body),
	); err != nil {
		return nil, errors.Wrap(err, "create embedding request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	var resp *http.Response
	if resp, err = e.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do embedding request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var respBody []byte
	if respBody, err = io.ReadAll(resp.Body); err != nil {
		return nil, errors.Wrap(err, "read embedding response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected embedding status code",
			slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
	}

	var parsed embeddingResponse
	if err = json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.Wrap(err, "unmarshal embedding response")
	}
	if len(parsed.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return parsed.Data[0].Embedding, nil
}
