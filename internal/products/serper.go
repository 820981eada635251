package products

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cropsage/cropsage/internal/errors"
)

const defaultSerperURL = "https://google.serper.dev/search"

var asinPattern = regexp.MustCompile(`/(?:dp|gp/product)/[A-Z0-9]{10}`)

// SerperSearcher queries the Serper web search API scoped to amazon.com
// listings. It never fails the caller: any error degrades to a single entry
// linking to the Amazon search page for the query.
type SerperSearcher struct {
	client  *http.Client
	logger  *slog.Logger
	apiKey  string
	baseURL string
}

// NewSerperSearcher creates a searcher for the given API key. An empty baseURL
// means the production endpoint.
func NewSerperSearcher(logger *slog.Logger, apiKey, baseURL string) *SerperSearcher {
	if baseURL == "" {
		baseURL = defaultSerperURL
	}
	return &SerperSearcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

type serperResponse struct {
	Organic []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"organic"`
}

// Search returns up to maxResults validated Amazon listings for the query. The
// error is always nil; failures and empty result sets both degrade to the
// search-page fallback entry.
func (s *SerperSearcher) Search(ctx context.Context, query string, maxResults int) ([]Product, error) {
	payload, err := json.Marshal(map[string]any{
		"q":   "site:amazon.com " + query,
		"num": maxResults + 2,
		"gl":  "us",
	})
	if err != nil {
		return s.searchFailed(query, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return s.searchFailed(query, err)
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return s.searchFailed(query, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return s.searchFailed(query, errors.New("unexpected status code", slog.Int("status", resp.StatusCode)))
	}

	var parsed serperResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return s.searchFailed(query, err)
	}

	var found []Product
	for _, item := range parsed.Organic {
		if len(found) == maxResults {
			break
		}
		if !ValidAmazonURL(item.Link) {
			continue
		}
		name := item.Title
		if name == "" {
			name = "Unknown Product"
		}
		found = append(found, Product{Name: name, URL: item.Link})
	}
	if len(found) == 0 {
		return []Product{{
			Name: fmt.Sprintf("View search results for: %s", query),
			URL:  searchPageURL(query),
		}}, nil
	}
	return found, nil
}

func (s *SerperSearcher) searchFailed(query string, err error) ([]Product, error) {
	s.logger.Warn("product search failed", errors.SlogError(err), slog.String("query", query))
	return []Product{{
		Name: fmt.Sprintf("Search results for: %s", query),
		URL:  searchPageURL(query),
	}}, nil
}

func searchPageURL(query string) string {
	return "https://www.amazon.com/s?k=" + strings.ReplaceAll(query, " ", "+")
}

// ValidAmazonURL reports whether the URL points at a concrete Amazon listing
// (with a well-formed ASIN) or a search results page.
func ValidAmazonURL(url string) bool {
	if url == "" || url == "#" {
		return false
	}
	if strings.Contains(url, "/dp/") || strings.Contains(url, "/gp/product/") {
		return asinPattern.MatchString(url)
	}
	return strings.Contains(url, "/s?") && strings.Contains(url, "k=")
}
