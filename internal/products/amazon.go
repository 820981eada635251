package products

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cropsage/cropsage/internal/errors"
)

const (
	defaultAmazonURL = "https://www.amazon.com"
	maxProductName   = 100

	// Amazon refuses requests without a browser-looking user agent.
	scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// AmazonScraper searches Amazon by fetching the search results page and
// reading the product cards out of the HTML. Unlike SerperSearcher it reports
// failures as errors; the caller decides how to degrade.
type AmazonScraper struct {
	client  *http.Client
	logger  *slog.Logger
	baseURL string
}

// NewAmazonScraper creates a scraper. An empty baseURL means amazon.com.
func NewAmazonScraper(logger *slog.Logger, baseURL string) *AmazonScraper {
	if baseURL == "" {
		baseURL = defaultAmazonURL
	}
	return &AmazonScraper{
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		baseURL: baseURL,
	}
}

// Search scrapes the first page of search results for the query and returns at
// most maxResults product cards that link somewhere.
func (s *AmazonScraper) Search(ctx context.Context, query string, maxResults int) ([]Product, error) {
	searchURL := s.baseURL + "/s?k=" + strings.ReplaceAll(query, " ", "+")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create search request")
	}
	req.Header.Set("User-Agent", scraperUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do search request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("unexpected search status code", slog.Int("status", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parse search results")
	}

	var found []Product
	doc.Find(`div[data-component-type="s-search-result"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		product, ok := parseCard(card)
		if ok {
			found = append(found, product)
		}
		return len(found) < maxResults
	})
	if len(found) == 0 {
		return nil, errors.New("no products found", slog.String("query", query))
	}
	s.logger.Debug("scraped products", slog.String("query", query), slog.Int("count", len(found)))
	return found, nil
}

// parseCard reads one search result card. Cards without a product link are
// skipped; sponsored placements and widgets share the card markup but lack it.
func parseCard(card *goquery.Selection) (Product, bool) {
	href, ok := card.Find("a.a-link-normal").First().Attr("href")
	if !ok {
		return Product{}, false
	}

	name := strings.TrimSpace(card.Find("h2.s-size-mini").First().Text())
	if name == "" {
		name = strings.TrimSpace(card.Find("span.a-text-normal").First().Text())
	}
	if name == "" {
		name = "Unknown Product"
	}
	if runes := []rune(name); len(runes) > maxProductName {
		name = string(runes[:maxProductName])
	}

	price := "Price not available"
	if whole := strings.TrimSpace(card.Find("span.a-price-whole").First().Text()); whole != "" {
		price = "$" + whole + strings.TrimSpace(card.Find("span.a-price-fraction").First().Text())
	}

	rating := strings.TrimSpace(card.Find("span.a-icon-alt").First().Text())
	if rating == "" {
		rating = "No rating"
	}

	return Product{
		Name:   name,
		Price:  price,
		Rating: rating,
		URL:    "https://www.amazon.com" + href,
	}, true
}
