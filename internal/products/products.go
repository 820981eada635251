// Package products finds treatment products on Amazon, either through the
// Serper search API or by scraping search result pages directly.
package products

import "context"

// Product is one marketplace listing. Price and Rating are empty when the
// search backend does not report them.
type Product struct {
	Name   string
	Price  string
	Rating string
	URL    string
}

// Searcher looks up products for a free-text query, returning at most
// maxResults entries.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Product, error)
}
