package agri

import (
	"fmt"
	"os"
	"strings"

	"github.com/cropsage/cropsage/internal/products"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	Products.Flags().Bool("scrape", false, "scrape amazon.com search pages instead of using the Serper API")
	Products.Flags().Int("max", 5, "maximum number of results")
}

var Products = &cobra.Command{
	Use:     "products [query...]",
	GroupID: "agri",
	Short:   "Search Amazon for treatment products",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		maxResults, err := cmd.Flags().GetInt("max")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid max flag: %v\n", err)
			return
		}
		scrape, err := cmd.Flags().GetBool("scrape")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid scrape flag: %v\n", err)
			return
		}

		var searcher products.Searcher = products.NewSerperSearcher(newLogger(), os.Getenv("SERPER_API_KEY"), "")
		if scrape {
			searcher = products.NewAmazonScraper(newLogger(), "")
		}

		results, err := searcher.Search(cmd.Context(), strings.Join(args, " "), maxResults)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Search error: %v\n", err)
			return
		}
		for i, product := range results {
			fmt.Printf("%d. %s\n   %s\n", i+1, color.New(color.Bold).Sprint(product.Name), color.BlueString(product.URL))
		}
	},
}
