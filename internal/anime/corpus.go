// Package anime recommends shows from a catalog indexed in a vector store.
// The catalog rows are embedded once; answering a query embeds the query,
// retrieves the nearest rows and asks the model to pick from them.
package anime

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cropsage/cropsage/internal/errors"
)

// LoadCorpus reads a catalog CSV and renders each row as one retrievable
// document of "column: value" lines, in header order.
func LoadCorpus(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	var documents []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv row")
		}
		var lines []string
		for i, column := range header {
			if i < len(row) {
				lines = append(lines, column+": "+strings.TrimSpace(row[i]))
			}
		}
		documents = append(documents, strings.Join(lines, "\n"))
	}
	return documents, nil
}
