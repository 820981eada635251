package errors

import (
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotatedError(t *testing.T) {
	t.Run("message and attrs", func(t *testing.T) {
		err := New("soil fetch failed", slog.String("zipcode", "92336"))
		assert.Equal(t, "soil fetch failed", err.Error())
		assert.Contains(t, err.LogValue().Group(), slog.String("zipcode", "92336"))
	})

	t.Run("wrapping keeps the sentinel reachable", func(t *testing.T) {
		sentinel := NewSentinel("index not configured")
		wrapped := New("recommend").Wrap(sentinel)
		require.ErrorIs(t, wrapped, sentinel)
		// A second sentinel with the same text is a different error value.
		require.NotErrorIs(t, wrapped, NewSentinel("index not configured"))
	})

	t.Run("source points at the construction site", func(t *testing.T) {
		group := New("boom").LogValue().Group()
		idx := slices.IndexFunc(group, func(attr slog.Attr) bool {
			return attr.Key == "source"
		})
		require.NotEqual(t, -1, idx)
		assert.Contains(t, group[idx].Value.String(), "annotatederror_test.go")
	})
}
