// Package agri holds the agricultural advisor commands.
package agri

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cropsage/cropsage/internal/errors"
	"github.com/cropsage/cropsage/internal/llm"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "agri",
	Title: "Agricultural advisor",
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelWarn,
		ReplaceAttr: nil,
	}))
}

func groqClient() llm.Client {
	return llm.NewClient(os.Getenv("GROQ_API_KEY"), llm.GroqBaseURL, llm.GroqVisionModel)
}

func geminiClient() llm.Client {
	return llm.NewClient(os.Getenv("GOOGLE_API_KEY"), llm.GeminiBaseURL, llm.GeminiModel)
}

// readImage loads the photo and sniffs its MIME type from the payload.
func readImage(path string) ([]byte, string, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrap(err, "read image file")
	}
	return image, http.DetectContentType(image), nil
}
