// Package anime holds the recommender commands.
package anime

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	animerec "github.com/cropsage/cropsage/internal/anime"
	"github.com/cropsage/cropsage/internal/llm"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "anime",
	Title: "Anime recommender",
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	}))
}

func pineconeIndex(cmd *cobra.Command) (*animerec.PineconeIndex, error) {
	return animerec.NewPineconeIndex(cmd.Context(), os.Getenv("PINECONE_API_KEY"), os.Getenv("PINECONE_INDEX"), "")
}

func embedder() *llm.Embedder {
	return llm.NewEmbedder(os.Getenv("GOOGLE_API_KEY"), "", llm.GeminiEmbeddingModel)
}

var Index = &cobra.Command{
	Use:     "index [csv]",
	GroupID: "anime",
	Short:   "Embed an anime corpus and upsert it into Pinecone",
	Long:    `Reads a CSV corpus with title and synopsis columns, embeds every row and upserts the vectors into the configured Pinecone index`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := os.Open(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Corpus open error: %v\n", err)
			return
		}
		defer func() {
			_ = file.Close()
		}()

		documents, err := animerec.LoadCorpus(file)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Corpus read error: %v\n", err)
			return
		}

		index, err := pineconeIndex(cmd)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Pinecone error: %v\n", err)
			return
		}
		if err = animerec.BuildIndex(cmd.Context(), newLogger(), embedder(), index, documents); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Index build error: %v\n", err)
			return
		}
		fmt.Printf("Indexed %d documents\n", len(documents))
	},
}

var Recommend = &cobra.Command{
	Use:     "recommend [query...]",
	GroupID: "anime",
	Short:   "Recommend anime for a preference query",
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := pineconeIndex(cmd)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Pinecone error: %v\n", err)
			return
		}
		gemini := llm.NewClient(os.Getenv("GOOGLE_API_KEY"), llm.GeminiBaseURL, llm.GeminiModel)
		recommender := animerec.NewRecommender(newLogger(), gemini, embedder(), index)

		answer, err := recommender.Recommend(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Recommendation error: %v\n", err)
			return
		}
		fmt.Println(answer)
	},
}
