package anime

import (
	"context"
	"log/slog"

	"github.com/cropsage/cropsage/internal/errors"
	"github.com/google/uuid"
	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

const upsertBatchSize = 100

// Entry is one embedded document ready for indexing.
type Entry struct {
	ID     string
	Vector []float32
	Text   string
}

// Index is a vector store holding embedded documents.
type Index interface {
	Upsert(ctx context.Context, entries []Entry) error
	Query(ctx context.Context, vector []float32, topK int) ([]string, error)
}

// embedder turns text into an embedding vector.
type embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BuildIndex embeds every document and upserts them in batches. Building is a
// one-off ingestion step, so any failure aborts it.
func BuildIndex(ctx context.Context, logger *slog.Logger, embed embedder, index Index, documents []string) error {
	var batch []Entry
	for _, document := range documents {
		vector, err := embed.Embed(ctx, document)
		if err != nil {
			return errors.Wrap(err, "embed document")
		}
		batch = append(batch, Entry{
			ID:     uuid.NewString(),
			Vector: vector,
			Text:   document,
		})
		if len(batch) == upsertBatchSize {
			if err := index.Upsert(ctx, batch); err != nil {
				return errors.Wrap(err, "upsert batch")
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := index.Upsert(ctx, batch); err != nil {
			return errors.Wrap(err, "upsert batch")
		}
	}
	logger.Info("indexed documents", slog.Int("count", len(documents)))
	return nil
}

// PineconeIndex stores document embeddings in a Pinecone index, with the
// document text carried in the "text" metadata field.
type PineconeIndex struct {
	connection *pinecone.IndexConnection
}

// NewPineconeIndex connects to a named Pinecone index within a namespace.
func NewPineconeIndex(ctx context.Context, apiKey, indexName, namespace string) (*PineconeIndex, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, errors.Wrap(err, "create pinecone client")
	}
	index, err := client.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, errors.Wrap(err, "describe index", slog.String("index", indexName))
	}
	connection, err := client.Index(pinecone.NewIndexConnParams{Host: index.Host, Namespace: namespace})
	if err != nil {
		return nil, errors.Wrap(err, "connect to index", slog.String("host", index.Host))
	}
	return &PineconeIndex{connection: connection}, nil
}

func (i *PineconeIndex) Upsert(ctx context.Context, entries []Entry) error {
	vectors := make([]*pinecone.Vector, 0, len(entries))
	for _, entry := range entries {
		metadata, err := structpb.NewStruct(map[string]any{"text": entry.Text})
		if err != nil {
			return errors.Wrap(err, "build metadata")
		}
		vectors = append(vectors, &pinecone.Vector{
			Id:       entry.ID,
			Values:   entry.Vector,
			Metadata: metadata,
		})
	}
	if _, err := i.connection.UpsertVectors(ctx, vectors); err != nil {
		return errors.Wrap(err, "upsert vectors")
	}
	return nil
}

func (i *PineconeIndex) Query(ctx context.Context, vector []float32, topK int) ([]string, error) {
	response, err := i.connection.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeValues:   false,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "query index")
	}

	var matches []string
	for _, match := range response.Matches {
		if match.Vector == nil || match.Vector.Metadata == nil {
			continue
		}
		if value, ok := match.Vector.Metadata.Fields["text"]; ok {
			if text := value.GetStringValue(); text != "" {
				matches = append(matches, text)
			}
		}
	}
	return matches, nil
}
