package knowledge

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantOptions configures a QdrantStore.
type QdrantOptions struct {
	// Host defaults to localhost.
	Host string
	// Port is the gRPC port and defaults to 6334.
	Port   int
	APIKey string
	UseTLS bool
}

// QdrantStore is a Store backed by a Qdrant server.
type QdrantStore struct {
	client *qdrant.Client
}

// NewQdrantStore connects to Qdrant.
func NewQdrantStore(optFns ...func(o *QdrantOptions)) (*QdrantStore, error) {
	opts := QdrantOptions{
		Host: "localhost",
		Port: 6334,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   opts.Host,
		Port:   opts.Port,
		APIKey: opts.APIKey,
		UseTLS: opts.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client for %s:%d: %w", opts.Host, opts.Port, err)
	}

	return &QdrantStore{client: client}, nil
}

// Recreate implements Store.
func (s *QdrantStore) Recreate(ctx context.Context, collection string, dimension int) error {
	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		if err := s.client.DeleteCollection(ctx, collection); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// Upsert implements Store.
func (s *QdrantStore) Upsert(ctx context.Context, collection string, docs []Document) error {
	points := make([]*qdrant.PointStruct, 0, len(docs))
	for _, d := range docs {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(d.ID),
			Vectors: qdrant.NewVectors(d.Vector...),
			Payload: articlePayload(d.Article),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// Search implements Store.
func (s *QdrantStore) Search(ctx context.Context, collection string, vector []float32, limit int) ([]Match, error) {
	resp, err := s.client.GetPointsClient().Search(ctx, &qdrant.SearchPoints{
		CollectionName: collection,
		Vector:         vector,
		Limit:          uint64(limit),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	matches := make([]Match, 0, len(resp.GetResult()))
	for _, p := range resp.GetResult() {
		matches = append(matches, Match{
			Article: payloadArticle(p.GetPayload()),
			Score:   p.GetScore(),
		})
	}

	return matches, nil
}

// Close closes the underlying connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}

func articlePayload(a Article) map[string]*qdrant.Value {
	payload := map[string]*qdrant.Value{
		"title": qdrant.NewValueString(a.Title),
		"text":  qdrant.NewValueString(a.Text),
	}
	if a.URL != "" {
		payload["url"] = qdrant.NewValueString(a.URL)
	}
	return payload
}

func payloadArticle(payload map[string]*qdrant.Value) Article {
	return Article{
		Title: payload["title"].GetStringValue(),
		Text:  payload["text"].GetStringValue(),
		URL:   payload["url"].GetStringValue(),
	}
}

var _ Store = (*QdrantStore)(nil)
