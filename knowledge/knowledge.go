// Package knowledge indexes help-center articles into a vector store and
// exposes a query_docs tool that retrieves them for an agent.
//
// The pipeline has three pluggable parts:
//
//	Embedder  text -> vector (OpenAIEmbedder)
//	Store     vector collection with similarity search (QdrantStore, MemoryStore)
//	Indexer   loads, embeds and (re)writes a collection
package knowledge

import (
	"context"

	"github.com/google/uuid"
)

// DefaultCollection is the collection articles are indexed into.
const DefaultCollection = "help_center"

// Article is a help-center article as stored on disk.
type Article struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
}

// ID derives a stable point id from the article title and url so that
// reindexing overwrites instead of duplicating.
func (a Article) ID() string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(a.Title+"\x00"+a.URL)).String()
}

// Document is an embedded article ready to be stored.
type Document struct {
	ID      string
	Vector  []float32
	Article Article
}

// Match is a search hit.
type Match struct {
	Article
	Score float32 `json:"score"`
}

// Embedder turns texts into vectors. Implementations return one vector per
// input text in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store persists documents and answers similarity queries.
type Store interface {
	// Recreate drops collection if it exists and creates it empty.
	Recreate(ctx context.Context, collection string, dimension int) error
	// Upsert writes docs into collection.
	Upsert(ctx context.Context, collection string, docs []Document) error
	// Search returns up to limit matches ordered by descending score.
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]Match, error)
}
