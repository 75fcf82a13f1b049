package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hupe1980/agentswarm/logging"
	"golang.org/x/sync/errgroup"
)

// ErrNoArticles is returned when there is nothing to index.
var ErrNoArticles = errors.New("no articles could be embedded")

// LoadArticles reads every *.json file in dir, in name order.
func LoadArticles(dir string) ([]Article, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	articles := make([]Article, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read article: %w", err)
		}

		var a Article
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to parse article %s: %w", filepath.Base(p), err)
		}
		articles = append(articles, a)
	}

	return articles, nil
}

// IndexerOptions configures an Indexer.
type IndexerOptions struct {
	Collection  string
	Concurrency int
	Logger      logging.Logger
}

// Indexer embeds articles and rewrites a collection with them.
type Indexer struct {
	embedder Embedder
	store    Store
	opts     IndexerOptions
}

// NewIndexer creates an Indexer.
func NewIndexer(embedder Embedder, store Store, optFns ...func(o *IndexerOptions)) *Indexer {
	opts := IndexerOptions{
		Collection:  DefaultCollection,
		Concurrency: 4,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Indexer{embedder: embedder, store: store, opts: opts}
}

// Index embeds each article, drops and recreates the collection and upserts
// the embedded articles. Articles that fail to embed are logged and skipped.
// It returns the number of indexed articles.
func (ix *Indexer) Index(ctx context.Context, articles []Article) (int, error) {
	vectors := make([][]float32, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(ix.opts.Concurrency, 1))

	for i, a := range articles {
		g.Go(func() error {
			out, err := ix.embedder.Embed(gctx, []string{a.Text})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				ix.opts.Logger.Warn("knowledge.embed.failed", "title", a.Title, "error", err.Error())
				return nil
			}
			if len(out) == 1 {
				vectors[i] = out[0]
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	docs := make([]Document, 0, len(articles))
	for i, a := range articles {
		if vectors[i] == nil {
			continue
		}
		docs = append(docs, Document{ID: a.ID(), Vector: vectors[i], Article: a})
	}

	if len(docs) == 0 {
		return 0, ErrNoArticles
	}

	dimension := len(docs[0].Vector)
	ix.opts.Logger.Info("knowledge.collection.recreate", "collection", ix.opts.Collection, "dimension", dimension)

	if err := ix.store.Recreate(ctx, ix.opts.Collection, dimension); err != nil {
		return 0, err
	}

	if err := ix.store.Upsert(ctx, ix.opts.Collection, docs); err != nil {
		return 0, err
	}

	ix.opts.Logger.Info("knowledge.index.complete", "collection", ix.opts.Collection, "articles", len(docs))

	return len(docs), nil
}
