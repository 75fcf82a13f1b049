package main

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/agentswarm/knowledge"
	"github.com/hupe1980/agentswarm/logging"
)

// IndexCmd embeds help-center articles and rewrites the collection.
type IndexCmd struct {
	Dir            string      `arg:"" help:"Directory of article JSON files (title, text, url)." type:"existingdir"`
	Collection     string      `help:"Target collection." default:"help_center"`
	EmbeddingModel string      `name:"embedding-model" help:"OpenAI embedding model." default:"text-embedding-3-small"`
	Concurrency    int         `help:"Parallel embedding requests." default:"4"`
	Qdrant         QdrantFlags `embed:"" prefix:"qdrant-"`
}

// Run indexes the articles.
func (c *IndexCmd) Run(ctx context.Context, cli *CLI, out io.Writer) error {
	logger, err := cli.Logger()
	if err != nil {
		return err
	}

	store, err := c.Qdrant.store()
	if err != nil {
		return err
	}
	defer store.Close()

	embedder := knowledge.NewOpenAIEmbedder(func(o *knowledge.OpenAIEmbedderOptions) {
		o.Model = c.EmbeddingModel
	})

	return c.index(ctx, embedder, store, logger, out)
}

func (c *IndexCmd) index(ctx context.Context, embedder knowledge.Embedder, store knowledge.Store, logger logging.Logger, out io.Writer) error {
	articles, err := knowledge.LoadArticles(c.Dir)
	if err != nil {
		return err
	}

	ix := knowledge.NewIndexer(embedder, store, func(o *knowledge.IndexerOptions) {
		o.Collection = c.Collection
		o.Concurrency = c.Concurrency
		o.Logger = logger
	})

	n, err := ix.Index(ctx, articles)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "indexed %d of %d articles into %q\n", n, len(articles), c.Collection)
	return err
}
