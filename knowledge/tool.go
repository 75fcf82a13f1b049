package knowledge

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/tool"
)

// QueryToolOptions configures the query_docs tool.
type QueryToolOptions struct {
	Collection string
	// Limit is the number of articles returned per query.
	Limit int
}

type queryArgs struct {
	Query string `json:"query" description:"Search query for the help center."`
}

// NewQueryDocsTool creates query_docs, which answers a query with the most
// similar help-center articles.
func NewQueryDocsTool(embedder Embedder, store Store, optFns ...func(o *QueryToolOptions)) *tool.FunctionTool {
	opts := QueryToolOptions{
		Collection: DefaultCollection,
		Limit:      3,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return tool.NewFunctionToolFromStruct(
		"query_docs",
		"Query the knowledge base for relevant articles.",
		queryArgs{},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			query := tool.StringArg(args, "query", "")
			tc.Logger().Debug("knowledge.query", "query", query, "collection", opts.Collection)

			vectors, err := embedder.Embed(tc.Context(), []string{query})
			if err != nil {
				return nil, fmt.Errorf("failed to embed query: %w", err)
			}
			if len(vectors) != 1 {
				return nil, fmt.Errorf("expected one query vector, got %d", len(vectors))
			}

			matches, err := store.Search(tc.Context(), opts.Collection, vectors[0], opts.Limit)
			if err != nil {
				return nil, err
			}

			if len(matches) == 0 {
				return "No results found.", nil
			}

			return formatMatches(matches), nil
		},
	)
}

func formatMatches(matches []Match) string {
	var b strings.Builder
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Title: %s\n", m.Title)
		if m.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", m.URL)
		}
		fmt.Fprintf(&b, "Content: %s", m.Text)
	}
	return b.String()
}
