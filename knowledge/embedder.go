package knowledge

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEmbedderOptions configures an OpenAIEmbedder.
type OpenAIEmbedderOptions struct {
	Model     string
	APIKey    string
	BaseURL   string
	BatchSize int
}

// OpenAIEmbedder embeds texts with the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	opts   OpenAIEmbedderOptions
}

// NewOpenAIEmbedder creates an embedder. Without an explicit APIKey the
// client reads OPENAI_API_KEY from the environment.
func NewOpenAIEmbedder(optFns ...func(o *OpenAIEmbedderOptions)) *OpenAIEmbedder {
	opts := OpenAIEmbedderOptions{
		Model:     string(openai.EmbeddingModelTextEmbedding3Small),
		BatchSize: 100,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(clientOpts...)

	return &OpenAIEmbedder{client: &client, opts: opts}
}

// Embed implements Embedder.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += e.opts.BatchSize {
		end := min(start+e.opts.BatchSize, len(texts))

		resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Model: openai.EmbeddingModel(e.opts.Model),
			Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts[start:end]},
		})
		if err != nil {
			return nil, fmt.Errorf("openai embeddings failed: %w", err)
		}

		batch := make([][]float32, end-start)
		for _, d := range resp.Data {
			if d.Index < 0 || int(d.Index) >= len(batch) {
				return nil, fmt.Errorf("openai embeddings returned unexpected index %d", d.Index)
			}
			vec := make([]float32, len(d.Embedding))
			for i, v := range d.Embedding {
				vec[i] = float32(v)
			}
			batch[d.Index] = vec
		}

		for i, vec := range batch {
			if vec == nil {
				return nil, fmt.Errorf("openai embeddings returned no vector for input %d", start+i)
			}
		}

		out = append(out, batch...)
	}

	return out, nil
}

var _ Embedder = (*OpenAIEmbedder)(nil)
