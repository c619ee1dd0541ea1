package pipeline

import (
	"context"
)

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// EventConverter converts Markdown to an HTML fragment by streaming
// tokenizer events through the transformer.
type EventConverter struct {
	tokenizer   Tokenizer
	transformer Transformer
}

// Compile-time interface check.
var _ HTMLConverter = (*EventConverter)(nil)

// NewEventConverter creates an EventConverter with the goldmark tokenizer
// and the chroma-highlighting transformer.
func NewEventConverter() *EventConverter {
	return &EventConverter{
		tokenizer:   NewGoldmarkTokenizer(),
		transformer: NewEventTransformer(),
	}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// neither goldmark nor the transformer natively supports context.
func (c *EventConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		fragment, err := c.transformer.Transform(c.tokenizer.Events([]byte(content)))
		done <- result{html: fragment, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
