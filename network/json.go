package network

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anisan-cli/peel/source"
)

// Getter fetches pages. *Fetcher implements it.
type Getter interface {
	Fetch(ctx context.Context, rawURL string, opts ...Option) (*Page, error)
}

// GetJSON fetches rawURL and decodes the body into v.
func GetJSON(ctx context.Context, g Getter, rawURL string, v any) error {
	page, err := g.Fetch(ctx, rawURL,
		WithHeaders(source.Headers{"Accept": "application/json"}),
		WithoutScriptRedirect(),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(page.Body), v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}
