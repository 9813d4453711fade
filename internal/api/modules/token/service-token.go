package token

import (
	"context"
	"encoding/json"
)

// Issuer mints one ephemeral realtime token per call
type Issuer interface {
	NewSession(ctx context.Context) (json.RawMessage, error)
}

// IssuerFunc adapts a plain function to Issuer
type IssuerFunc func(ctx context.Context) (json.RawMessage, error)

func (f IssuerFunc) NewSession(ctx context.Context) (json.RawMessage, error) {
	return f(ctx)
}
