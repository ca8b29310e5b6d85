package remote

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/keystone-labs/kbs-cli/internal/core/ports/driven"
)

// TokenSourceAdapter adapts a TokenProvider to oauth2.TokenSource so the
// HTTP client can attach bearer tokens transparently.
type TokenSourceAdapter struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.AccessToken(t.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
