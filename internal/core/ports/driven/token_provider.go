package driven

import "context"

// TokenProvider supplies a valid access token for the data API, handling
// refresh transparently. Fails with domain.ErrNoSession when anonymous.
type TokenProvider interface {
	// AccessToken returns a token accepted by the data API.
	AccessToken(ctx context.Context) (string, error)
}
