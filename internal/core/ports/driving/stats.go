package driving

import (
	"context"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// StatsService assembles the usage analytics snapshot.
type StatsService interface {
	// Load runs the four aggregate queries concurrently and combines
	// whatever succeeded; failed branches keep their zero values. The
	// returned error is nil unless every branch failed.
	Load(ctx context.Context) (*domain.Stats, error)
}
