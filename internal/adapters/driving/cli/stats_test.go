package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

func TestStatsCmd_Use(t *testing.T) {
	assert.Equal(t, "stats", statsCmd.Use)
}

func TestStatsCmd_PrintsSnapshot(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	statsService.(*mockStatsService).stats = &domain.Stats{
		TotalDocuments: 42,
		TotalSearches:  7,
		RecentSearches: []domain.RecentSearch{
			{Query: "vpn", ResultsCount: 3, CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		},
		PopularDocuments: []domain.PopularDocument{
			{Title: "Onboarding", ViewCount: 12},
		},
	}

	out, err := executeCommand("stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Documents: 42")
	assert.Contains(t, out, "Your searches: 7")
	assert.Contains(t, out, `"vpn"`)
	assert.Contains(t, out, "3 result(s)")
	assert.Contains(t, out, "Onboarding")
	assert.Contains(t, out, "12 view(s)")
}

func TestStatsCmd_EmptySnapshot(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("stats")

	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}

func TestStatsCmd_LoadFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	statsService.(*mockStatsService).err = errors.New("all branches failed")

	_, err := executeCommand("stats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all branches failed")
}
