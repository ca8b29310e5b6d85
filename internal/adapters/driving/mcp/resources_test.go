package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

func readRequest(uri string) *sdk.ReadResourceRequest {
	return &sdk.ReadResourceRequest{
		Params: &sdk.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	browse := &mockBrowseService{
		documents: []domain.Document{
			{ID: "doc-1", Title: "First", Category: "it"},
			{ID: "doc-2", Title: "Second", Category: "hr"},
		},
	}
	server := newTestServer(t, browse)

	result, err := server.handleDocumentsResource(ctx, readRequest("kbs://documents"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var infos []DocumentSummary
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "doc-1", infos[0].ID)
	assert.Equal(t, "Second", infos[1].Title)
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns content as plain text", func(t *testing.T) {
		browse := &mockBrowseService{
			documents: []domain.Document{
				{ID: "doc-1", Title: "First", Content: "the body"},
			},
		}
		server := newTestServer(t, browse)

		result, err := server.handleDocumentContentResource(ctx, readRequest("kbs://documents/doc-1"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "the body", result.Contents[0].Text)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		server := newTestServer(t, &mockBrowseService{})

		_, err := server.handleDocumentContentResource(ctx, readRequest("kbs://documents/nope"))

		require.Error(t, err)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		server := newTestServer(t, &mockBrowseService{})

		_, err := server.handleDocumentContentResource(ctx, readRequest("kbs://other/doc-1"))

		require.Error(t, err)
	})
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns snapshot as json", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Session: &mockSessionService{},
			Browse:  &mockBrowseService{},
			Stats: &mockStatsService{stats: &domain.Stats{
				TotalDocuments: 42,
				TotalSearches:  7,
			}},
		})
		require.NoError(t, err)

		result, err := server.handleStatsResource(ctx, readRequest("kbs://stats"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &payload))
		assert.EqualValues(t, 42, payload["total_documents"])
		assert.EqualValues(t, 7, payload["total_searches"])
	})

	t.Run("missing stats service yields empty snapshot", func(t *testing.T) {
		server := newTestServer(t, &mockBrowseService{})

		result, err := server.handleStatsResource(ctx, readRequest("kbs://stats"))

		require.NoError(t, err)
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &payload))
		assert.EqualValues(t, 0, payload["total_documents"])
	})
}

func TestExtractDocumentID(t *testing.T) {
	assert.Equal(t, "doc-1", extractDocumentID("kbs://documents/doc-1"))
	assert.Equal(t, "", extractDocumentID("kbs://documents"))
	assert.Equal(t, "", extractDocumentID("other://documents/doc-1"))
}
