package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for knowledge base resources.
	uriScheme = "kbs://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing documents.
	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all active knowledge base documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for document content.
	s.inner.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Content of a specific document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)

	// Static resource for usage statistics.
	s.inner.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Usage statistics for the knowledge base",
		MIMEType:    "application/json",
	}, s.handleStatsResource)
}

// handleDocumentsResource returns the full active document list.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if err := s.ports.Browse.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	docs := s.ports.Browse.Documents()
	infos := make([]DocumentSummary, len(docs))
	for i := range docs {
		infos[i] = summarise(&docs[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the content of a specific document.
// Unlike the get_document tool, reading through the resource does not
// record a view.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	if err := s.ports.Browse.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	for _, doc := range s.ports.Browse.Documents() {
		if doc.ID == docID {
			return &mcp.ReadResourceResult{
				Contents: []*mcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/plain",
					Text:     doc.Content,
				}},
			}, nil
		}
	}

	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

// handleStatsResource returns the usage analytics snapshot.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snapshot := &domain.Stats{}
	if s.ports.Stats != nil {
		loaded, err := s.ports.Stats.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading stats: %w", err)
		}
		snapshot = loaded
	}

	data, err := json.MarshalIndent(statsPayload(snapshot), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// statsPayload shapes the snapshot for JSON output.
func statsPayload(s *domain.Stats) map[string]any {
	recent := make([]map[string]any, len(s.RecentSearches))
	for i, rs := range s.RecentSearches {
		recent[i] = map[string]any{
			"query":         rs.Query,
			"results_count": rs.ResultsCount,
			"created_at":    rs.CreatedAt,
		}
	}

	popular := make([]map[string]any, len(s.PopularDocuments))
	for i, pd := range s.PopularDocuments {
		popular[i] = map[string]any{
			"title":      pd.Title,
			"view_count": pd.ViewCount,
		}
	}

	return map[string]any{
		"total_documents":   s.TotalDocuments,
		"total_searches":    s.TotalSearches,
		"recent_searches":   recent,
		"popular_documents": popular,
	}
}

// extractDocumentID extracts the document ID from a URI like kbs://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
