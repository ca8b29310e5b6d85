package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

const defaultSearchLimit = 10

// SearchInput is the input schema for the search_documents tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to match against document titles and content"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_documents tool.
type SearchOutput struct {
	Results []DocumentSummary `json:"results"`
	Count   int               `json:"count"`
}

// DocumentSummary is a document without its full content.
type DocumentSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Created  string   `json:"created"`
}

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	ID string `json:"id" jsonschema:"the document id returned by search_documents or list_documents"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	DocumentSummary
	Content  string `json:"content"`
	FileURL  string `json:"file_url,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

// ListInput is the input schema for the list_documents tool.
type ListInput struct {
	Category string `json:"category,omitempty" jsonschema:"restrict the listing to one category"`
}

// ListOutput is the output schema for the list_documents tool.
type ListOutput struct {
	Documents  []DocumentSummary `json:"documents"`
	Categories []string          `json:"categories"`
	Count      int               `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "search_documents",
		Description: "Search the knowledge base by title and content",
	}, s.handleSearch)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "get_document",
		Description: "Read a single document in full, including its content",
	}, s.handleGetDocument)

	mcp.AddTool(s.inner, &mcp.Tool{
		Name:        "list_documents",
		Description: "List active documents, optionally filtered by category",
	}, s.handleList)
}

// handleSearch handles the search_documents tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if err := s.ports.Browse.SubmitSearch(ctx, input.Query); err != nil {
		return nil, SearchOutput{}, err
	}

	docs := s.ports.Browse.Displayed()
	if len(docs) > limit {
		docs = docs[:limit]
	}

	output := SearchOutput{
		Results: make([]DocumentSummary, len(docs)),
		Count:   len(docs),
	}
	for i := range docs {
		output.Results[i] = summarise(&docs[i])
	}

	return nil, output, nil
}

// handleGetDocument handles the get_document tool invocation.
// Reading a document through MCP counts as a view, same as opening it
// in the TUI.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	if err := s.ports.Browse.Load(ctx); err != nil {
		return nil, GetDocumentOutput{}, err
	}
	s.ports.Browse.ChangeCategory(domain.CategoryAll)

	doc := s.ports.Browse.SelectResult(input.ID)
	if doc == nil {
		return nil, GetDocumentOutput{}, fmt.Errorf("document %q not found", input.ID)
	}

	output := GetDocumentOutput{
		DocumentSummary: summarise(doc),
		Content:         doc.Content,
		FileURL:         doc.FileURL,
		FileType:        doc.FileType,
	}
	return nil, output, nil
}

// handleList handles the list_documents tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if err := s.ports.Browse.Load(ctx); err != nil {
		return nil, ListOutput{}, err
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryAll
	}
	s.ports.Browse.ChangeCategory(category)

	docs := s.ports.Browse.Displayed()
	output := ListOutput{
		Documents:  make([]DocumentSummary, len(docs)),
		Categories: s.ports.Browse.Categories(),
		Count:      len(docs),
	}
	for i := range docs {
		output.Documents[i] = summarise(&docs[i])
	}

	return nil, output, nil
}

func summarise(doc *domain.Document) DocumentSummary {
	return DocumentSummary{
		ID:       doc.ID,
		Title:    doc.Title,
		Category: doc.Category,
		Tags:     doc.Tags,
		Created:  doc.CreatedAt.Format("2006-01-02"),
	}
}
