// Package markdown normalises Markdown files.
package markdown

import (
	"regexp"
	"strings"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ normalisers.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown", ".mdown"}
}

// Normalise strips markdown formatting, taking the first H1 heading as
// the title when present.
func (n *Normaliser) Normalise(filename string, raw []byte) (domain.DocumentDraft, error) {
	rawContent := string(raw)

	title := extractTitle(rawContent, filename)
	content := stripMarkdown(rawContent)
	if content == "" {
		return domain.DocumentDraft{}, domain.ErrMissingContent
	}

	return domain.DocumentDraft{
		Title:    title,
		Content:  content,
		Metadata: map[string]any{"format": "markdown", "source_file": filename},
	}, nil
}

// extractTitle finds the first H1 heading or falls back to the filename.
func extractTitle(content, filename string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return normalisers.TitleFromFilename(filename)
}

// Pre-compiled expressions for markdown stripping.
var (
	codeBlocks  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode  = regexp.MustCompile("`[^`]+`")
	images      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquotes = regexp.MustCompile(`(?m)^>\s*`)
	rules       = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	multiBlank  = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown formatting for plain text
// content. Simplified, handles the common cases.
func stripMarkdown(content string) string {
	content = codeBlocks.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquotes.ReplaceAllString(content, "")
	content = rules.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = multiBlank.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
