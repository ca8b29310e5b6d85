// Package html normalises HTML files.
package html

import (
	"html"
	"regexp"
	"strings"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ normalisers.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// Normalise strips markup and extracts the <title> tag as the title.
func (n *Normaliser) Normalise(filename string, raw []byte) (domain.DocumentDraft, error) {
	rawContent := string(raw)

	title := extractTitle(rawContent, filename)
	content := stripHTML(rawContent)
	if content == "" {
		return domain.DocumentDraft{}, domain.ErrMissingContent
	}

	return domain.DocumentDraft{
		Title:    title,
		Content:  content,
		Metadata: map[string]any{"format": "html", "source_file": filename},
	}, nil
}

// Pre-compiled regular expressions for HTML parsing.
var (
	titleTag      = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockTags     = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// extractTitle finds the <title> tag or falls back to the filename.
func extractTitle(content, filename string) string {
	if matches := titleTag.FindStringSubmatch(content); len(matches) > 1 {
		if title := strings.TrimSpace(html.UnescapeString(matches[1])); title != "" {
			return title
		}
	}
	return normalisers.TitleFromFilename(filename)
}

// stripHTML removes tags and extracts readable text content.
func stripHTML(content string) string {
	content = headTag.ReplaceAllString(content, "")
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")
	content = blockTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = multiSpaces.ReplaceAllString(content, " ")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
