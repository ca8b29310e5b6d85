// Package plaintext normalises plain text files.
package plaintext

import (
	"strings"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ normalisers.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{
		".txt", ".text", ".log", ".csv",
		".yaml", ".yml", ".toml", ".json",
		".go", ".py", ".rb", ".rs", ".java", ".c", ".cc", ".cpp", ".h",
		".js", ".ts", ".sql", ".sh",
	}
}

// Normalise uses the content verbatim; the first non-empty line
// doubles as the title when it is short enough.
func (n *Normaliser) Normalise(filename string, raw []byte) (domain.DocumentDraft, error) {
	content := strings.TrimSpace(string(raw))
	if content == "" {
		return domain.DocumentDraft{}, domain.ErrMissingContent
	}

	title := normalisers.TitleFromFilename(filename)
	if line := firstLine(content); line != "" && len(line) <= 80 {
		title = line
	}

	return domain.DocumentDraft{
		Title:    title,
		Content:  content,
		Metadata: map[string]any{"format": "plaintext", "source_file": filename},
	}, nil
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	return strings.TrimSpace(line)
}
