package normalisers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// ErrUnsupportedFile is returned for file types no normaliser handles.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Normaliser extracts a document draft from raw file content.
type Normaliser interface {
	// Extensions returns the file extensions this normaliser handles,
	// lower case with the leading dot.
	Extensions() []string

	// Normalise builds a draft from the file. The caller assigns
	// category and tags afterwards.
	Normalise(filename string, raw []byte) (domain.DocumentDraft, error)
}

// Registry selects a normaliser by file extension.
type Registry struct {
	byExt map[string]Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Normaliser)}
}

// Register adds a normaliser for all its extensions. Later
// registrations win on conflict.
func (r *Registry) Register(n Normaliser) {
	for _, ext := range n.Extensions() {
		r.byExt[ext] = n
	}
}

// ForFile returns the normaliser for the file's extension, or nil.
func (r *Registry) ForFile(filename string) Normaliser {
	ext := strings.ToLower(filepath.Ext(filename))
	return r.byExt[ext]
}

// Normalise runs the matching normaliser on the file.
// Returns ErrUnsupportedFile when no normaliser matches.
func (r *Registry) Normalise(filename string, raw []byte) (domain.DocumentDraft, error) {
	n := r.ForFile(filename)
	if n == nil {
		return domain.DocumentDraft{}, ErrUnsupportedFile
	}
	return n.Normalise(filename, raw)
}

// Extensions returns all registered extensions, unordered.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// TitleFromFilename derives a readable title from a file name when the
// content itself offers none.
func TitleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
