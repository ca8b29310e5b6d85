// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// DocList displays documents in a navigable list.
type DocList struct {
	docs     []domain.Document
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewDocList creates a new document list component.
func NewDocList(s *styles.Styles) *DocList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &DocList{
		docs:     nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the document list.
func (d *DocList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (d *DocList) Update(msg tea.Msg) (*DocList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			d.MoveUp()
		case tea.KeyDown:
			d.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			d.MoveUp()
		case "j":
			d.MoveDown()
		}
	}
	return d, nil
}

// View renders the document list.
func (d *DocList) View() string {
	if len(d.docs) == 0 {
		return d.styles.Muted.Render("No documents")
	}

	lines := make([]string, 0, len(d.docs)*2+2)

	header := d.styles.Subtitle.Render(fmt.Sprintf("Documents (%d)", len(d.docs)))
	lines = append(lines, header, "")

	// Each entry takes two lines (title + snippet).
	visibleCount := (d.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if d.selected >= visibleCount {
		start = d.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(d.docs) {
		end = len(d.docs)
	}

	for i := start; i < end; i++ {
		lines = append(lines, d.renderDocument(i, &d.docs[i]))
	}

	return strings.Join(lines, "\n")
}

// renderDocument formats a single document entry.
func (d *DocList) renderDocument(index int, doc *domain.Document) string {
	indicator := "  "
	if index == d.selected {
		indicator = "> "
	}

	title := doc.Title
	if title == "" {
		title = "(Untitled)"
	}

	maxTitleLen := d.width - 30
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	meta := fmt.Sprintf("%s  %s", doc.Category, doc.CreatedAt.Format("2006-01-02"))

	var titleLine string
	if index == d.selected {
		titleLine = d.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, meta))
	} else {
		titleLine = d.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			d.styles.Muted.Render(meta)
	}

	snippet := doc.Content
	if i := strings.IndexByte(snippet, '\n'); i >= 0 {
		snippet = snippet[:i]
	}
	maxSnippetLen := d.width - 6
	if maxSnippetLen < 20 {
		maxSnippetLen = 20
	}
	if len(snippet) > maxSnippetLen {
		snippet = snippet[:maxSnippetLen-3] + "..."
	}
	snippetLine := d.styles.Muted.Render("    " + snippet)

	return titleLine + "\n" + snippetLine
}

// SetDocuments updates the list contents and resets the selection.
func (d *DocList) SetDocuments(docs []domain.Document) {
	d.docs = docs
	d.selected = 0
}

// Documents returns the current documents.
func (d *DocList) Documents() []domain.Document {
	return d.docs
}

// Selected returns the index of the selected document.
func (d *DocList) Selected() int {
	return d.selected
}

// SetSelected sets the selected index.
func (d *DocList) SetSelected(index int) {
	if index >= 0 && index < len(d.docs) {
		d.selected = index
	}
}

// SelectedDocument returns the currently selected document, or nil.
func (d *DocList) SelectedDocument() *domain.Document {
	if len(d.docs) == 0 || d.selected < 0 || d.selected >= len(d.docs) {
		return nil
	}
	return &d.docs[d.selected]
}

// MoveUp moves selection up.
func (d *DocList) MoveUp() {
	if d.selected > 0 {
		d.selected--
	}
}

// MoveDown moves selection down.
func (d *DocList) MoveDown() {
	if d.selected < len(d.docs)-1 {
		d.selected++
	}
}

// SetDimensions sets the component dimensions.
func (d *DocList) SetDimensions(width, height int) {
	d.width = width
	d.height = height
}

// Count returns the number of documents.
func (d *DocList) Count() int {
	return len(d.docs)
}

// IsEmpty returns whether the list is empty.
func (d *DocList) IsEmpty() bool {
	return len(d.docs) == 0
}
