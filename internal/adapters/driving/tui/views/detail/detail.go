// Package detail renders a single document full-screen with simple
// line scrolling.
package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/keymap"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/messages"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
)

// View shows one document. Scrolling is a plain line window over the
// wrapped content.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	doc    *domain.Document
	lines  []string
	offset int

	width  int
	height int
}

// NewView creates the detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// SetDocument sets the document to display and resets the scroll.
func (v *View) SetDocument(doc domain.Document) {
	v.doc = &doc
	v.offset = 0
	v.rewrap()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBrowse}
			}
		case keymap.Matches(keyStr, v.keymap.Up):
			v.scroll(-1)
		case keymap.Matches(keyStr, v.keymap.Down):
			v.scroll(1)
		case keyStr == "pgup":
			v.scroll(-v.pageSize())
		case keyStr == "pgdown", keyStr == " ":
			v.scroll(v.pageSize())
		case keyStr == "g":
			v.offset = 0
		case keyStr == "G":
			v.scroll(len(v.lines))
		}
	}

	return v, nil
}

func (v *View) scroll(delta int) {
	maxOffset := len(v.lines) - v.pageSize()
	if maxOffset < 0 {
		maxOffset = 0
	}
	v.offset += delta
	if v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// pageSize is the number of content lines visible below the header.
func (v *View) pageSize() int {
	size := v.height - 7
	if size < 1 {
		size = 1
	}
	return size
}

// rewrap splits the content into display lines at the current width.
func (v *View) rewrap() {
	v.lines = nil
	if v.doc == nil {
		return
	}

	width := v.width - 2
	if width < 20 {
		width = 20
	}

	for _, paragraph := range strings.Split(v.doc.Content, "\n") {
		if paragraph == "" {
			v.lines = append(v.lines, "")
			continue
		}
		v.lines = append(v.lines, wrapLine(paragraph, width)...)
	}
}

// wrapLine breaks a single line into word-wrapped chunks.
func wrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var out []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			out = append(out, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(out, current)
}

// View renders the document.
func (v *View) View() string {
	if v.doc == nil {
		return v.styles.Muted.Render("No document selected.")
	}

	meta := v.doc.Category
	if len(v.doc.Tags) > 0 {
		meta += "  " + strings.Join(v.doc.Tags, ", ")
	}
	meta += "  " + v.doc.CreatedAt.Format("2006-01-02")

	header := []string{
		v.styles.Title.Render(v.doc.Title),
		v.styles.Muted.Render(meta),
	}
	if v.doc.FileURL != "" {
		header = append(header, v.styles.Muted.Render("Attachment: "+v.doc.FileURL))
	}
	header = append(header, "")

	end := v.offset + v.pageSize()
	if end > len(v.lines) {
		end = len(v.lines)
	}
	body := strings.Join(v.lines[v.offset:end], "\n")

	footer := v.styles.Help.Render("↑/↓: scroll | esc: back | ctrl+c: quit")
	if len(v.lines) > v.pageSize() {
		footer = v.styles.Help.Render(fmt.Sprintf(
			"↑/↓: scroll (%d/%d) | esc: back | ctrl+c: quit",
			v.offset+1, len(v.lines),
		))
	}

	sections := append(header, body, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions and re-wraps the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.rewrap()
	v.scroll(0)
}

// Document returns the displayed document, or nil.
func (v *View) Document() *domain.Document {
	return v.doc
}

// Offset returns the current scroll offset.
func (v *View) Offset() int {
	return v.offset
}

// Reset clears the view.
func (v *View) Reset() {
	v.doc = nil
	v.lines = nil
	v.offset = 0
}
