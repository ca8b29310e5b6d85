// Package adddoc provides the form for adding a document from the TUI.
package adddoc

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/components/input"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/messages"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
)

const fieldCount = 4

// View is the add-document form: title, content, category and tags.
// Tab cycles the fields, ctrl+s submits.
type View struct {
	styles *styles.Styles

	title    *input.TextField
	content  *input.TextField
	category *input.TextField
	tags     *input.TextField

	ingest driving.IngestService
	ctx    context.Context

	focusIndex int
	submitting bool
	err        error

	width  int
	height int
}

// NewView creates the add-document view.
func NewView(s *styles.Styles, ingest driving.IngestService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		title:    input.NewTextField(s, "Title", "Document title"),
		content:  input.NewTextField(s, "Content", "Document content"),
		category: input.NewTextField(s, "Category", domain.DefaultCategory),
		tags:     input.NewTextField(s, "Tags", "comma, separated, tags"),
		ingest:   ingest,
		ctx:      context.Background(),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	v.focusIndex = 0
	v.blurAll()
	return v.title.Focus()
}

// Update handles messages for the add-document view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentAdded:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.Reset()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBrowse}
		}
	}

	return v.forwardToFocused(msg)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return v.focusField((v.focusIndex + 1) % fieldCount)
	case tea.KeyShiftTab, tea.KeyUp:
		return v.focusField((v.focusIndex + fieldCount - 1) % fieldCount)
	case tea.KeyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBrowse}
		}
	}

	if msg.String() == "ctrl+s" {
		return v.submit()
	}

	return v.forwardToFocused(msg)
}

func (v *View) fields() []*input.TextField {
	return []*input.TextField{v.title, v.content, v.category, v.tags}
}

func (v *View) focusField(index int) (*View, tea.Cmd) {
	v.focusIndex = index
	v.blurAll()
	return v, v.fields()[index].Focus()
}

func (v *View) blurAll() {
	for _, f := range v.fields() {
		f.Blur()
	}
}

func (v *View) forwardToFocused(msg tea.Msg) (*View, tea.Cmd) {
	_, cmd := v.fields()[v.focusIndex].Update(msg)
	return v, cmd
}

// submit builds the draft and runs the insert as a command. The service
// validates required fields; its errors render inline.
func (v *View) submit() (*View, tea.Cmd) {
	draft := domain.DocumentDraft{
		Title:    strings.TrimSpace(v.title.Value()),
		Content:  strings.TrimSpace(v.content.Value()),
		Category: strings.TrimSpace(v.category.Value()),
		Tags:     splitTags(v.tags.Value()),
	}

	v.err = nil
	v.submitting = true

	return v, func() tea.Msg {
		err := v.ingest.Add(v.ctx, draft)
		return messages.DocumentAdded{Title: draft.Title, Err: err}
	}
}

// splitTags parses a comma-separated tag list, dropping empties.
func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// View renders the form.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("Add document"),
		"",
		v.title.View(),
		v.content.View(),
		v.category.View(),
		v.tags.View(),
	}

	if v.submitting {
		sections = append(sections, "", v.styles.Muted.Render("Saving..."))
	}
	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render(v.err.Error()))
	}

	sections = append(sections, "",
		v.styles.Help.Render("tab: next field | ctrl+s: save | esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields() {
		f.SetWidth(width)
	}
}

// Err returns the current inline error, if any.
func (v *View) Err() error {
	return v.err
}

// Submitting reports whether an insert is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Reset clears the form.
func (v *View) Reset() {
	for _, f := range v.fields() {
		f.Reset()
	}
	v.focusIndex = 0
	v.submitting = false
	v.err = nil
}
