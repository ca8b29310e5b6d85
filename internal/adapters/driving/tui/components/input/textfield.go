// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
)

// TextField wraps a bubbles textinput with a label. It is used for the
// search box and the auth and add-document forms.
type TextField struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewTextField creates a labelled text input.
func NewTextField(s *styles.Styles, label, placeholder string) *TextField {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 50

	return &TextField{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// NewPasswordField creates a text input that masks its value.
func NewPasswordField(s *styles.Styles, label string) *TextField {
	f := NewTextField(s, label, "")
	f.textinput.EchoMode = textinput.EchoPassword
	f.textinput.EchoCharacter = '*'
	return f
}

// Init initialises the field.
func (f *TextField) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *TextField) Update(msg tea.Msg) (*TextField, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the field.
func (f *TextField) View() string {
	label := f.styles.Title.Render(f.label + ": ")
	field := f.styles.InputField.Render(f.textinput.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (f *TextField) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *TextField) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the field.
func (f *TextField) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the field.
func (f *TextField) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the field is focused.
func (f *TextField) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the field.
func (f *TextField) SetWidth(width int) {
	f.width = width
	inputWidth := width - len(f.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Reset clears the field.
func (f *TextField) Reset() {
	f.textinput.Reset()
}
