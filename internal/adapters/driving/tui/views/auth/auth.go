// Package auth provides the sign-in and sign-up form for the TUI.
package auth

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

// Mode selects between the sign-in and sign-up variants of the form.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

// View is the authentication form: email and password fields, a mode
// toggle and inline error display. Auth errors never block navigation;
// they render beneath the form.
type View struct {
	styles   *styles.Styles
	email    *input.TextField
	password *input.TextField

	sessions driving.SessionService
	ctx      context.Context

	mode       Mode
	focusIndex int // 0 = email, 1 = password
	submitting bool
	err        error

	width  int
	height int
}

// NewView creates the auth form view.
func NewView(s *styles.Styles, sessions driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	email := input.NewTextField(s, "Email", "you@example.com")
	password := input.NewPasswordField(s, "Password")

	return &View{
		styles:   s,
		email:    email,
		password: password,
		sessions: sessions,
		ctx:      context.Background(),
		mode:     ModeSignIn,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.focusIndex = 0
	return v.email.Focus()
}

// Update handles messages for the auth view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SessionStarted:
		v.submitting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, nil
	}

	return v.forwardToFocused(msg)
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return v.focusField((v.focusIndex + 1) % 2)
	case tea.KeyShiftTab, tea.KeyUp:
		return v.focusField((v.focusIndex + 1) % 2)
	case tea.KeyEnter:
		return v.submit()
	}

	// ctrl+r toggles between sign in and sign up.
	if msg.String() == "ctrl+r" {
		if v.mode == ModeSignIn {
			v.mode = ModeSignUp
		} else {
			v.mode = ModeSignIn
		}
		return v, nil
	}

	return v.forwardToFocused(msg)
}

func (v *View) focusField(index int) (*View, tea.Cmd) {
	v.focusIndex = index
	if index == 0 {
		v.password.Blur()
		return v, v.email.Focus()
	}
	v.email.Blur()
	return v, v.password.Focus()
}

// submit validates the form locally, then runs the auth call as a
// command. Validation failures surface inline like auth errors.
func (v *View) submit() (*View, tea.Cmd) {
	email := strings.TrimSpace(v.email.Value())
	password := v.password.Value()

	if email == "" {
		v.err = domain.NewAuthError("email is required", nil)
		return v, nil
	}
	if v.mode == ModeSignUp && len(password) < domain.MinPasswordLength {
		v.err = domain.ErrWeakPassword
		return v, nil
	}
	if password == "" {
		v.err = domain.NewAuthError("password is required", nil)
		return v, nil
	}

	v.err = nil
	v.submitting = true
	mode := v.mode

	return v, func() tea.Msg {
		var (
			session *domain.Session
			err     error
		)
		if mode == ModeSignUp {
			session, err = v.sessions.SignUp(v.ctx, email, password)
		} else {
			session, err = v.sessions.SignIn(v.ctx, email, password)
		}
		return messages.SessionStarted{Session: session, Err: err}
	}
}

func (v *View) forwardToFocused(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	if v.focusIndex == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// View renders the auth form.
func (v *View) View() string {
	title := "Sign in"
	hint := "enter: sign in | ctrl+r: create account | ctrl+c: quit"
	if v.mode == ModeSignUp {
		title = "Create account"
		hint = "enter: create account | ctrl+r: back to sign in | ctrl+c: quit"
	}

	sections := []string{
		v.styles.Title.Render("Knowledge Base"),
		"",
		v.styles.Subtitle.Render(title),
		"",
		v.email.View(),
		v.password.View(),
	}

	if v.submitting {
		sections = append(sections, "", v.styles.Muted.Render("Signing in..."))
	}
	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render(v.err.Error()))
	}

	sections = append(sections, "", v.styles.Help.Render(hint))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.email.SetWidth(width)
	v.password.SetWidth(width)
}

// Mode returns the current form mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Err returns the current inline error, if any.
func (v *View) Err() error {
	return v.err
}

// Submitting reports whether an auth call is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Reset clears the form.
func (v *View) Reset() {
	v.email.Reset()
	v.password.Reset()
	v.mode = ModeSignIn
	v.err = nil
	v.submitting = false
	v.focusIndex = 0
}
