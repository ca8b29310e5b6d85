// Package stats renders the usage analytics panel.
package stats

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/keymap"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/messages"
	"github.com/keystone-labs/kbs-cli/internal/adapters/driving/tui/styles"
	"github.com/keystone-labs/kbs-cli/internal/core/domain"
	"github.com/keystone-labs/kbs-cli/internal/core/ports/driving"
)

// View shows the combined analytics snapshot. A partial load still
// renders whatever branches succeeded.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	stats driving.StatsService
	ctx   context.Context

	snapshot *domain.Stats
	loading  bool
	err      error

	width  int
	height int
}

// NewView creates the stats view.
func NewView(s *styles.Styles, stats driving.StatsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		stats:  stats,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the analytics load.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return func() tea.Msg {
		snapshot, err := v.stats.Load(v.ctx)
		return messages.StatsLoaded{Stats: snapshot, Err: err}
	}
}

// Update handles messages for the stats view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		keyStr := msg.String()
		if keymap.Matches(keyStr, v.keymap.Back) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBrowse}
			}
		}
		if keyStr == "r" {
			return v, v.Init()
		}
		return v, nil

	case messages.StatsLoaded:
		v.loading = false
		v.snapshot = msg.Stats
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// View renders the analytics panel.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("Statistics"),
		"",
	}

	switch {
	case v.loading:
		sections = append(sections, v.styles.Muted.Render("Loading statistics..."))
	case v.err != nil && v.snapshot == nil:
		sections = append(sections, v.styles.Error.Render(v.err.Error()))
	case v.snapshot == nil:
		sections = append(sections, v.styles.Muted.Render("No statistics available."))
	default:
		sections = append(sections, v.renderSnapshot()...)
	}

	sections = append(sections, "",
		v.styles.Help.Render("r: refresh | esc: back | ctrl+c: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderSnapshot() []string {
	s := v.snapshot

	out := []string{
		fmt.Sprintf("%s %d", v.styles.Subtitle.Render("Documents:"), s.TotalDocuments),
		fmt.Sprintf("%s %d", v.styles.Subtitle.Render("Your searches:"), s.TotalSearches),
		"",
		v.styles.Subtitle.Render("Recent searches"),
	}

	if len(s.RecentSearches) == 0 {
		out = append(out, v.styles.Muted.Render("  none yet"))
	}
	for _, rs := range s.RecentSearches {
		out = append(out, fmt.Sprintf("  %-30q %d result(s)  %s",
			rs.Query, rs.ResultsCount, v.styles.Muted.Render(rs.CreatedAt.Format("2006-01-02 15:04"))))
	}

	out = append(out, "", v.styles.Subtitle.Render("Most viewed"))
	if len(s.PopularDocuments) == 0 {
		out = append(out, v.styles.Muted.Render("  none yet"))
	}
	for _, pd := range s.PopularDocuments {
		out = append(out, fmt.Sprintf("  %-40s %d view(s)", pd.Title, pd.ViewCount))
	}

	return out
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Snapshot returns the loaded stats, or nil.
func (v *View) Snapshot() *domain.Stats {
	return v.snapshot
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the load error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset clears the view.
func (v *View) Reset() {
	v.snapshot = nil
	v.loading = false
	v.err = nil
}
