package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workreport/internal/model"
	"github.com/manav03panchal/workreport/internal/output"
	"github.com/manav03panchal/workreport/internal/storage"
	"github.com/manav03panchal/workreport/internal/worktime"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// ReportSource supplies the report figures shown on the dashboard.
type ReportSource interface {
	Stats(ref worktime.Date) storage.Stats
	Recent(n int) []*model.WorkReport
}

// Counter is a registry that can report its size.
type Counter interface {
	Count() int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Reports    ReportSource
	Colleagues Counter
	Worksites  Counter
	Projects   Counter

	Layout model.LayoutConfig
	Theme  model.Theme

	RecentCount     int
	WeekTarget      float64
	RefreshInterval time.Duration
	Now             func() time.Time
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	summary output.Summary
	recent  []*model.WorkReport

	config DashboardConfig
	styles Styles

	// UI state
	width      int
	height     int
	message    string
	messageExp time.Time
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.RecentCount <= 0 {
		config.RecentCount = 3
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if len(config.Layout.DashboardCards) == 0 {
		config.Layout = model.DefaultLayout()
	}
	if config.Theme.ID == "" {
		config.Theme = model.DefaultThemes()[0]
	}

	m := &DashboardModel{
		config: config,
		styles: NewStyles(config.Theme),
	}
	m.loadData()
	return m
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && time.Time(msg).After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "r":
		m.loadData()
		m.setMessage("Refreshed", time.Second)
		return m, nil
	}

	// The dashboard is read-only; navigation keys name the command to run.
	if sc, ok := findShortcut(key); ok {
		m.setMessage(fmt.Sprintf("%s: run '%s'", sc.Label, sc.Command), 4*time.Second)
	}
	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}

	if m.message != "" {
		sections = append(sections, m.styles.Warning.Render(m.message))
	}

	sections = append(sections, m.renderCards()...)
	sections = append(sections, HelpBar(m.styles))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := m.styles.Title.Render("Work Reports")
	now := m.styles.Subtitle.Render(m.config.Now().Format("Mon Jan 2, 15:04"))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", now) + "\n"
}

// renderCards renders the visible cards in layout order. Cards share a row
// while they fit the terminal width.
func (m *DashboardModel) renderCards() []string {
	var rows []string
	var row []string
	used := 0

	flush := func() {
		if len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
	}

	for _, card := range m.config.Layout.SortedCards() {
		if !card.Visible {
			continue
		}
		width := min(cardWidth(card.Size, m.width), m.width)
		view := m.renderCard(card.ID, width)
		if view == "" {
			continue
		}
		if used+width > m.width {
			flush()
		}
		row = append(row, view)
		used += width
	}
	flush()

	return rows
}

func (m *DashboardModel) renderCard(id string, width int) string {
	switch id {
	case model.CardStatistics:
		c := StatsCard{Summary: m.summary, WeekTarget: m.config.WeekTarget, Width: width}
		return c.View(m.styles)
	case model.CardNavigation:
		c := NavigationCard{Width: width}
		return c.View(m.styles)
	case model.CardRecentReports:
		c := RecentCard{Reports: m.recent, Width: width}
		return c.View(m.styles)
	}
	return ""
}

// loadData loads all figures from the stores.
func (m *DashboardModel) loadData() {
	today := worktime.DateOf(m.config.Now())

	if m.config.Reports != nil {
		m.summary.Stats = m.config.Reports.Stats(today)
		m.recent = m.config.Reports.Recent(m.config.RecentCount)
	}
	m.summary.Colleagues = count(m.config.Colleagues)
	m.summary.Worksites = count(m.config.Worksites)
	m.summary.Projects = count(m.config.Projects)
}

func count(c Counter) int {
	if c == nil {
		return 0
	}
	return c.Count()
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.config.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.config.RefreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
