package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	settingsdto "focuspro/internal/modules/settings/dto"
	"focuspro/internal/ui/components"
	"focuspro/internal/ui/theme"
	focusview "focuspro/internal/ui/views/focus"
	quickview "focuspro/internal/ui/views/quick"
	statsview "focuspro/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Sub-view ports live in their own packages; the app model only needs the
// goal setting for palette commands.

type settingsPort interface {
	Show(ctx context.Context) (settingsdto.GoalOutput, error)
	Set(ctx context.Context, hours int) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabFocus tabID = iota
	tabQuick
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Focus", "Quick Timer", "Stats"}

// ─── messages ────────────────────────────────────────────────────────────────

// ActivatedMsg is injected by the single-instance gate when another
// invocation asks this one to come to the front.
type ActivatedMsg struct{}

type goalSetMsg struct {
	hours int
	err   error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Toggle  key.Binding
	Stop    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Toggle, k.Stop},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: tab routing, help overlay, command
// palette, and the status line. Timer logic lives behind the sub-view ports.
type Model struct {
	settings settingsPort

	focusView focusview.Model
	quickView quickview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	session focusview.SessionPort,
	timer quickview.TimerPort,
	stats statsview.StatsPort,
	summary focusview.SummaryPort,
	settings settingsPort,
	categories []string,
	defaultDurationMin int,
) Model {
	return Model{
		settings:  settings,
		focusView: focusview.New(session, summary, categories, defaultDurationMin),
		quickView: quickview.New(timer),
		statsView: statsview.New(stats),
		activeTab: tabFocus,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.focusView.Init(), m.quickView.Init(), m.statsView.Init())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(minInt(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case ActivatedMsg:
		m.status = "another invocation knocked; already running here"

	case focusview.ActionMsg:
		if msg.Err != nil {
			m.status = msg.Verb + ": " + msg.Err.Error()
		} else {
			m.status = msg.Verb + " ok"
		}

	case quickview.ActionMsg:
		if msg.Err != nil {
			m.status = "timer " + msg.Verb + ": " + msg.Err.Error()
		} else {
			m.status = "timer " + msg.Verb + " ok"
		}

	case goalSetMsg:
		if msg.err != nil {
			m.status = "goal set failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("daily goal set to %dh", msg.hours)
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		// The quick tab's seconds input needs free typing; only a few
		// globals stay active there.
		switch msg.String() {
		case "ctrl+c", "q":
			if m.activeTab == tabQuick && msg.String() == "q" {
				break
			}
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			if m.activeTab != tabQuick {
				m.showHelp = !m.showHelp
				return m, nil
			}
		case ":":
			return m, m.palette.Open()
		}
	}

	// Every sub-view keeps its poll loop alive regardless of the active tab;
	// only key input is routed to the active tab alone.
	_, isKey := msg.(tea.KeyMsg)
	var cmd tea.Cmd
	if !isKey || m.activeTab == tabFocus {
		m.focusView, cmd = m.focusView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.activeTab == tabQuick {
		m.quickView, cmd = m.quickView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !isKey || m.activeTab == tabStats {
		m.statsView, cmd = m.statsView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabFocus:
		return m.focusView.View()
	case tabQuick:
		return m.quickView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "focuspro  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "session:start":
		if len(parts) < 2 {
			m.status = "usage: session:start <category> [minutes]"
			return m, nil
		}
		m.activeTab = tabFocus
		minutes := 0
		if len(parts) >= 3 {
			if n, err := strconv.Atoi(parts[2]); err == nil {
				minutes = n
			}
		}
		return m, m.focusView.StartCmd(parts[1], minutes)

	case "session:pause", "session:resume", "session:stop", "session:reset":
		m.activeTab = tabFocus
		return m, m.focusView.ControlCmd(strings.TrimPrefix(parts[0], "session:"))

	case "session:duration":
		if len(parts) < 2 {
			m.status = "usage: session:duration <minutes>"
			return m, nil
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		return m, m.focusView.DurationCmd(minutes)

	case "quick:start":
		if len(parts) < 2 {
			m.status = "usage: quick:start <seconds>"
			return m, nil
		}
		seconds, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid seconds"
			return m, nil
		}
		m.activeTab = tabQuick
		return m, m.quickView.StartCmd(seconds)

	case "quick:pause", "quick:resume", "quick:stop":
		m.activeTab = tabQuick
		return m, m.quickView.ControlCmd(strings.TrimPrefix(parts[0], "quick:"))

	case "goal:set":
		if len(parts) < 2 {
			m.status = "usage: goal:set <hours>"
			return m, nil
		}
		hours, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid hours"
			return m, nil
		}
		return m, m.setGoalCmd(hours)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.focusView, _ = m.focusView.Update(sz)
	m.quickView, _ = m.quickView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func (m Model) setGoalCmd(hours int) tea.Cmd {
	return func() tea.Msg {
		return goalSetMsg{hours: hours, err: m.settings.Set(context.Background(), hours)}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
