package focus

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "focuspro/internal/modules/session/dto"
	statsdto "focuspro/internal/modules/stats/dto"
	"focuspro/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// SessionPort is the minimal session surface this view needs.
type SessionPort interface {
	Start(ctx context.Context, category string, durationMin int) (sessiondto.StartOutput, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) (sessiondto.StopOutput, error)
	Reset(ctx context.Context) error
	SetDuration(ctx context.Context, minutes int) error
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
}

// SummaryPort reads today's progress for the goal bar.
type SummaryPort interface {
	Today(ctx context.Context, date string) (statsdto.SummaryOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type pollMsg struct{}

type StatusMsg struct {
	Status sessiondto.StatusOutput
	Err    error
}

type SummaryMsg struct {
	Summary statsdto.SummaryOutput
	Err     error
}

// ActionMsg reports the outcome of a control action; the app model surfaces
// the error in the status bar.
type ActionMsg struct {
	Verb string
	Err  error
}

const pollEvery = 500 * time.Millisecond

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	session    SessionPort
	summary    SummaryPort
	categories []string
	catIndex   int
	duration   int
	status     sessiondto.StatusOutput
	today      statsdto.SummaryOutput
	goalBar    progress.Model
	width      int
	height     int
}

func New(session SessionPort, summary SummaryPort, categories []string, defaultDurationMin int) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return Model{
		session:    session,
		summary:    summary,
		categories: categories,
		duration:   defaultDurationMin,
		goalBar:    bar,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), m.statusCmd(), m.summaryCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.goalBar.Width = min(m.width-20, 60)

	case pollMsg:
		return m, tea.Batch(m.pollCmd(), m.statusCmd(), m.summaryCmd())

	case StatusMsg:
		if msg.Err == nil {
			m.status = msg.Status
			if m.status.State == "idle" && m.status.DurationMin > 0 {
				m.duration = m.status.DurationMin
			}
		}

	case SummaryMsg:
		if msg.Err == nil {
			m.today = msg.Summary
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		return m, m.actionCmd("start", func(ctx context.Context) error {
			_, err := m.session.Start(ctx, m.categories[m.catIndex], m.duration)
			return err
		})
	case " ":
		if m.status.State == "paused" {
			return m, m.actionCmd("resume", m.session.Resume)
		}
		return m, m.actionCmd("pause", m.session.Pause)
	case "x":
		return m, m.actionCmd("stop", func(ctx context.Context) error {
			_, err := m.session.Stop(ctx)
			return err
		})
	case "r":
		return m, m.actionCmd("reset", m.session.Reset)
	case "left":
		if m.status.State == "idle" {
			m.catIndex = (m.catIndex + len(m.categories) - 1) % len(m.categories)
		}
	case "right":
		if m.status.State == "idle" {
			m.catIndex = (m.catIndex + 1) % len(m.categories)
		}
	case "+", "=":
		if m.status.State == "idle" && m.duration < 240 {
			m.duration += 5
			return m, m.setDurationCmd(m.duration)
		}
	case "-":
		if m.status.State == "idle" && m.duration > 5 {
			m.duration -= 5
			return m, m.setDurationCmd(m.duration)
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	remaining := m.status.RemainingSeconds
	if m.status.State == "idle" {
		remaining = m.duration * 60
	}

	stateStyle := theme.Muted
	switch m.status.State {
	case "active":
		stateStyle = theme.Good
	case "paused":
		stateStyle = theme.Paused
	}

	clockFace := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%02d:%02d", remaining/60, remaining%60))

	category := m.categories[m.catIndex]
	if m.status.State != "idle" && m.status.Category != "" {
		category = m.status.Category
	}

	goalPct := float64(m.today.GoalPercent) / 100
	if goalPct > 1 {
		goalPct = 1
	}

	lines := []string{
		theme.Title.Render("Focus Session"),
		"",
		clockFace + "  " + stateStyle.Render(m.status.State),
		"",
		theme.Muted.Render("category: ") + theme.Hot.Render(category) +
			theme.Muted.Render(fmt.Sprintf("   duration: %d min", m.duration)),
		"",
		theme.Muted.Render(fmt.Sprintf("today %d min of %dh goal, streak %d",
			m.today.Minutes, m.today.GoalHours, m.today.StreakDays)),
		m.goalBar.ViewAs(goalPct),
		"",
		theme.Muted.Render("s:start  space:pause/resume  x:stop  r:reset  ←/→:category  +/-:duration"),
	}
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(body))
}

// ─── commands ────────────────────────────────────────────────────────────────

// StartCmd starts a session from a palette command. Zero minutes means the
// current default duration.
func (m Model) StartCmd(category string, minutes int) tea.Cmd {
	if minutes == 0 {
		minutes = m.duration
	}
	return m.actionCmd("start", func(ctx context.Context) error {
		_, err := m.session.Start(ctx, category, minutes)
		return err
	})
}

// ControlCmd dispatches a named control action from the palette.
func (m Model) ControlCmd(verb string) tea.Cmd {
	switch verb {
	case "pause":
		return m.actionCmd(verb, m.session.Pause)
	case "resume":
		return m.actionCmd(verb, m.session.Resume)
	case "stop":
		return m.actionCmd(verb, func(ctx context.Context) error {
			_, err := m.session.Stop(ctx)
			return err
		})
	case "reset":
		return m.actionCmd(verb, m.session.Reset)
	}
	return nil
}

// DurationCmd changes the idle default duration from the palette.
func (m Model) DurationCmd(minutes int) tea.Cmd {
	return m.setDurationCmd(minutes)
}

func (m Model) pollCmd() tea.Cmd {
	return tea.Tick(pollEvery, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.session.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) summaryCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.summary.Today(context.Background(), "")
		return SummaryMsg{Summary: summary, Err: err}
	}
}

func (m Model) actionCmd(verb string, action func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Verb: verb, Err: action(context.Background())}
	}
}

func (m Model) setDurationCmd(minutes int) tea.Cmd {
	return m.actionCmd("duration", func(ctx context.Context) error {
		return m.session.SetDuration(ctx, minutes)
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
