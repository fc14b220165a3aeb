package quick

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quickdto "focuspro/internal/modules/quicktimer/dto"
	"focuspro/internal/ui/theme"
)

// TimerPort is the minimal quick timer surface this view needs.
type TimerPort interface {
	Start(ctx context.Context, seconds int) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	Stop(ctx context.Context) error
	Status(ctx context.Context) (quickdto.StatusOutput, error)
}

type pollMsg struct{}

type StatusMsg struct {
	Status quickdto.StatusOutput
	Err    error
}

type ActionMsg struct {
	Verb string
	Err  error
}

const pollEvery = 500 * time.Millisecond

type Model struct {
	timer  TimerPort
	input  textinput.Model
	status quickdto.StatusOutput
	width  int
	height int
}

func New(timer TimerPort) Model {
	ti := textinput.New()
	ti.Placeholder = "seconds (e.g. 300)"
	ti.CharLimit = 6
	ti.Focus()
	return Model{timer: timer, input: ti}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.pollCmd(), m.statusCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pollMsg:
		return m, tea.Batch(m.pollCmd(), m.statusCmd())

	case StatusMsg:
		if msg.Err == nil {
			m.status = msg.Status
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			seconds, err := strconv.Atoi(m.input.Value())
			if err != nil {
				return m, func() tea.Msg { return ActionMsg{Verb: "start", Err: fmt.Errorf("seconds must be a number")} }
			}
			m.input.SetValue("")
			return m, m.actionCmd("start", func(ctx context.Context) error {
				return m.timer.Start(ctx, seconds)
			})
		case " ":
			if m.status.State == "paused" {
				return m, m.actionCmd("resume", m.timer.Resume)
			}
			if m.status.State == "running" {
				return m, m.actionCmd("pause", m.timer.Pause)
			}
		case "x":
			return m, m.actionCmd("stop", m.timer.Stop)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	stateStyle := theme.Muted
	switch m.status.State {
	case "running":
		stateStyle = theme.Good
	case "paused":
		stateStyle = theme.Paused
	case "finished":
		stateStyle = theme.Hot
	}

	remaining := m.status.RemainingSeconds
	clockFace := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%02d:%02d", remaining/60, remaining%60))

	lines := []string{
		theme.Title.Render("Quick Timer"),
		"",
		clockFace + "  " + stateStyle.Render(m.status.State),
		"",
		"seconds: " + m.input.View(),
		"",
		theme.Muted.Render("enter:start  space:pause/resume  x:stop"),
	}
	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(body))
}

// StartCmd arms the timer from a palette command.
func (m Model) StartCmd(seconds int) tea.Cmd {
	return m.actionCmd("start", func(ctx context.Context) error {
		return m.timer.Start(ctx, seconds)
	})
}

// ControlCmd dispatches a named control action from the palette.
func (m Model) ControlCmd(verb string) tea.Cmd {
	switch verb {
	case "pause":
		return m.actionCmd(verb, m.timer.Pause)
	case "resume":
		return m.actionCmd(verb, m.timer.Resume)
	case "stop":
		return m.actionCmd(verb, m.timer.Stop)
	}
	return nil
}

func (m Model) pollCmd() tea.Cmd {
	return tea.Tick(pollEvery, func(time.Time) tea.Msg { return pollMsg{} })
}

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.timer.Status(context.Background())
		return StatusMsg{Status: status, Err: err}
	}
}

func (m Model) actionCmd(verb string, action func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Verb: verb, Err: action(context.Background())}
	}
}
