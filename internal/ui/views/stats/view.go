package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "focuspro/internal/modules/stats/dto"
	"focuspro/internal/ui/theme"
)

// StatsPort is the read surface this view needs.
type StatsPort interface {
	Today(ctx context.Context, date string) (statsdto.SummaryOutput, error)
	Range(ctx context.Context, start, end string) ([]statsdto.DayTotal, error)
	Report(ctx context.Context, kind, customStart, customEnd string) ([]statsdto.CategoryTotal, error)
}

type LoadedMsg struct {
	Summary statsdto.SummaryOutput
	Week    []statsdto.DayTotal
	ByCat   []statsdto.CategoryTotal
	Err     error
}

type refreshMsg struct{}

const refreshEvery = 5 * time.Second

type Model struct {
	port    StatsPort
	summary statsdto.SummaryOutput
	week    []statsdto.DayTotal
	byCat   []statsdto.CategoryTotal
	loadErr error
	width   int
	height  int
}

func New(port StatsPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.refreshCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case refreshMsg:
		return m, tea.Batch(m.loadCmd(), m.refreshCmd())

	case LoadedMsg:
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
			m.week = msg.Week
			m.byCat = msg.ByCat
		}

	case tea.KeyMsg:
		if msg.String() == "R" {
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loadErr != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("stats unavailable: "+m.loadErr.Error()))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Daily Progress") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s %d min  %s %d%% of %dh  %s %d days\n\n",
		theme.Muted.Render("today:"), m.summary.Minutes,
		theme.Muted.Render("goal:"), m.summary.GoalPercent, m.summary.GoalHours,
		theme.Muted.Render("streak:"), m.summary.StreakDays))

	sb.WriteString(theme.Title.Render("This Week") + "\n")
	maxMinutes := 1
	for _, day := range m.week {
		if day.Minutes > maxMinutes {
			maxMinutes = day.Minutes
		}
	}
	barWidth := min(m.width-30, 40)
	if barWidth < 10 {
		barWidth = 10
	}
	for _, day := range m.week {
		filled := day.Minutes * barWidth / maxMinutes
		bar := theme.Good.Render(strings.Repeat("█", filled)) +
			theme.Muted.Render(strings.Repeat("░", barWidth-filled))
		sb.WriteString(fmt.Sprintf("%s %s %4d min\n", theme.Muted.Render(day.Date), bar, day.Minutes))
	}

	if len(m.byCat) > 0 {
		sb.WriteString("\n" + theme.Title.Render("By Category") + "\n")
		catTotals := map[string]int{}
		var order []string
		for _, row := range m.byCat {
			if _, seen := catTotals[row.Category]; !seen {
				order = append(order, row.Category)
			}
			catTotals[row.Category] += row.Minutes
		}
		for _, category := range order {
			sb.WriteString(fmt.Sprintf("%-10s %4d min\n", category, catTotals[category]))
		}
	}

	sb.WriteString("\n" + theme.Muted.Render("R:refresh"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(sb.String()))
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		summary, err := m.port.Today(ctx, "")
		if err != nil {
			return LoadedMsg{Err: err}
		}
		weekRows, err := m.port.Report(ctx, "week", "", "")
		if err != nil {
			return LoadedMsg{Err: err}
		}
		start, end := weekBounds(summary.Date)
		week, err := m.port.Range(ctx, start, end)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Summary: summary, Week: week, ByCat: weekRows}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(time.Time) tea.Msg { return refreshMsg{} })
}

// weekBounds returns the Monday and Sunday of the week containing date.
func weekBounds(date string) (string, string) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		t = time.Now()
	}
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := t.AddDate(0, 0, -(weekday - 1))
	return start.Format("2006-01-02"), start.AddDate(0, 0, 6).Format("2006-01-02")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
