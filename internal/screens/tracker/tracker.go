package tracker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

type reportLoadedMsg struct {
	Report dashboard.ProgressReport
	Err    error
}

// TrackerScreen shows headline statistics and per-concept trends.
type TrackerScreen struct {
	env    *screens.Env
	report dashboard.ProgressReport
	loaded bool
	errMsg string
}

var _ screen.Screen = (*TrackerScreen)(nil)

// New creates a TrackerScreen.
func New(env *screens.Env) *TrackerScreen {
	return &TrackerScreen{env: env}
}

func (s *TrackerScreen) Init() tea.Cmd {
	return s.load()
}

func (s *TrackerScreen) load() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		r, err := dashboard.LoadProgress(env.Context(), env.Store(), env.User().ID)
		return reportLoadedMsg{Report: r, Err: err}
	}
}

func (s *TrackerScreen) Title() string {
	return "Progress"
}

func (s *TrackerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.report = msg.Report
	case screens.StoreChangedMsg:
		return s, s.load()
	}
	return s, nil
}

func (s *TrackerScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	cw := layout.ContentWidth(width)
	r := s.report
	var b strings.Builder

	st := r.Stats
	b.WriteString(theme.Section.Render("Overview") + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf(
		"%d assessments · average %d%% · %d certificates · %d concepts improved",
		st.TotalAssessments, st.AverageScore, st.CertificatesEarned, st.ConceptsImproved,
	)) + "\n\n")
	b.WriteString(components.NewScoreBar("Recent progress", r.Overall, cw).View() + "\n\n")

	b.WriteString(theme.Section.Render("Concept trends") + "\n")
	if len(r.Trends) == 0 {
		b.WriteString(theme.Hint.Render("Take an assessment to start tracking concepts."))
	}
	for _, t := range r.Trends {
		history := make([]string, 0, len(t.History))
		for _, h := range t.History {
			history = append(history, fmt.Sprint(h.Score))
		}
		change := fmt.Sprintf("%+d", t.Improvement)
		b.WriteString(theme.Body.Render(layout.Fit(t.Concept.Name, 22)) +
			"  " + trendStyle(t.Trend).Render(fmt.Sprintf("%s %-6s %4s", t.Trend.Icon(), t.Trend, change)) +
			"  " + theme.ScoreColor(t.Latest).Render(fmt.Sprintf("%3d%%", t.Latest)) +
			theme.Hint.Render("  "+strings.Join(history, " → ")) + "\n")
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}

func trendStyle(t progress.Trend) lipgloss.Style {
	switch t {
	case progress.TrendUp:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case progress.TrendDown:
		return lipgloss.NewStyle().Foreground(theme.Error)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}
