package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

type resultsLoadedMsg struct {
	Results []scoring.Result
	Err     error
}

// ListScreen shows every result the learner has, most recent first.
type ListScreen struct {
	env      *screens.Env
	results  []scoring.Result
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// NewList creates a ListScreen.
func NewList(env *screens.Env) *ListScreen {
	return &ListScreen{env: env}
}

func (s *ListScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ListScreen) load() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		res, err := env.Store().Results(env.Context(), env.User().ID)
		return resultsLoadedMsg{Results: res, Err: err}
	}
}

func (s *ListScreen) Title() string {
	return "My Results"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		// Newest first.
		s.results = make([]scoring.Result, len(msg.Results))
		for i, r := range msg.Results {
			s.results[len(msg.Results)-1-i] = r
		}
		s.selected = min(s.selected, max(0, len(s.results)-1))
		return s, nil

	case screens.StoreChangedMsg:
		return s, s.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			if len(s.results) > 0 {
				detail := NewDetail(s.env, s.results[s.selected])
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading results...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No results yet. Take an assessment to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, r := range s.results {
		title := r.AssessmentID
		if a, err := catalog.GetAssessment(r.AssessmentID); err == nil {
			title = a.Title
		}
		weak := len(r.ByStatus(scoring.StatusWeak))

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := style.Render(fmt.Sprintf("%s%s  %s", prefix, r.Date, layout.Fit(title, 24))) +
			"  " + theme.ScoreColor(r.Score).Render(fmt.Sprintf("%3d%%", r.Score)) +
			theme.Hint.Render(fmt.Sprintf("  %d weak", weak))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}
