package assessments

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/attempt"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/notice"
	"github.com/abhisek/learnboard/internal/screens/quiz"
	"github.com/abhisek/learnboard/internal/screens/results"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

type resultsLoadedMsg struct {
	Results []scoring.Result
	Err     error
}

// AssessmentsScreen lists the diagnostic assessments and starts attempts.
type AssessmentsScreen struct {
	env         *screens.Env
	assessments []catalog.Assessment
	results     []scoring.Result
	selected    int
	errMsg      string
}

var _ screen.Screen = (*AssessmentsScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentsScreen)(nil)

// New creates an AssessmentsScreen.
func New(env *screens.Env) *AssessmentsScreen {
	return &AssessmentsScreen{
		env:         env,
		assessments: catalog.AllAssessments(),
	}
}

func (s *AssessmentsScreen) Init() tea.Cmd {
	return s.load()
}

func (s *AssessmentsScreen) load() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		res, err := env.Store().Results(env.Context(), env.User().ID)
		return resultsLoadedMsg{Results: res, Err: err}
	}
}

func (s *AssessmentsScreen) Title() string {
	return "Assessments"
}

func (s *AssessmentsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
	}
	if s.selectedResult() != nil {
		hints = append(hints, layout.KeyHint{Key: "V", Description: "View result"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *AssessmentsScreen) selectedResult() *scoring.Result {
	if s.selected >= len(s.assessments) {
		return nil
	}
	r, err := dashboard.ResultFor(s.results, s.assessments[s.selected].ID)
	if err != nil {
		return nil
	}
	return &r
}

func (s *AssessmentsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.results = msg.Results
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
			if s.selected < len(s.assessments)-1 {
				s.selected++
			}
		case "enter":
			return s, s.start()
		case "v":
			if r := s.selectedResult(); r != nil {
				detail := results.NewDetail(s.env, *r)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
	}
	return s, nil
}

// start builds an attempt for the selected assessment and pushes the quiz.
func (s *AssessmentsScreen) start() tea.Cmd {
	if len(s.assessments) == 0 {
		return nil
	}
	next := Start(s.env, s.assessments[s.selected])
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// Start returns the quiz screen for a, or a notice when the attempt cannot
// begin.
func Start(env *screens.Env, a catalog.Assessment) screen.Screen {
	qs, err := catalog.QuestionsFor(a.ID)
	if err != nil {
		return notice.FromError(a.Title, err)
	}
	if a.DurationMins <= 0 {
		a.DurationMins = env.DefaultDurationMins
	}
	att, err := attempt.New(a, qs)
	if err != nil {
		return notice.FromError(a.Title, err)
	}
	env.Logger.Info("attempt started",
		zap.String("assessment_id", a.ID),
		zap.Int("questions", att.Len()),
		zap.Int("duration_mins", att.DurationMins()),
	)
	return quiz.New(env, att)
}

func (s *AssessmentsScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render("Diagnostic assessments") + "\n")
	b.WriteString(theme.Subtitle.Render("Each assessment scores you concept by concept.") + "\n\n")
	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render("Error: "+s.errMsg) + "\n\n")
	}

	for i, a := range s.assessments {
		marker := "  "
		titleStyle := theme.Unselected
		if i == s.selected {
			marker = "▸ "
			titleStyle = theme.Selected
		}

		status := theme.Hint.Render("not taken")
		if r, err := dashboard.ResultFor(s.results, a.ID); err == nil {
			status = theme.ScoreColor(r.Score).Render(fmt.Sprintf("scored %d%%", r.Score))
		}

		qs, _ := catalog.QuestionsFor(a.ID)
		meta := fmt.Sprintf("%s · %d questions · %d min", a.Subject, len(qs), a.DurationMins)

		b.WriteString(titleStyle.Render(marker+a.Title) + "  " + status + "\n")
		b.WriteString(theme.Hint.Render("    "+meta) + "\n")
		if i == s.selected && a.Description != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-4).PaddingLeft(4).Render(a.Description) + "\n")
		}
		b.WriteString("\n")
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}
