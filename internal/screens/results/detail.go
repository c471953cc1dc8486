package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/mentors"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

// DetailScreen shows one result: the overall score, the concept breakdown
// and, for weak concepts, study material and suggested mentors.
type DetailScreen struct {
	env       *screens.Env
	result    scoring.Result
	title     string
	resources []dashboard.ConceptResources
	mentors   []catalog.Mentor
	selected  int

	// TimedOut marks a result submitted automatically when time ran out.
	TimedOut bool
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates a DetailScreen for r.
func NewDetail(env *screens.Env, r scoring.Result) *DetailScreen {
	title := r.AssessmentID
	if a, err := catalog.GetAssessment(r.AssessmentID); err == nil {
		title = a.Title
	}
	weak := r.ByStatus(scoring.StatusWeak)
	return &DetailScreen{
		env:       env,
		result:    r,
		title:     title,
		resources: dashboard.ResourcesFor(weak),
		mentors:   dashboard.RecommendMentors(weak, catalog.AllMentors(), dashboard.RecommendLimit),
	}
}

func (s *DetailScreen) Init() tea.Cmd {
	return nil
}

func (s *DetailScreen) Title() string {
	return "Results"
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	if len(s.mentors) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose mentor"},
		{Key: "Enter", Description: "Book session"},
		{Key: "Esc", Description: "Back"},
	}
}

// focusConcept is the weak concept a booking from this screen is about.
func (s *DetailScreen) focusConcept() string {
	weak := s.result.ByStatus(scoring.StatusWeak)
	if len(weak) == 0 {
		return ""
	}
	return catalog.ConceptName(weak[0].ConceptID)
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.mentors)-1 {
			s.selected++
		}
	case "enter":
		if len(s.mentors) > 0 {
			next := mentors.NewBooking(s.env, s.mentors[s.selected], s.focusConcept())
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *DetailScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	r := s.result
	var b strings.Builder

	b.WriteString(theme.Title.Render(s.title) + "\n")
	meta := fmt.Sprintf("Taken %s · %d min", r.Date, r.TimeTakenMins)
	b.WriteString(theme.Subtitle.Render(meta) + "\n")
	if s.TimedOut {
		b.WriteString(theme.ErrorText.Render("Time ran out. Your answers were submitted automatically.") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Overall score  ") +
		theme.ScoreColor(r.Score).Bold(true).Render(fmt.Sprintf("%d%%", r.Score)) + "\n\n")

	b.WriteString(theme.Section.Render("Concept breakdown") + "\n")
	for _, cs := range r.ConceptScores {
		label := layout.Fit(catalog.ConceptName(cs.ConceptID), 22)
		status := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %s %s", cs.Status.Icon(), cs.Status.Label()))
		barWidth := cw - lipgloss.Width(status)
		b.WriteString(components.NewScoreBar(label, cs.Score, barWidth).View() + status + "\n")
	}

	if len(s.resources) > 0 {
		b.WriteString("\n" + theme.Section.Render("Recommended study") + "\n")
		for _, cr := range s.resources {
			b.WriteString(theme.Body.Bold(true).Render(cr.Concept.Name) + "\n")
			if len(cr.Resources) == 0 {
				b.WriteString(theme.Hint.Render("  No resources yet.") + "\n")
			}
			for _, res := range cr.Resources {
				b.WriteString(theme.Body.Render(fmt.Sprintf("  %s %s", res.Kind.Icon(), res.Title)) +
					theme.Hint.Render("  "+resourceMeta(res)) + "\n")
			}
		}
	}

	if len(s.mentors) > 0 {
		b.WriteString("\n" + theme.Section.Render("Mentors who can help") + "\n")
		for i, m := range s.mentors {
			line := fmt.Sprintf("%s  ★ %.1f  %s", m.Name, m.Rating, strings.Join(m.Expertise, ", "))
			if i == s.selected {
				b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
			} else {
				b.WriteString(theme.Unselected.Render("  "+line) + "\n")
			}
		}
	} else if len(r.ByStatus(scoring.StatusWeak)) == 0 {
		b.WriteString("\n" + theme.Correct.Render("No weak concepts in this assessment.") + "\n")
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}

func resourceMeta(r catalog.Resource) string {
	switch {
	case r.Duration != "":
		return r.Duration
	case r.Questions > 0:
		return fmt.Sprintf("%d questions", r.Questions)
	default:
		return string(r.Kind)
	}
}
