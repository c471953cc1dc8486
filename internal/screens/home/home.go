package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/assessments"
	"github.com/abhisek/learnboard/internal/screens/certificates"
	"github.com/abhisek/learnboard/internal/screens/mentors"
	"github.com/abhisek/learnboard/internal/screens/results"
	"github.com/abhisek/learnboard/internal/screens/schedule"
	"github.com/abhisek/learnboard/internal/screens/tracker"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

type overviewLoadedMsg struct {
	Overview dashboard.Overview
	Err      error
}

type signedOutMsg struct {
	Err error
}

// HomeScreen is the dashboard landing view: headline stats, focus areas,
// upcoming sessions and the navigation menu.
type HomeScreen struct {
	env           *screens.Env
	signInFactory func() screen.Screen
	menu          components.Menu
	overview      dashboard.Overview
	loaded        bool
	errMsg        string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen. Signing out replaces it with the screen
// signInFactory builds.
func New(env *screens.Env, signInFactory func() screen.Screen) *HomeScreen {
	h := &HomeScreen{env: env, signInFactory: signInFactory}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Assessments", Action: push(func() screen.Screen { return assessments.New(env) })},
		{Label: "My Results", Action: push(func() screen.Screen { return results.NewList(env) })},
		{Label: "Find a Mentor", Action: push(func() screen.Screen { return mentors.New(env) })},
		{Label: "My Sessions", Action: push(func() screen.Screen { return schedule.New(env) })},
		{Label: "Progress", Action: push(func() screen.Screen { return tracker.New(env) })},
		{Label: "Certificates", Action: push(func() screen.Screen { return certificates.New(env) })},
		{Label: "Sign out", Action: h.signOut},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	env := h.env
	return func() tea.Msg {
		o, err := dashboard.Build(env.Context(), env.Store(), env.User())
		return overviewLoadedMsg{Overview: o, Err: err}
	}
}

func (h *HomeScreen) signOut() tea.Cmd {
	env := h.env
	return func() tea.Msg {
		err := env.Session.Logout(env.Context())
		if err != nil {
			env.Logger.Error("sign out failed", zap.Error(err))
		}
		return signedOutMsg{Err: err}
	}
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.overview = msg.Overview
		return h, nil

	case screens.StoreChangedMsg:
		if _, ok := h.env.Session.User(); !ok {
			return h, nil
		}
		return h, h.load()

	case signedOutMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		next := h.signInFactory()
		return h, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var sections []string

	o := h.overview
	greeting := fmt.Sprintf("Welcome back, %s!", o.User.FirstName())
	if o.User.Grade != "" {
		greeting += "  " + theme.Subtitle.Render(o.User.Grade)
	}
	sections = append(sections, theme.Title.Render(greeting))

	switch {
	case h.errMsg != "":
		sections = append(sections, theme.ErrorText.Render("Error: "+h.errMsg))
	case !h.loaded:
		sections = append(sections, theme.Hint.Render("Loading your dashboard..."))
	default:
		sections = append(sections, renderStats(o, cw))
		if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
			sections = append(sections, renderColumns(o, cw))
		}
	}

	sections = append(sections, h.menu.View())

	body := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))
	return layout.Center(body, width)
}

func renderStats(o dashboard.Overview, width int) string {
	cards := []struct {
		label string
		value string
	}{
		{"Assessments taken", fmt.Sprint(o.AssessmentsTaken)},
		{"Remaining", fmt.Sprint(o.AssessmentsRemaining)},
		{"Overall progress", fmt.Sprintf("%d%%", o.OverallProgress)},
		{"Upcoming sessions", fmt.Sprint(len(o.Upcoming))},
		{"Certificates", fmt.Sprint(len(o.Certificates))},
	}

	cardWidth := width/len(cards) - 2
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, theme.Card.Width(cardWidth).Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(c.value)+"\n"+
				theme.Subtitle.Render(c.label),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderColumns(o dashboard.Overview, width int) string {
	colWidth := width/2 - 1

	var focus strings.Builder
	focus.WriteString(theme.Section.Render("Focus areas") + "\n")
	weak := o.Focus()
	if len(weak) == 0 {
		focus.WriteString(theme.Hint.Render("No weak concepts. Nice work!"))
	}
	for _, cs := range weak {
		focus.WriteString(components.NewScoreBar(layout.Fit(catalog.ConceptName(cs.ConceptID), 18), cs.Score, colWidth-2).View() + "\n")
	}

	var upcoming strings.Builder
	upcoming.WriteString(theme.Section.Render("Upcoming sessions") + "\n")
	if len(o.Upcoming) == 0 {
		upcoming.WriteString(theme.Hint.Render("No sessions booked."))
	}
	for i, b := range o.Upcoming {
		if i == 3 {
			upcoming.WriteString(theme.Hint.Render(fmt.Sprintf("+%d more", len(o.Upcoming)-3)))
			break
		}
		mentor := b.MentorID
		if m, err := catalog.GetMentor(b.MentorID); err == nil {
			mentor = m.Name
		}
		upcoming.WriteString(theme.Body.Render(fmt.Sprintf("%s %s", b.Date, b.Time)) + "\n")
		upcoming.WriteString(theme.Hint.Render("  "+mentor+" · "+b.Concept) + "\n")
	}

	left := lipgloss.NewStyle().Width(colWidth).Render(focus.String())
	right := lipgloss.NewStyle().Width(colWidth).Render(upcoming.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}
