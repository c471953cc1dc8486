package mentors

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
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

// DirectoryScreen lists mentors with a search box and a subject filter.
type DirectoryScreen struct {
	env      *screens.Env
	all      []catalog.Mentor
	subjects []string
	subject  int
	search   components.TextInput
	filtered []catalog.Mentor
	selected int
}

var _ screen.Screen = (*DirectoryScreen)(nil)
var _ screen.KeyHintProvider = (*DirectoryScreen)(nil)

// New creates a DirectoryScreen over the catalog's mentors.
func New(env *screens.Env) *DirectoryScreen {
	all := catalog.AllMentors()
	s := &DirectoryScreen{
		env:      env,
		all:      all,
		subjects: append([]string{dashboard.AllSubjects}, dashboard.Subjects(all)...),
		search:   components.NewTextInput("Search", "name or expertise", 32),
	}
	s.refilter()
	return s
}

func (s *DirectoryScreen) Init() tea.Cmd {
	return s.search.Init()
}

func (s *DirectoryScreen) Title() string {
	return "Find a Mentor"
}

func (s *DirectoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Type", Description: "Search"},
		{Key: "Tab", Description: "Subject"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Book"},
		{Key: "Esc", Description: "Back"},
	}
}

// Subject returns the active subject filter.
func (s *DirectoryScreen) Subject() string {
	return s.subjects[s.subject]
}

// Filtered returns the mentors currently shown.
func (s *DirectoryScreen) Filtered() []catalog.Mentor {
	return s.filtered
}

func (s *DirectoryScreen) refilter() {
	s.filtered = dashboard.FilterMentors(s.all, s.search.Value(), s.Subject())
	s.selected = min(s.selected, max(0, len(s.filtered)-1))
}

func (s *DirectoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down":
			if s.selected < len(s.filtered)-1 {
				s.selected++
			}
			return s, nil
		case "tab":
			s.subject = (s.subject + 1) % len(s.subjects)
			s.refilter()
			return s, nil
		case "shift+tab":
			s.subject = (s.subject - 1 + len(s.subjects)) % len(s.subjects)
			s.refilter()
			return s, nil
		case "enter":
			if len(s.filtered) == 0 {
				return s, nil
			}
			next := NewBooking(s.env, s.filtered[s.selected], "")
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.refilter()
	return s, cmd
}

func (s *DirectoryScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.search.View() + "\n")
	var tabs []string
	for i, subj := range s.subjects {
		label := subj
		if subj == dashboard.AllSubjects {
			label = "All"
		}
		if i == s.subject {
			tabs = append(tabs, theme.Selected.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.Hint.Render(label))
		}
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).Render(strings.Join(tabs, " ")) + "\n\n")

	if len(s.filtered) == 0 {
		b.WriteString(theme.Hint.Render("No mentors match your search."))
	}
	for i, m := range s.filtered {
		name := theme.Unselected.Render("  " + m.Name)
		if i == s.selected {
			name = theme.Selected.Render("▸ " + m.Name)
		}
		b.WriteString(name + theme.Hint.Render(fmt.Sprintf("  ★ %.1f · %d sessions · $%.0f/hr", m.Rating, m.SessionsCompleted, m.HourlyRate)) + "\n")
		b.WriteString(theme.Subtitle.Render("    "+strings.Join(m.Expertise, ", ")) + "\n")
		if i == s.selected {
			if m.Bio != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-4).PaddingLeft(4).Render(m.Bio) + "\n")
			}
			b.WriteString(theme.Hint.Render("    Available "+strings.Join(m.Days(), ", ")) + "\n")
		}
		b.WriteString("\n")
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}
