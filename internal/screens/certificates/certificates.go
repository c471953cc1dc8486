package certificates

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

type certsLoadedMsg struct {
	Certificates []certificate.Certificate
	Err          error
}

// CertificatesScreen lists earned certificates, newest first, with the
// selected one shown in full.
type CertificatesScreen struct {
	env      *screens.Env
	certs    []certificate.Certificate
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*CertificatesScreen)(nil)
var _ screen.KeyHintProvider = (*CertificatesScreen)(nil)

// New creates a CertificatesScreen.
func New(env *screens.Env) *CertificatesScreen {
	return &CertificatesScreen{env: env}
}

func (s *CertificatesScreen) Init() tea.Cmd {
	return s.load()
}

func (s *CertificatesScreen) load() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		cs, err := env.Store().Certificates(env.Context(), env.User().ID)
		return certsLoadedMsg{Certificates: cs, Err: err}
	}
}

func (s *CertificatesScreen) Title() string {
	return "Certificates"
}

func (s *CertificatesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CertificatesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case certsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.certs = certificate.SortByIssued(msg.Certificates)
		s.selected = min(s.selected, max(0, len(s.certs)-1))
	case screens.StoreChangedMsg:
		return s, s.load()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.certs)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *CertificatesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading certificates...")
	}
	if len(s.certs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No certificates yet. Complete mentor sessions to earn one!")
	}

	cw := layout.ContentWidth(width)
	var b strings.Builder
	for i, c := range s.certs {
		line := fmt.Sprintf("%s  %s", c.IssuedDate, c.Skill)
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(renderCertificate(s.certs[s.selected], cw))

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}

func renderCertificate(c certificate.Certificate, width int) string {
	body := []string{
		theme.Subtitle.Render("Certificate of Achievement"),
		"",
		theme.Title.Render(c.Skill),
		theme.Hint.Render(c.Subject),
		"",
		theme.Body.Render("Awarded to " + c.StudentName),
		theme.Body.Render(fmt.Sprintf("Validated by %s on %s", c.MentorName, c.IssuedDate)),
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(fmt.Sprintf("+%d%% improvement", c.Improvement)),
	}
	if c.MentorFeedback != "" {
		body = append(body, "", lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Width(width-8).Render("“"+c.MentorFeedback+"”"))
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(strings.Join(body, "\n"))
}
