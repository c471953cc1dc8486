package signin

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/store"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	revealAfter  = 500 * time.Millisecond
)

type tickMsg time.Time

type loginDoneMsg struct {
	User store.User
	Err  error
}

// SignInScreen shows the banner and an email prompt. Any non-empty email
// signs in the demo student.
type SignInScreen struct {
	env         *screens.Env
	homeFactory func() screen.Screen
	input       components.TextInput
	elapsed     time.Duration
	pending     bool
	errMsg      string
	done        bool
}

var _ screen.Screen = (*SignInScreen)(nil)
var _ screen.KeyHintProvider = (*SignInScreen)(nil)

// New creates a SignInScreen prefilled with email. After a successful
// sign-in it is replaced by the screen homeFactory builds.
func New(env *screens.Env, email string, homeFactory func() screen.Screen) *SignInScreen {
	input := components.NewTextInput("Email", "you@example.com", 48)
	input.SetValue(email)
	return &SignInScreen{
		env:         env,
		homeFactory: homeFactory,
		input:       input,
	}
}

func (s *SignInScreen) Title() string {
	return "Sign in"
}

func (s *SignInScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SignInScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *SignInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.elapsed >= revealAfter {
			return s, nil
		}
		s.elapsed += tickInterval
		return s, tick()

	case loginDoneMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.transition()

	case tea.KeyMsg:
		s.elapsed = revealAfter
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SignInScreen) submit() tea.Cmd {
	if s.pending || s.done {
		return nil
	}
	email := strings.TrimSpace(s.input.Value())
	if email == "" {
		s.errMsg = "Enter an email address to continue."
		return nil
	}
	s.pending = true
	s.errMsg = ""
	env := s.env
	return func() tea.Msg {
		u, err := env.Session.Login(env.Context(), email)
		if err != nil {
			env.Logger.Warn("sign in failed", zap.Error(err))
		} else {
			env.Logger.Info("signed in", zap.String("user_id", u.ID))
		}
		return loginDoneMsg{User: u, Err: err}
	}
}

func (s *SignInScreen) transition() tea.Cmd {
	if s.done {
		return nil
	}
	s.done = true
	home := s.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (s *SignInScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	if s.elapsed >= revealAfter {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Diagnose, practise and track your learning."),
			"",
			s.input.View(),
		)
		switch {
		case s.pending:
			sections = append(sections, "", theme.Hint.Render("Signing in..."))
		case s.errMsg != "":
			sections = append(sections, "", theme.ErrorText.Render(s.errMsg))
		default:
			sections = append(sections, "", theme.Hint.Render("Demo mode: any email signs you in."))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
