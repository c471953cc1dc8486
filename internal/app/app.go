package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/dashboard"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/home"
	"github.com/abhisek/learnboard/internal/screens/signin"
	"github.com/abhisek/learnboard/internal/store"
	"github.com/abhisek/learnboard/internal/ui/layout"
)

// storeEventMsg carries a store change into the program.
type storeEventMsg struct {
	Event store.Event
}

// headerLoadedMsg refreshes the learner summary in the header.
type headerLoadedMsg struct {
	Status layout.HeaderStatus
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screens.Env
	router *router.Router
	header layout.HeaderStatus
	width  int
	height int
}

// newAppModel starts on the dashboard when someone is signed in and on the
// sign-in screen otherwise.
func newAppModel(env *screens.Env, email string) AppModel {
	var homeFactory, signInFactory func() screen.Screen
	homeFactory = func() screen.Screen { return home.New(env, signInFactory) }
	signInFactory = func() screen.Screen { return signin.New(env, email, homeFactory) }

	initial := signInFactory()
	if _, ok := env.Session.User(); ok {
		initial = homeFactory()
	}
	return AppModel{
		env:    env,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.loadHeader())
}

func (m AppModel) loadHeader() tea.Cmd {
	env := m.env
	return func() tea.Msg {
		u, ok := env.Session.User()
		if !ok {
			return headerLoadedMsg{}
		}
		o, err := dashboard.Build(env.Context(), env.Store(), u)
		if err != nil {
			env.Logger.Warn("header refresh failed", zap.Error(err))
			return headerLoadedMsg{Status: layout.HeaderStatus{Student: u.FirstName()}}
		}
		return headerLoadedMsg{Status: layout.HeaderStatus{
			Student:  u.FirstName(),
			AvgScore: progress.Summarize(o.Results, nil, nil).AverageScore,
			Upcoming: len(o.Upcoming),
		}}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerLoadedMsg:
		m.header = msg.Status
		return m, nil

	case storeEventMsg:
		m.env.Logger.Debug("store changed", zap.String("kind", string(msg.Event.Kind)), zap.String("id", msg.Event.ID))
		return m, tea.Batch(
			m.router.Broadcast(screens.StoreChangedMsg{Event: msg.Event}),
			m.loadHeader(),
		)

	case router.ReplaceScreenMsg:
		// Sign-in and sign-out swap the root screen; the header follows.
		return m, tea.Batch(m.router.Update(msg), m.loadHeader())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.header, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Options configures the TUI.
type Options struct {
	Env *screens.Env

	// Email pre-fills the sign-in prompt.
	Email string
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled. Store changes are forwarded into the program for its lifetime.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts.Env, opts.Email), tea.WithContext(ctx))

	unsubscribe := opts.Env.Store().Subscribe(func(e store.Event) {
		p.Send(storeEventMsg{Event: e})
	})
	defer unsubscribe()

	_, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
