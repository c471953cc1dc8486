package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

// NoticeScreen shows a single message, typically an error that stopped a
// flow from starting. Enter returns to the previous screen.
type NoticeScreen struct {
	title   string
	message string
	back    components.Button
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a NoticeScreen.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{
		title:   title,
		message: message,
		back: components.NewButton("Back", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
}

// FromError creates a NoticeScreen describing err.
func FromError(title string, err error) *NoticeScreen {
	return New(title, "Something went wrong:\n\n"+err.Error())
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	n.back, cmd = n.back.Update(msg)
	return n, cmd
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
}

func (n *NoticeScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(n.message) + "\n\n" + n.back.View()
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (n *NoticeScreen) Title() string {
	return n.title
}
