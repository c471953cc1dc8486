package schedule

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

type bookingsLoadedMsg struct {
	Bookings []booking.Booking
	Err      error
}

type updatedMsg struct {
	Booking booking.Booking
	Err     error
}

// ScheduleScreen lists the learner's mentor sessions and lets them mark a
// session completed or cancelled and leave feedback.
type ScheduleScreen struct {
	env      *screens.Env
	bookings []booking.Booking
	selected int
	loaded   bool
	editing  bool
	feedback components.TextInput
	errMsg   string
	notice   string
}

var _ screen.Screen = (*ScheduleScreen)(nil)
var _ screen.KeyHintProvider = (*ScheduleScreen)(nil)
var _ screen.BackHandler = (*ScheduleScreen)(nil)

// New creates a ScheduleScreen.
func New(env *screens.Env) *ScheduleScreen {
	fb := components.NewTextInput("Feedback", "how did the session go?", 120)
	fb.Blur()
	return &ScheduleScreen{env: env, feedback: fb}
}

func (s *ScheduleScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ScheduleScreen) load() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		bs, err := env.Store().Bookings(env.Context(), env.User().ID)
		return bookingsLoadedMsg{Bookings: bs, Err: err}
	}
}

func (s *ScheduleScreen) Title() string {
	return "My Sessions"
}

// HandlesBack closes the feedback editor instead of leaving the screen.
func (s *ScheduleScreen) HandlesBack() bool {
	return s.editing
}

func (s *ScheduleScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "C", Description: "Completed"},
		{Key: "X", Description: "Cancel session"},
		{Key: "F", Description: "Feedback"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ScheduleScreen) current() (booking.Booking, bool) {
	if s.selected < 0 || s.selected >= len(s.bookings) {
		return booking.Booking{}, false
	}
	return s.bookings[s.selected], true
}

func (s *ScheduleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bookingsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.bookings = msg.Bookings
		s.selected = min(s.selected, max(0, len(s.bookings)-1))
		return s, nil

	case screens.StoreChangedMsg:
		return s, s.load()

	case updatedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.notice = fmt.Sprintf("Session on %s is %s.", msg.Booking.Date, msg.Booking.Status)
		return s, nil

	case tea.KeyMsg:
		if s.editing {
			return s.handleEditKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ScheduleScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.bookings)-1 {
			s.selected++
		}
	case "c":
		st := booking.StatusCompleted
		return s, s.apply(booking.Update{Status: &st})
	case "x":
		st := booking.StatusCancelled
		return s, s.apply(booking.Update{Status: &st})
	case "f":
		if b, ok := s.current(); ok {
			s.editing = true
			s.feedback.SetValue(b.Feedback)
			return s, s.feedback.Focus()
		}
	}
	return s, nil
}

func (s *ScheduleScreen) handleEditKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		s.feedback.Blur()
		return s, nil
	case "enter":
		s.editing = false
		s.feedback.Blur()
		text := strings.TrimSpace(s.feedback.Value())
		return s, s.apply(booking.Update{Feedback: &text})
	}
	var cmd tea.Cmd
	s.feedback, cmd = s.feedback.Update(msg)
	return s, cmd
}

func (s *ScheduleScreen) apply(u booking.Update) tea.Cmd {
	b, ok := s.current()
	if !ok {
		return nil
	}
	s.notice = ""
	env := s.env
	return func() tea.Msg {
		updated, err := env.Store().UpdateBooking(env.Context(), b.ID, u)
		if err != nil {
			env.Logger.Warn("update booking failed", zap.String("booking_id", b.ID), zap.Error(err))
		}
		return updatedMsg{Booking: updated, Err: err}
	}
}

func (s *ScheduleScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sessions...")
	}
	if len(s.bookings) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions booked yet. Find a mentor to get started!")
	}

	cw := layout.ContentWidth(width)
	var b strings.Builder
	for i, bk := range s.bookings {
		mentor := bk.MentorID
		if m, err := catalog.GetMentor(bk.MentorID); err == nil {
			mentor = m.Name
		}
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %-8s %s", prefix, bk.Date, bk.Time, mentor)) +
			"  " + statusStyle(bk.Status).Render(string(bk.Status)) + "\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("    %s · %s", bk.Subject, bk.Concept)) + "\n")
		if bk.Feedback != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-4).PaddingLeft(4).Render("“"+bk.Feedback+"”") + "\n")
		}
		b.WriteString("\n")
	}

	if s.editing {
		b.WriteString(s.feedback.View() + "\n")
	}
	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(s.errMsg) + "\n")
	} else if s.notice != "" {
		b.WriteString(theme.Correct.Render(s.notice) + "\n")
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}

func statusStyle(st booking.Status) lipgloss.Style {
	switch st {
	case booking.StatusUpcoming:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	case booking.StatusCompleted:
		return lipgloss.NewStyle().Foreground(theme.Success)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}
