package mentors

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

type step int

const (
	stepDay step = iota
	stepSlot
	stepConcept
	stepDone
)

type daySelectedMsg struct{ Day string }

type slotSelectedMsg struct{ Slot string }

type bookedMsg struct {
	Booking booking.Booking
	Err     error
}

// BookingScreen walks through picking a day, a slot and a topic, then
// confirms the session.
type BookingScreen struct {
	env     *screens.Env
	mentor  catalog.Mentor
	step    step
	days    components.Menu
	slots   components.Menu
	concept components.TextInput
	day     string
	slot    string
	pending bool
	booked  booking.Booking
	errMsg  string
}

var _ screen.Screen = (*BookingScreen)(nil)
var _ screen.KeyHintProvider = (*BookingScreen)(nil)
var _ screen.BackHandler = (*BookingScreen)(nil)

// NewBooking creates a BookingScreen for m. concept pre-fills the topic;
// when empty the mentor's primary expertise is used.
func NewBooking(env *screens.Env, m catalog.Mentor, concept string) *BookingScreen {
	if concept == "" {
		concept = m.PrimaryExpertise()
	}
	input := components.NewTextInput("Topic", "what you want to work on", 40)
	input.SetValue(concept)

	var items []components.MenuItem
	for _, av := range m.Availability {
		day := av.Day
		items = append(items, components.MenuItem{
			Label:    day,
			Detail:   fmt.Sprintf("%d slots", len(av.Slots)),
			Disabled: len(av.Slots) == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg { return daySelectedMsg{Day: day} }
			},
		})
	}

	return &BookingScreen{
		env:     env,
		mentor:  m,
		days:    components.NewMenu(items),
		concept: input,
	}
}

func (s *BookingScreen) Init() tea.Cmd {
	return nil
}

func (s *BookingScreen) Title() string {
	return "Book " + s.mentor.Name
}

// HandlesBack keeps Esc inside the flow once a day has been picked.
func (s *BookingScreen) HandlesBack() bool {
	return s.step == stepSlot || s.step == stepConcept
}

func (s *BookingScreen) KeyHints() []layout.KeyHint {
	switch s.step {
	case stepConcept:
		return []layout.KeyHint{{Key: "Enter", Description: "Confirm"}, {Key: "Esc", Description: "Change slot"}}
	case stepSlot:
		return []layout.KeyHint{{Key: "Enter", Description: "Pick slot"}, {Key: "Esc", Description: "Change day"}}
	case stepDone:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Pick day"}, {Key: "Esc", Description: "Back"}}
}

func (s *BookingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case daySelectedMsg:
		s.day = msg.Day
		s.slots = s.slotMenu(msg.Day)
		s.step = stepSlot
		return s, nil

	case slotSelectedMsg:
		s.slot = msg.Slot
		s.step = stepConcept
		return s, s.concept.Focus()

	case bookedMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.booked = msg.Booking
		s.step = stepDone
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.back()
			return s, nil
		}
	}

	var cmd tea.Cmd
	switch s.step {
	case stepDay:
		s.days, cmd = s.days.Update(msg)
	case stepSlot:
		s.slots, cmd = s.slots.Update(msg)
	case stepConcept:
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			return s, s.confirm()
		}
		s.concept, cmd = s.concept.Update(msg)
	case stepDone:
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, cmd
}

func (s *BookingScreen) back() {
	s.errMsg = ""
	switch s.step {
	case stepSlot:
		s.step = stepDay
	case stepConcept:
		s.step = stepSlot
	}
}

func (s *BookingScreen) slotMenu(day string) components.Menu {
	slots, _ := s.mentor.SlotsOn(day)
	items := make([]components.MenuItem, 0, len(slots))
	for _, slot := range slots {
		slot := slot
		items = append(items, components.MenuItem{
			Label: slot,
			Action: func() tea.Cmd {
				return func() tea.Msg { return slotSelectedMsg{Slot: slot} }
			},
		})
	}
	return components.NewMenu(items)
}

func (s *BookingScreen) confirm() tea.Cmd {
	if s.pending {
		return nil
	}
	s.pending = true
	env := s.env
	req := booking.Request{
		StudentID: env.User().ID,
		Mentor:    s.mentor,
		Day:       s.day,
		Slot:      s.slot,
		Concept:   strings.TrimSpace(s.concept.Value()),
	}
	today := env.Today()
	return func() tea.Msg {
		b, err := booking.Confirm(req, today)
		if err != nil {
			return bookedMsg{Err: err}
		}
		if err := env.Store().AppendBooking(env.Context(), b); err != nil {
			return bookedMsg{Err: err}
		}
		env.Logger.Info("session booked",
			zap.String("booking_id", b.ID),
			zap.String("mentor_id", b.MentorID),
			zap.String("date", b.Date),
		)
		return bookedMsg{Booking: b}
	}
}

func (s *BookingScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	var b strings.Builder

	m := s.mentor
	b.WriteString(theme.Title.Render(m.Name) + theme.Hint.Render(fmt.Sprintf("  ★ %.1f", m.Rating)) + "\n")
	b.WriteString(theme.Subtitle.Render(strings.Join(m.Expertise, ", ")) + "\n\n")

	switch s.step {
	case stepDay:
		b.WriteString(theme.Section.Render("Pick a day") + "\n")
		b.WriteString(s.days.View())
	case stepSlot:
		b.WriteString(theme.Section.Render("Pick a time on "+s.day) + "\n")
		b.WriteString(s.slots.View())
	case stepConcept:
		b.WriteString(theme.Section.Render(fmt.Sprintf("%s at %s", s.day, s.slot)) + "\n\n")
		b.WriteString(s.concept.View() + "\n")
		if s.pending {
			b.WriteString("\n" + theme.Hint.Render("Booking..."))
		}
	case stepDone:
		b.WriteString(theme.Correct.Render("✓ Session booked") + "\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("%s, %s at %s", s.day, s.booked.Date, s.booked.Time)) + "\n")
		b.WriteString(theme.Hint.Render("Topic: "+s.booked.Concept) + "\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg) + "\n")
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(b.String()), width)
}
