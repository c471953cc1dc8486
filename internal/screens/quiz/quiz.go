package quiz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/attempt"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/results"
	"github.com/abhisek/learnboard/internal/ui/components"
	"github.com/abhisek/learnboard/internal/ui/layout"
	"github.com/abhisek/learnboard/internal/ui/theme"
)

// lowTime is when the clock turns red.
const lowTime = 60

// QuizScreen runs a timed attempt: one question at a time, the countdown
// in the corner and a single submission, automatic when time runs out.
type QuizScreen struct {
	env        *screens.Env
	attempt    *attempt.Attempt
	choice     components.MultiChoice
	submitting bool
	errMsg     string

	// unsaved holds a scored result whose recording failed.
	unsaved *submittedMsg
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for a started attempt.
func New(env *screens.Env, att *attempt.Attempt) *QuizScreen {
	s := &QuizScreen{env: env, attempt: att}
	s.syncChoice()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.tick()
}

func (s *QuizScreen) tick() tea.Cmd {
	att := s.attempt
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg{attempt: att, at: t}
	})
}

func (s *QuizScreen) Title() string {
	return s.attempt.Assessment().Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.submitting {
		return []layout.KeyHint{{Key: "", Description: "Scoring..."}}
	}
	if s.unsaved != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry save"},
			{Key: "Esc", Description: "Leave (not saved)"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Leave (not saved)"},
	}
	if s.attempt.ShowingExplanation() {
		next := "Next"
		if s.attempt.IsLast() {
			next = "Submit"
		}
		hints = append([]layout.KeyHint{{Key: "Enter", Description: next}}, hints...)
	}
	return hints
}

// syncChoice rebuilds the option selector for the current question.
func (s *QuizScreen) syncChoice() {
	q, i := s.attempt.Current()
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectAnswer, s.attempt.Answer(i))
	s.choice.Explanation = q.Explanation
	s.choice.Reveal = s.attempt.ShowingExplanation()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case clockTickMsg:
		if msg.attempt != s.attempt || s.attempt.Submitted() || s.submitting {
			return s, nil
		}
		if s.attempt.Tick() {
			s.env.Logger.Info("attempt time expired", zap.String("assessment_id", s.attempt.Assessment().ID))
			return s, s.submit(true)
		}
		return s, s.tick()

	case components.ChoiceMsg:
		if err := s.attempt.Select(msg.Index); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.syncChoice()
		return s, nil

	case submittedMsg:
		s.submitting = false
		if msg.Err != nil && msg.Save == nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if msg.Err != nil {
			s.unsaved = &msg
			s.errMsg = fmt.Sprintf("Could not save your result: %v. Press Enter to retry.", msg.Err)
			s.env.Logger.Warn("recording result failed",
				zap.String("result_id", msg.Save.Result.ID), zap.Error(msg.Err))
			return s, nil
		}
		s.unsaved = nil
		s.errMsg = ""
		detail := results.NewDetail(s.env, msg.Save.Result)
		detail.TimedOut = msg.Auto
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: detail} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.unsaved != nil && !s.submitting && msg.String() == "enter" {
		s.submitting = true
		return s, s.record(*s.unsaved)
	}
	if s.submitting || s.attempt.Submitted() {
		return s, nil
	}

	switch msg.String() {
	case "right", "l", "n", "tab":
		s.move(s.attempt.Next)
		return s, nil
	case "left", "h", "p", "shift+tab":
		s.move(s.attempt.Prev)
		return s, nil
	case "s":
		return s, s.submit(false)
	case "enter":
		if s.attempt.ShowingExplanation() {
			if s.attempt.IsLast() {
				return s, s.submit(false)
			}
			s.move(s.attempt.Next)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) move(step func() bool) {
	if step() {
		s.errMsg = ""
		s.syncChoice()
	}
}

// submit scores and records the attempt once.
func (s *QuizScreen) submit(auto bool) tea.Cmd {
	if s.submitting {
		return nil
	}
	s.submitting = true
	env, att := s.env, s.attempt
	return func() tea.Msg {
		res, err := att.Submit(env.Engine, env.User().ID)
		if errors.Is(err, attempt.ErrAlreadySubmitted) {
			return nil
		}
		if err != nil {
			return submittedMsg{Err: err, Auto: auto}
		}
		return recordResult(env, submittedMsg{Save: attempt.NewSave(res), Auto: auto})
	}
}

// record resumes saving a scored result after a failed write.
func (s *QuizScreen) record(pending submittedMsg) tea.Cmd {
	env := s.env
	return func() tea.Msg {
		return recordResult(env, pending)
	}
}

func recordResult(env *screens.Env, msg submittedMsg) submittedMsg {
	msg.Err = env.Recorder.Resume(env.Context(), msg.Save)
	return msg
}

func (s *QuizScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	att := s.attempt
	q, i := att.Current()

	clockStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if att.Remaining() <= lowTime {
		clockStyle = clockStyle.Foreground(theme.Error)
	}
	position := theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", i+1, att.Len()))
	concept := theme.Hint.Render(catalog.ConceptName(q.ConceptID))
	clock := clockStyle.Render("⏱ " + attempt.FormatClock(att.Remaining()))

	gap := cw - lipgloss.Width(position) - lipgloss.Width(concept) - lipgloss.Width(clock) - 4
	if gap < 1 {
		gap = 1
	}
	top := position + "  " + concept + strings.Repeat(" ", gap) + clock

	answered := float64(att.Answered()) / float64(att.Len())
	bar := components.NewProgressBar(fmt.Sprintf("%d answered", att.Answered()), answered, false, cw).View()

	sections := []string{top, bar, "", lipgloss.NewStyle().Width(cw).Render(s.choice.View())}
	if s.submitting {
		sections = append(sections, theme.Hint.Render("Scoring your answers..."))
	}
	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}

	return layout.Center(lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n")), width)
}
