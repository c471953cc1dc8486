// Package attempt holds the runtime state of one timed assessment attempt:
// the chosen answers, the countdown and the single submission.
package attempt

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/scoring"
)

// DefaultDurationMins applies when an assessment declares no duration.
const DefaultDurationMins = 20

// ErrAlreadySubmitted is returned when an attempt is submitted or changed
// after its one submission.
var ErrAlreadySubmitted = errors.New("attempt already submitted")

// ErrExpired is returned when answers change after the countdown ran out.
// The attempt can still be submitted with the answers it had at expiry.
var ErrExpired = errors.New("attempt time expired")

// Attempt tracks a learner working through an assessment. It is safe for
// use by the input loop and a countdown goroutine at the same time.
type Attempt struct {
	mu sync.Mutex

	assessment   catalog.Assessment
	questions    []catalog.Question
	answers      []int
	index        int
	durationMins int
	remaining    int

	showingExplanation bool
	expired            bool
	result             *scoring.Result
}

// New starts an attempt over questions with every answer unset and the full
// duration on the clock.
func New(a catalog.Assessment, questions []catalog.Question) (*Attempt, error) {
	if len(questions) == 0 {
		return nil, apperr.InvalidInput("start attempt", "assessment %q has no questions", a.ID)
	}
	duration := a.DurationMins
	if duration <= 0 {
		duration = DefaultDurationMins
	}
	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = scoring.Unanswered
	}
	return &Attempt{
		assessment:   a,
		questions:    slices.Clone(questions),
		answers:      answers,
		durationMins: duration,
		remaining:    duration * 60,
	}, nil
}

// Assessment returns the assessment being attempted.
func (a *Attempt) Assessment() catalog.Assessment { return a.assessment }

// Len returns the number of questions.
func (a *Attempt) Len() int { return len(a.questions) }

// DurationMins returns the time allowed, in minutes.
func (a *Attempt) DurationMins() int { return a.durationMins }

// Current returns the question on screen and its index.
func (a *Attempt) Current() (catalog.Question, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.questions[a.index], a.index
}

// Question returns the question at i.
func (a *Attempt) Question(i int) catalog.Question {
	return a.questions[i]
}

// Select records option as the answer to the current question and reveals
// its explanation. Answers may be changed until submission.
func (a *Attempt) Select(option int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil {
		return ErrAlreadySubmitted
	}
	if a.expired {
		return ErrExpired
	}
	q := a.questions[a.index]
	if option < 0 || option >= len(q.Options) {
		return apperr.InvalidInput("select answer", "option %d out of range for question %q", option, q.ID)
	}
	a.answers[a.index] = option
	a.showingExplanation = true
	return nil
}

// SetAnswers replaces all answers at once, for scripted submissions.
func (a *Attempt) SetAnswers(answers []int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil {
		return ErrAlreadySubmitted
	}
	if a.expired {
		return ErrExpired
	}
	if len(answers) != len(a.questions) {
		return apperr.InvalidInput("set answers", "got %d answers for %d questions", len(answers), len(a.questions))
	}
	copy(a.answers, answers)
	return nil
}

// Next moves to the following question. It reports false on the last one.
func (a *Attempt) Next() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.index >= len(a.questions)-1 {
		return false
	}
	a.index++
	a.showingExplanation = false
	return true
}

// Prev moves to the preceding question. It reports false on the first one.
func (a *Attempt) Prev() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.index == 0 {
		return false
	}
	a.index--
	a.showingExplanation = false
	return true
}

// IsLast reports whether the current question is the final one.
func (a *Attempt) IsLast() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index == len(a.questions)-1
}

// Answer returns the answer recorded for question i.
func (a *Attempt) Answer(i int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.answers[i]
}

// Answers returns a copy of all recorded answers.
func (a *Attempt) Answers() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.answers)
}

// Answered returns how many questions have an answer.
func (a *Attempt) Answered() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, ans := range a.answers {
		if ans != scoring.Unanswered {
			n++
		}
	}
	return n
}

// ShowingExplanation reports whether the current question's explanation is
// revealed.
func (a *Attempt) ShowingExplanation() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.showingExplanation
}

// Remaining returns the seconds left on the clock.
func (a *Attempt) Remaining() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remaining
}

// Expired reports whether the clock has run out.
func (a *Attempt) Expired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expired
}

// Tick takes one second off the clock. It returns true exactly once, on the
// tick that reaches zero. Ticks after submission are ignored.
func (a *Attempt) Tick() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil || a.expired {
		return false
	}
	if a.remaining > 0 {
		a.remaining--
	}
	if a.remaining == 0 {
		a.expired = true
		return true
	}
	return false
}

// Submit scores the answers recorded so far. Only the first call scores;
// later calls return ErrAlreadySubmitted.
func (a *Attempt) Submit(e *scoring.Engine, userID string) (scoring.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil {
		return scoring.Result{}, ErrAlreadySubmitted
	}
	res, err := e.Score(scoring.Submission{
		AssessmentID:     a.assessment.ID,
		UserID:           userID,
		Questions:        a.questions,
		Answers:          slices.Clone(a.answers),
		DurationMins:     a.durationMins,
		SecondsRemaining: a.remaining,
	})
	if err != nil {
		return scoring.Result{}, fmt.Errorf("submit attempt: %w", err)
	}
	a.result = &res
	return res, nil
}

// Submitted reports whether the attempt has been scored.
func (a *Attempt) Submitted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result != nil
}

// Result returns the scored result, if any.
func (a *Attempt) Result() (scoring.Result, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result == nil {
		return scoring.Result{}, false
	}
	return *a.result, true
}

// FormatClock renders seconds as M:SS.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
