package scoring

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/catalog"
)

// Unanswered marks a question the learner never answered. It never matches
// a correct answer.
const Unanswered = -1

// DateLayout is the calendar date format used on results and bookings.
const DateLayout = "2006-01-02"

// ConceptScore is the score for one concept within one attempt.
type ConceptScore struct {
	ConceptID string `json:"conceptId"`
	Score     int    `json:"score"`
	Status    Status `json:"status"`
}

// Result is the scored outcome of one completed assessment attempt.
// Results are append-only; nothing mutates one after Score returns it.
type Result struct {
	ID            string         `json:"id"`
	AssessmentID  string         `json:"assessmentId"`
	UserID        string         `json:"userId"`
	Date          string         `json:"date"`
	Score         int            `json:"score"`
	ConceptScores []ConceptScore `json:"conceptScores"`
	TimeTakenMins int            `json:"timeTaken"`
}

// ByStatus returns the concept scores with the given status, in order.
func (r Result) ByStatus(s Status) []ConceptScore {
	var out []ConceptScore
	for _, cs := range r.ConceptScores {
		if cs.Status == s {
			out = append(out, cs)
		}
	}
	return out
}

// Submission is everything the engine needs to score an attempt.
// Answers is parallel to Questions; entries are option indices or Unanswered.
type Submission struct {
	AssessmentID     string
	UserID           string
	Questions        []catalog.Question
	Answers          []int
	DurationMins     int
	SecondsRemaining int
}

// Engine scores submissions. The zero value is not usable; use NewEngine.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to date results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDSource overrides result ID generation.
func WithIDSource(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine using the wall clock and random UUIDs.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score aggregates per-question correctness into per-concept and overall
// scores and packages them as a Result. It has no side effects.
func (e *Engine) Score(sub Submission) (Result, error) {
	conceptScores, err := ScoreConcepts(sub.Questions, sub.Answers)
	if err != nil {
		return Result{}, err
	}

	return Result{
		ID:            e.newID(),
		AssessmentID:  sub.AssessmentID,
		UserID:        sub.UserID,
		Date:          e.now().Format(DateLayout),
		Score:         Overall(conceptScores),
		ConceptScores: conceptScores,
		TimeTakenMins: ElapsedMinutes(sub.DurationMins, sub.SecondsRemaining),
	}, nil
}

// conceptTally counts answers for one concept.
type conceptTally struct {
	conceptID string
	correct   int
	total     int
}

// ScoreConcepts groups questions by concept in first-seen order and scores
// each group as the rounded percentage of correct answers.
func ScoreConcepts(questions []catalog.Question, answers []int) ([]ConceptScore, error) {
	if len(answers) != len(questions) {
		return nil, apperr.InvalidInput("score", "got %d answers for %d questions", len(answers), len(questions))
	}
	if len(questions) == 0 {
		return nil, apperr.InvalidInput("score", "no questions, concept set is empty")
	}

	var tallies []*conceptTally
	byConcept := make(map[string]*conceptTally)
	for i, q := range questions {
		if q.ConceptID == "" {
			return nil, apperr.InvalidInput("score", "question %q has no concept", q.ID)
		}
		t, ok := byConcept[q.ConceptID]
		if !ok {
			t = &conceptTally{conceptID: q.ConceptID}
			byConcept[q.ConceptID] = t
			tallies = append(tallies, t)
		}
		t.total++
		if answers[i] != Unanswered && q.IsCorrect(answers[i]) {
			t.correct++
		}
	}

	scores := make([]ConceptScore, 0, len(tallies))
	for _, t := range tallies {
		score := round(float64(t.correct) / float64(t.total) * 100)
		scores = append(scores, ConceptScore{
			ConceptID: t.conceptID,
			Score:     score,
			Status:    Classify(score),
		})
	}
	return scores, nil
}

// Overall returns the rounded unweighted mean of the concept scores. A
// concept with one question weighs the same as a concept with ten.
// Returns 0 for an empty slice; ScoreConcepts never produces one.
func Overall(scores []ConceptScore) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, cs := range scores {
		sum += cs.Score
	}
	return round(float64(sum) / float64(len(scores)))
}

// ElapsedMinutes converts the timer's remaining seconds into whole minutes
// spent. secondsRemaining is clamped to [0, durationMins*60].
func ElapsedMinutes(durationMins, secondsRemaining int) int {
	total := durationMins * 60
	if total < 0 {
		total = 0
	}
	if secondsRemaining < 0 {
		secondsRemaining = 0
	}
	if secondsRemaining > total {
		secondsRemaining = total
	}
	return round(float64(total-secondsRemaining) / 60)
}

// round rounds half up, so 66.5 becomes 67. Inputs are never negative.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
