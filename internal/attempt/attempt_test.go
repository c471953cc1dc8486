package attempt

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/scoring"
)

func testEngine() *scoring.Engine {
	return scoring.NewEngine(
		scoring.WithClock(func() time.Time { return time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC) }),
		scoring.WithIDSource(func() string { return "r-test" }),
	)
}

func mathAttempt(t *testing.T) *Attempt {
	t.Helper()
	a, err := catalog.GetAssessment("a1")
	require.NoError(t, err)
	qs, err := catalog.QuestionsFor("a1")
	require.NoError(t, err)
	at, err := New(a, qs)
	require.NoError(t, err)
	return at
}

func shortQuiz(t *testing.T, durationMins int) *Attempt {
	t.Helper()
	qs := []catalog.Question{
		{ID: "q1", ConceptID: "c1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
		{ID: "q2", ConceptID: "c2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
	}
	at, err := New(catalog.Assessment{ID: "quiz", DurationMins: durationMins}, qs)
	require.NoError(t, err)
	return at
}

func TestNew_InitialState(t *testing.T) {
	at := mathAttempt(t)
	assert.Equal(t, 20*60, at.Remaining())
	assert.Equal(t, 0, at.Answered())
	for _, ans := range at.Answers() {
		assert.Equal(t, scoring.Unanswered, ans)
	}
	q, i := at.Current()
	assert.Equal(t, 0, i)
	assert.Equal(t, "q1", q.ID)
	assert.False(t, at.ShowingExplanation())
	assert.False(t, at.Submitted())
}

func TestNew_DefaultDuration(t *testing.T) {
	at := shortQuiz(t, 0)
	assert.Equal(t, DefaultDurationMins, at.DurationMins())
	assert.Equal(t, DefaultDurationMins*60, at.Remaining())
}

func TestNew_NoQuestions(t *testing.T) {
	_, err := New(catalog.Assessment{ID: "empty"}, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestSelectAndNavigate(t *testing.T) {
	at := mathAttempt(t)

	require.NoError(t, at.Select(1))
	assert.True(t, at.ShowingExplanation())
	assert.Equal(t, 1, at.Answered())

	assert.True(t, at.Next())
	assert.False(t, at.ShowingExplanation())
	_, i := at.Current()
	assert.Equal(t, 1, i)

	assert.True(t, at.Prev())
	assert.False(t, at.Prev())
	assert.Equal(t, 1, at.Answer(0))

	// Answers can be changed before submission.
	require.NoError(t, at.Select(3))
	assert.Equal(t, 3, at.Answer(0))
	assert.Equal(t, 1, at.Answered())

	err := at.Select(4)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	err = at.Select(-1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	for at.Next() {
	}
	assert.True(t, at.IsLast())
}

func TestSubmit_MathFoundations(t *testing.T) {
	at := mathAttempt(t)
	require.NoError(t, at.SetAnswers([]int{1, 0, 2, 0, scoring.Unanswered}))

	res, err := at.Submit(testEngine(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a1", res.AssessmentID)
	assert.Equal(t, "u1", res.UserID)
	assert.Equal(t, 0, res.TimeTakenMins)
	require.NotEmpty(t, res.ConceptScores)
	assert.Equal(t, "c1", res.ConceptScores[0].ConceptID)

	got, ok := at.Result()
	assert.True(t, ok)
	assert.Equal(t, res, got)
}

func TestSubmit_OnlyOnce(t *testing.T) {
	at := shortQuiz(t, 1)
	_, err := at.Submit(testEngine(), "u1")
	require.NoError(t, err)

	_, err = at.Submit(testEngine(), "u1")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.ErrorIs(t, at.Select(0), ErrAlreadySubmitted)
	assert.ErrorIs(t, at.SetAnswers([]int{0, 0}), ErrAlreadySubmitted)
	assert.False(t, at.Tick(), "ticks after submission are ignored")
}

func TestSubmit_ConcurrentCallsScoreOnce(t *testing.T) {
	at := shortQuiz(t, 1)
	e := testEngine()

	var ok atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := at.Submit(e, "u1"); err == nil {
				ok.Add(1)
			} else if !errors.Is(err, ErrAlreadySubmitted) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), ok.Load())
}

func TestSetAnswers_LengthMismatch(t *testing.T) {
	at := shortQuiz(t, 1)
	assert.ErrorIs(t, at.SetAnswers([]int{0}), apperr.ErrInvalidInput)
}

func TestTick_ExpiresOnce(t *testing.T) {
	at := shortQuiz(t, 1)
	expiries := 0
	for i := 0; i < 75; i++ {
		if at.Tick() {
			expiries++
		}
	}
	assert.Equal(t, 1, expiries)
	assert.Equal(t, 0, at.Remaining())
	assert.True(t, at.Expired())

	res, err := at.Submit(testEngine(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TimeTakenMins)
}

func TestExpired_AnswersFrozen(t *testing.T) {
	at := shortQuiz(t, 1)
	require.NoError(t, at.Select(1))
	for i := 0; i < 60; i++ {
		at.Tick()
	}
	require.True(t, at.Expired())

	assert.ErrorIs(t, at.Select(0), ErrExpired)
	assert.ErrorIs(t, at.SetAnswers([]int{1, 0}), ErrExpired)
	assert.Equal(t, 1, at.Answer(0))
	assert.Equal(t, scoring.Unanswered, at.Answer(1))

	res, err := at.Submit(testEngine(), "u1")
	require.NoError(t, err)
	// q1 right, q2 left unanswered at expiry.
	assert.Equal(t, 50, res.Score)
	assert.ErrorIs(t, at.Select(0), ErrAlreadySubmitted)
}

func TestTick_TimeTaken(t *testing.T) {
	at := shortQuiz(t, 20)
	for i := 0; i < 5*60+29; i++ {
		at.Tick()
	}
	res, err := at.Submit(testEngine(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, res.TimeTakenMins)
}

func TestCountdown_ExpiryCallsBackOnce(t *testing.T) {
	at := shortQuiz(t, 1)
	at.remaining = 3

	var expired atomic.Int32
	var ticks []int
	cd := &Countdown{
		Attempt:  at,
		Interval: time.Millisecond,
		OnTick:   func(r int) { ticks = append(ticks, r) },
		OnExpire: func() {
			expired.Add(1)
			_, err := at.Submit(testEngine(), "u1")
			assert.NoError(t, err)
		},
	}
	require.NoError(t, cd.Run(context.Background()))
	assert.Equal(t, int32(1), expired.Load())
	assert.Equal(t, []int{2, 1}, ticks)
	assert.True(t, at.Submitted())
}

func TestCountdown_CancelDoesNotSubmit(t *testing.T) {
	at := shortQuiz(t, 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- (&Countdown{Attempt: at, Interval: time.Millisecond, OnExpire: func() {
			t.Error("expiry must not fire on cancel")
		}}).Run(ctx)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, at.Submitted())
}

func TestCountdown_StopsAfterManualSubmit(t *testing.T) {
	at := shortQuiz(t, 20)
	_, err := at.Submit(testEngine(), "u1")
	require.NoError(t, err)

	cd := &Countdown{Attempt: at, Interval: time.Millisecond}
	assert.NoError(t, cd.Run(context.Background()))
	assert.Equal(t, 20*60, at.Remaining())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "20:00", FormatClock(1200))
	assert.Equal(t, "0:09", FormatClock(9))
	assert.Equal(t, "1:05", FormatClock(65))
	assert.Equal(t, "0:00", FormatClock(-3))
}

type memSink struct {
	results []scoring.Result
	records []progress.Record
	failOn  string
}

func (m *memSink) AppendResult(_ context.Context, r scoring.Result) error {
	if m.failOn == "result" {
		return errors.New("disk full")
	}
	m.results = append(m.results, r)
	return nil
}

func (m *memSink) AppendProgress(_ context.Context, rec progress.Record) error {
	if m.failOn == "progress" {
		return errors.New("disk full")
	}
	m.records = append(m.records, rec)
	return nil
}

func TestRecorder_Record(t *testing.T) {
	sink := &memSink{}
	res := scoring.Result{ID: "r1", Date: "2026-02-01", ConceptScores: []scoring.ConceptScore{
		{ConceptID: "c1", Score: 100},
		{ConceptID: "c2", Score: 0},
		{ConceptID: "c3", Score: 100},
	}}
	require.NoError(t, NewRecorder(sink, nil).Record(context.Background(), res))
	require.Len(t, sink.results, 1)
	assert.Equal(t, "r1", sink.results[0].ID)
	require.Len(t, sink.records, 3)
	assert.Equal(t, progress.Record{ConceptID: "c2", Date: "2026-02-01", Score: 0}, sink.records[1])
}

func TestRecorder_PropagatesErrors(t *testing.T) {
	res := scoring.Result{ID: "r1", ConceptScores: []scoring.ConceptScore{{ConceptID: "c1"}}}
	for _, failOn := range []string{"result", "progress"} {
		err := NewRecorder(&memSink{failOn: failOn}, nil).Record(context.Background(), res)
		assert.Error(t, err, failOn)
	}
}

func TestRecorder_ResumeWritesEachRowOnce(t *testing.T) {
	sink := &memSink{failOn: "progress"}
	rec := NewRecorder(sink, nil)
	save := NewSave(scoring.Result{ID: "r1", Date: "2026-02-01", ConceptScores: []scoring.ConceptScore{
		{ConceptID: "c1", Score: 50},
		{ConceptID: "c2", Score: 100},
	}})

	require.Error(t, rec.Resume(context.Background(), save))
	assert.False(t, save.Done())
	require.Len(t, sink.results, 1)

	sink.failOn = ""
	require.NoError(t, rec.Resume(context.Background(), save))
	assert.True(t, save.Done())
	assert.Len(t, sink.results, 1)
	assert.Len(t, sink.records, 2)

	// Nothing left to write.
	require.NoError(t, rec.Resume(context.Background(), save))
	assert.Len(t, sink.results, 1)
	assert.Len(t, sink.records, 2)
}
