package results

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/mentors"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/store"
)

func newTestEnv(t *testing.T) *screens.Env {
	t.Helper()
	sess := store.NewSession(store.NewMemory())
	_, err := sess.Login(context.Background(), "alex@example.com")
	require.NoError(t, err)
	return screens.NewEnv(sess, nil)
}

func firstResult(t *testing.T, env *screens.Env) scoring.Result {
	t.Helper()
	rs, err := env.Store().Results(context.Background(), "u1")
	require.NoError(t, err)
	require.NotEmpty(t, rs)
	return rs[0]
}

func TestDetailRecommendsMentorsForWeakConcepts(t *testing.T) {
	env := newTestEnv(t)
	d := NewDetail(env, firstResult(t, env))

	require.NotEmpty(t, d.mentors)
	assert.Equal(t, "m1", d.mentors[0].ID)
	assert.Equal(t, "Fractions", d.focusConcept())

	view := d.View(120, 40)
	assert.Contains(t, view, "Math Foundations")
	assert.Contains(t, view, "65%")
	assert.Contains(t, view, "Dr. Sarah Chen")
	assert.False(t, strings.Contains(view, "Time ran out"))
}

func TestDetailEnterBooksMentor(t *testing.T) {
	env := newTestEnv(t)
	d := NewDetail(env, firstResult(t, env))

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*mentors.BookingScreen)
	assert.True(t, ok)
}

func TestDetailTimedOutBanner(t *testing.T) {
	env := newTestEnv(t)
	d := NewDetail(env, firstResult(t, env))
	d.TimedOut = true
	assert.Contains(t, d.View(120, 40), "Time ran out")
}

func TestDetailAllStrong(t *testing.T) {
	env := newTestEnv(t)
	r := scoring.Result{AssessmentID: "a1", Score: 100, ConceptScores: []scoring.ConceptScore{
		{ConceptID: "c1", Score: 100, Status: scoring.StatusStrong},
	}}
	d := NewDetail(env, r)
	assert.Empty(t, d.mentors)
	assert.Contains(t, d.View(120, 40), "No weak concepts")

	_, cmd := d.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	l := NewList(env)
	l.Update(l.Init()())

	require.Len(t, l.results, 2)
	assert.Equal(t, "r2", l.results[0].ID)
	assert.Equal(t, "r1", l.results[1].ID)
}
