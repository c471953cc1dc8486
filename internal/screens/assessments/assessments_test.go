package assessments

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/notice"
	"github.com/abhisek/learnboard/internal/screens/quiz"
	"github.com/abhisek/learnboard/internal/screens/results"
	"github.com/abhisek/learnboard/internal/store"
)

func newTestEnv(t *testing.T) *screens.Env {
	t.Helper()
	sess := store.NewSession(store.NewMemory())
	_, err := sess.Login(context.Background(), "alex@example.com")
	require.NoError(t, err)
	return screens.NewEnv(sess, nil)
}

func TestStartOpensQuiz(t *testing.T) {
	env := newTestEnv(t)
	a, err := catalog.GetAssessment("a1")
	require.NoError(t, err)

	_, ok := Start(env, a).(*quiz.QuizScreen)
	assert.True(t, ok)
}

func TestStartWithoutQuestionsShowsNotice(t *testing.T) {
	env := newTestEnv(t)
	a := catalog.Assessment{ID: "a-empty", Title: "Empty", ConceptIDs: []string{"nope"}}

	_, ok := Start(env, a).(*notice.NoticeScreen)
	assert.True(t, ok)
}

func TestEnterPushesQuiz(t *testing.T) {
	env := newTestEnv(t)
	s := New(env)
	s.Update(s.Init()())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*quiz.QuizScreen)
	assert.True(t, ok)
}

func TestViewTakenResult(t *testing.T) {
	env := newTestEnv(t)
	s := New(env)
	s.Update(s.Init()())
	require.NotNil(t, s.selectedResult(), "demo learner has taken the first assessment")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'v', Text: "v"})
	require.NotNil(t, cmd)
	push := cmd().(router.PushScreenMsg)
	_, ok := push.Screen.(*results.DetailScreen)
	assert.True(t, ok)
}
