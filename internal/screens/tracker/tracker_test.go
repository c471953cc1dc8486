package tracker

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/store"
)

func TestTrackerShowsTrends(t *testing.T) {
	sess := store.NewSession(store.NewMemory())
	if _, err := sess.Login(context.Background(), "alex@example.com"); err != nil {
		t.Fatal(err)
	}
	s := New(screens.NewEnv(sess, nil))

	if !strings.Contains(s.View(120, 40), "Loading progress") {
		t.Error("expected loading state before the report arrives")
	}

	s.Update(s.Init()())
	view := s.View(120, 40)
	for _, want := range []string{"2 assessments", "average 72%", "Fractions", "30 → 38 → 45 → 55 → 62", "+32"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTrackerEmptyHistory(t *testing.T) {
	sess := store.NewSession(store.NewMemory())
	s := New(screens.NewEnv(sess, nil))
	s.Update(s.Init()())

	if !strings.Contains(s.View(120, 40), "Take an assessment") {
		t.Error("expected empty-state hint")
	}
}
