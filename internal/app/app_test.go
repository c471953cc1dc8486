package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/learnboard/internal/router"
	"github.com/abhisek/learnboard/internal/screen"
	"github.com/abhisek/learnboard/internal/screens"
	"github.com/abhisek/learnboard/internal/screens/home"
	"github.com/abhisek/learnboard/internal/screens/signin"
	"github.com/abhisek/learnboard/internal/store"
)

func newEnv(t *testing.T, signedIn bool) *screens.Env {
	t.Helper()
	sess := store.NewSession(store.NewMemory())
	if signedIn {
		if _, err := sess.Login(context.Background(), "alex@example.com"); err != nil {
			t.Fatal(err)
		}
	}
	return screens.NewEnv(sess, nil)
}

// backScreen captures Esc while its flag is set.
type backScreen struct {
	capture bool
	escs    int
}

func (s *backScreen) Init() tea.Cmd { return nil }
func (s *backScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.escs++
	}
	return s, nil
}
func (s *backScreen) View(int, int) string { return "back" }
func (s *backScreen) Title() string        { return "Back" }
func (s *backScreen) HandlesBack() bool    { return s.capture }

func TestInitialScreen(t *testing.T) {
	if _, ok := newAppModel(newEnv(t, false), "a@b.c").router.Active().(*signin.SignInScreen); !ok {
		t.Error("signed-out start should show sign-in")
	}
	if _, ok := newAppModel(newEnv(t, true), "a@b.c").router.Active().(*home.HomeScreen); !ok {
		t.Error("signed-in start should show the dashboard")
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(newEnv(t, true), "")
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at the root should do nothing")
	}

	m.router.Push(&backScreen{})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscDeliveredToBackHandler(t *testing.T) {
	m := newAppModel(newEnv(t, true), "")
	bs := &backScreen{capture: true}
	m.router.Push(bs)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("screen handling back should not be popped")
		}
	}
	if bs.escs != 1 {
		t.Errorf("screen saw %d escapes, want 1", bs.escs)
	}
}

func TestHeaderReflectsSession(t *testing.T) {
	m := newAppModel(newEnv(t, true), "")
	msg := m.loadHeader()().(headerLoadedMsg)
	if msg.Status.Student != "Alex" {
		t.Errorf("student = %q, want Alex", msg.Status.Student)
	}
	if msg.Status.AvgScore != 72 {
		t.Errorf("avg = %d, want 72", msg.Status.AvgScore)
	}
	if msg.Status.Upcoming != 1 {
		t.Errorf("upcoming = %d, want 1", msg.Status.Upcoming)
	}

	signedOut := newAppModel(newEnv(t, false), "")
	if got := signedOut.loadHeader()().(headerLoadedMsg); got.Status.Student != "" {
		t.Errorf("signed-out header should be empty, got %+v", got.Status)
	}
}

func TestViewFramesActiveScreen(t *testing.T) {
	m := newAppModel(newEnv(t, true), "")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(updated.(AppModel).render(), "Learnboard") {
		t.Error("expected header in frame")
	}

	small, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(small.(AppModel).render(), "at least") {
		t.Error("expected size warning on a tiny terminal")
	}
}
