package certificate

import (
	"errors"
	"testing"

	"github.com/abhisek/learnboard/internal/apperr"
)

var sample = []Certificate{
	{ID: "cert1", StudentID: "u1", Skill: "Algebra Basics", IssuedDate: "2026-01-20"},
	{ID: "cert2", StudentID: "u2", Skill: "Grammar", IssuedDate: "2026-02-01"},
	{ID: "cert3", StudentID: "u1", Skill: "Fractions", IssuedDate: "2026-02-10"},
	{ID: "cert4", StudentID: "u1", Skill: "Decimals", IssuedDate: "2026-01-20"},
}

func TestForStudent(t *testing.T) {
	got := ForStudent(sample, "u1")
	if len(got) != 3 {
		t.Fatalf("got %d certificates, want 3", len(got))
	}
	if got[0].ID != "cert1" || got[1].ID != "cert3" || got[2].ID != "cert4" {
		t.Errorf("unexpected order: %v", got)
	}
	if len(ForStudent(sample, "nobody")) != 0 {
		t.Error("expected no certificates for unknown student")
	}
}

func TestSortByIssued(t *testing.T) {
	got := SortByIssued(sample)
	want := []string{"cert3", "cert2", "cert1", "cert4"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, id)
		}
	}
	if sample[0].ID != "cert1" {
		t.Error("SortByIssued must not reorder its input")
	}
}

func TestGet(t *testing.T) {
	c, err := Get(sample, "cert2")
	if err != nil {
		t.Fatal(err)
	}
	if c.Skill != "Grammar" {
		t.Errorf("Skill = %q, want Grammar", c.Skill)
	}

	_, err = Get(sample, "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
