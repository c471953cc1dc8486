package catalog

import (
	"errors"
	"testing"

	"github.com/abhisek/learnboard/internal/apperr"
)

func TestGetConcept_Exists(t *testing.T) {
	c, err := GetConcept("c3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name != "Algebra Basics" {
		t.Errorf("got name %q, want %q", c.Name, "Algebra Basics")
	}
	if c.Difficulty != DifficultyIntermediate {
		t.Errorf("got difficulty %q, want %q", c.Difficulty, DifficultyIntermediate)
	}
}

func TestGetConcept_NotFound(t *testing.T) {
	_, err := GetConcept("nonexistent")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConceptName_FallsBackToID(t *testing.T) {
	if got := ConceptName("c1"); got != "Fractions" {
		t.Errorf("ConceptName(c1) = %q, want Fractions", got)
	}
	if got := ConceptName("zz"); got != "zz" {
		t.Errorf("ConceptName(zz) = %q, want zz", got)
	}
}

func TestCounts(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"concepts", len(AllConcepts()), 8},
		{"questions", len(AllQuestions()), 8},
		{"assessments", len(AllAssessments()), 3},
		{"mentors", len(AllMentors()), 3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestBySubject(t *testing.T) {
	tests := []struct {
		subject string
		want    int
	}{
		{"Mathematics", 4},
		{"english", 2},
		{"Science", 2},
		{"History", 0},
	}
	for _, tt := range tests {
		if got := len(BySubject(tt.subject)); got != tt.want {
			t.Errorf("BySubject(%q): got %d, want %d", tt.subject, got, tt.want)
		}
	}
}

func TestSubjects_FirstSeenOrder(t *testing.T) {
	got := Subjects()
	want := []string{"Mathematics", "English", "Science"}
	if len(got) != len(want) {
		t.Fatalf("Subjects() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Subjects()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestQuestionsFor_FiltersByConceptNotCount(t *testing.T) {
	a, err := GetAssessment("a1")
	if err != nil {
		t.Fatal(err)
	}
	qs, err := QuestionsFor("a1")
	if err != nil {
		t.Fatal(err)
	}
	// The assessment advertises 10 questions but only 5 bank questions
	// cover its concepts.
	if a.QuestionCount != 10 {
		t.Errorf("QuestionCount = %d, want 10", a.QuestionCount)
	}
	wantIDs := []string{"q1", "q2", "q3", "q4", "q5"}
	if len(qs) != len(wantIDs) {
		t.Fatalf("got %d questions, want %d", len(qs), len(wantIDs))
	}
	for i, q := range qs {
		if q.ID != wantIDs[i] {
			t.Errorf("question %d = %q, want %q", i, q.ID, wantIDs[i])
		}
		if !a.Covers(q.ConceptID) {
			t.Errorf("question %q concept %q not covered by a1", q.ID, q.ConceptID)
		}
	}
}

func TestQuestionsFor_UnknownAssessment(t *testing.T) {
	if _, err := QuestionsFor("a9"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestQuestionsForConcept(t *testing.T) {
	if got := len(QuestionsForConcept("c1")); got != 2 {
		t.Errorf("c1 questions: got %d, want 2", got)
	}
	// Reading Comprehension has no bank questions.
	if got := len(QuestionsForConcept("c6")); got != 0 {
		t.Errorf("c6 questions: got %d, want 0", got)
	}
}

func TestAllConcepts_ReturnsCopy(t *testing.T) {
	all := AllConcepts()
	all[0].Name = "mutated"
	if ConceptName(all[0].ID) == "mutated" {
		t.Error("AllConcepts must not expose internal storage")
	}
}

func TestMentor_SlotsOn(t *testing.T) {
	m, err := GetMentor("m1")
	if err != nil {
		t.Fatal(err)
	}
	slots, ok := m.SlotsOn("wednesday")
	if !ok {
		t.Fatal("m1 should be available on Wednesday")
	}
	if len(slots) != 3 || slots[0] != "9:00 AM" {
		t.Errorf("Wednesday slots = %v", slots)
	}
	if _, ok := m.SlotsOn("Sunday"); ok {
		t.Error("m1 should not be available on Sunday")
	}
	if m.PrimaryExpertise() != "Mathematics" {
		t.Errorf("PrimaryExpertise = %q, want Mathematics", m.PrimaryExpertise())
	}
}

func TestMentor_HasExpertise(t *testing.T) {
	m, _ := GetMentor("m2")
	if !m.HasExpertise("physics") {
		t.Error("m2 should match physics")
	}
	if m.HasExpertise("grammar") {
		t.Error("m2 should not match grammar")
	}
}

func TestResourcesFor(t *testing.T) {
	rs := ResourcesFor("c1")
	if len(rs) != 2 {
		t.Fatalf("c1 resources: got %d, want 2", len(rs))
	}
	if rs[1].Kind != ResourceExercise || rs[1].Questions != 10 {
		t.Errorf("second c1 resource = %+v", rs[1])
	}
	if len(ResourcesFor("c6")) != 0 {
		t.Error("c6 should have no resources")
	}
}
