package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/store"
)

func sampleResults() []scoring.Result {
	return []scoring.Result{
		{ID: "r1", AssessmentID: "a1", Score: 65, ConceptScores: []scoring.ConceptScore{
			{ConceptID: "c1", Score: 45, Status: scoring.StatusWeak},
			{ConceptID: "c3", Score: 85, Status: scoring.StatusStrong},
		}},
		{ID: "r2", AssessmentID: "a2", Score: 40, ConceptScores: []scoring.ConceptScore{
			{ConceptID: "c5", Score: 30, Status: scoring.StatusWeak},
			{ConceptID: "c6", Score: 84, Status: scoring.StatusStrong},
		}},
		{ID: "r3", AssessmentID: "a1", Score: 90, ConceptScores: []scoring.ConceptScore{
			{ConceptID: "c1", Score: 90, Status: scoring.StatusStrong},
		}},
	}
}

func conceptIDs(scores []scoring.ConceptScore) []string {
	var ids []string
	for _, cs := range scores {
		ids = append(ids, cs.ConceptID)
	}
	return ids
}

func mentorIDs(ms []catalog.Mentor) []string {
	var ids []string
	for _, m := range ms {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestWeakAndStrongConcepts(t *testing.T) {
	assert.Equal(t, []string{"c1", "c5"}, conceptIDs(WeakConcepts(sampleResults())))
	assert.Equal(t, []string{"c3", "c6", "c1"}, conceptIDs(StrongConcepts(sampleResults())))
	assert.Empty(t, WeakConcepts(nil))
}

func TestLatestResult(t *testing.T) {
	r, ok := LatestResult(sampleResults())
	require.True(t, ok)
	assert.Equal(t, "r3", r.ID)

	_, ok = LatestResult(nil)
	assert.False(t, ok)
}

func TestResultFor_FirstMatch(t *testing.T) {
	r, err := ResultFor(sampleResults(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)

	_, err = ResultFor(sampleResults(), "a3")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpcomingBookings(t *testing.T) {
	got := UpcomingBookings([]booking.Booking{
		{ID: "b1", Status: booking.StatusUpcoming},
		{ID: "b2", Status: booking.StatusCancelled},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)
}

func TestRecommendMentors(t *testing.T) {
	weak := WeakConcepts(sampleResults())
	mentors := catalog.AllMentors()

	// Fractions is listed by m1; "Grammar Fundamentals" contains m3's
	// "Grammar".
	assert.Equal(t, []string{"m1", "m3"}, mentorIDs(RecommendMentors(weak, mentors, 0)))
	assert.Equal(t, []string{"m1"}, mentorIDs(RecommendMentors(weak, mentors, 1)))
	assert.Empty(t, RecommendMentors(nil, mentors, RecommendLimit))

	forces := []scoring.ConceptScore{{ConceptID: "c8", Status: scoring.StatusWeak}}
	assert.Equal(t, []string{"m2"}, mentorIDs(RecommendMentors(forces, mentors, RecommendLimit)))
}

func TestMentorFor(t *testing.T) {
	m, ok := MentorFor("Fractions", catalog.AllMentors())
	require.True(t, ok)
	assert.Equal(t, "m1", m.ID)

	_, ok = MentorFor("Grammar Fundamentals", catalog.AllMentors())
	assert.False(t, ok, "only expertise containing the full concept name matches")

	_, ok = MentorFor("", catalog.AllMentors())
	assert.False(t, ok)
}

func TestResourcesFor(t *testing.T) {
	got := ResourcesFor([]scoring.ConceptScore{
		{ConceptID: "c1"},
		{ConceptID: "c6"},
		{ConceptID: "nope"},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Fractions", got[0].Concept.Name)
	assert.Len(t, got[0].Resources, 2)
	assert.Equal(t, "c6", got[1].Concept.ID)
	assert.Empty(t, got[1].Resources)
}

func TestFilterMentors(t *testing.T) {
	mentors := catalog.AllMentors()
	tests := []struct {
		name    string
		query   string
		subject string
		want    []string
	}{
		{"everything", "", "", []string{"m1", "m2", "m3"}},
		{"all subjects", "", "all", []string{"m1", "m2", "m3"}},
		{"by name", "emily", "all", []string{"m3"}},
		{"by expertise", "SCI", "", []string{"m2"}},
		{"by subject", "", "English", []string{"m3"}},
		{"search and subject", "dr.", "Mathematics", []string{"m1"}},
		{"no overlap", "math", "Physics", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mentorIDs(FilterMentors(mentors, tt.query, tt.subject)))
		})
	}
}

func TestSubjects(t *testing.T) {
	got := Subjects(catalog.AllMentors())
	require.Len(t, got, 12)
	assert.Equal(t, []string{"Mathematics", "Algebra", "Geometry", "Fractions"}, got[:4])
	assert.Equal(t, "Writing", got[11])
}

func TestBuild_DemoOverview(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	u, err := store.NewSession(s).Login(ctx, "alex@example.com")
	require.NoError(t, err)

	o, err := Build(ctx, s, u)
	require.NoError(t, err)
	assert.Equal(t, 2, o.AssessmentsTaken)
	assert.Equal(t, 1, o.AssessmentsRemaining)
	assert.Equal(t, 66, o.OverallProgress)
	assert.Len(t, o.Upcoming, 1)
	assert.Len(t, o.Certificates, 1)
	assert.Equal(t, []string{"c1"}, conceptIDs(o.Weak))
	assert.Equal(t, []string{"c3", "c6"}, conceptIDs(o.Strong))
	require.NotNil(t, o.Latest)
	assert.Equal(t, "r2", o.Latest.ID)
	assert.Equal(t, []string{"c1"}, conceptIDs(o.Focus()))
}

func TestBuild_Empty(t *testing.T) {
	o, err := Build(context.Background(), store.NewMemory(), store.DemoUser())
	require.NoError(t, err)
	assert.Zero(t, o.AssessmentsTaken)
	assert.Equal(t, 3, o.AssessmentsRemaining)
	assert.Zero(t, o.OverallProgress)
	assert.Nil(t, o.Latest)
	assert.Empty(t, o.Focus())
}

func TestLoadProgress_Demo(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	u, err := store.NewSession(s).Login(ctx, "alex@example.com")
	require.NoError(t, err)

	r, err := LoadProgress(ctx, s, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Stats.TotalAssessments)
	assert.Equal(t, 72, r.Stats.AverageScore)
	assert.Equal(t, 1, r.Stats.CertificatesEarned)
	assert.Equal(t, 2, r.Stats.ConceptsImproved)
	assert.Equal(t, 66, r.Overall)

	require.Len(t, r.Trends, 2)
	assert.Equal(t, "c1", r.Trends[0].Concept.ID)
	assert.Equal(t, 32, r.Trends[0].Improvement)
	assert.Equal(t, "c3", r.Trends[1].Concept.ID)
	assert.Equal(t, 85, r.Trends[1].Latest)
}

func TestLoadProgress_Empty(t *testing.T) {
	r, err := LoadProgress(context.Background(), store.NewMemory(), "u1")
	require.NoError(t, err)
	assert.Zero(t, r.Stats)
	assert.Zero(t, r.Overall)
	assert.Empty(t, r.Trends)
}
