package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/scoring"
)

// User is the signed-in learner.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Grade    string   `json:"grade"`
	Subjects []string `json:"subjects"`
}

// FirstName returns the first word of the user's name, or "Student".
func (u User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	if u.Name == "" {
		return "Student"
	}
	return u.Name
}

// DemoUser is the account every login signs into.
func DemoUser() User {
	return User{
		ID:       "u1",
		Name:     "Alex Johnson",
		Email:    "alex@example.com",
		Role:     "student",
		Grade:    "8th Grade",
		Subjects: []string{"Mathematics", "Science", "English"},
	}
}

var demoResults = []scoring.Result{
	{
		ID:           "r1",
		AssessmentID: "a1",
		UserID:       "u1",
		Date:         "2026-01-15",
		Score:        65,
		ConceptScores: []scoring.ConceptScore{
			{ConceptID: "c1", Score: 45, Status: scoring.StatusWeak},
			{ConceptID: "c2", Score: 70, Status: scoring.StatusModerate},
			{ConceptID: "c3", Score: 85, Status: scoring.StatusStrong},
			{ConceptID: "c4", Score: 60, Status: scoring.StatusModerate},
		},
		TimeTakenMins: 18,
	},
	{
		ID:           "r2",
		AssessmentID: "a2",
		UserID:       "u1",
		Date:         "2026-01-20",
		Score:        78,
		ConceptScores: []scoring.ConceptScore{
			{ConceptID: "c5", Score: 72, Status: scoring.StatusModerate},
			{ConceptID: "c6", Score: 84, Status: scoring.StatusStrong},
		},
		TimeTakenMins: 12,
	},
}

var demoBookings = []booking.Booking{
	{
		ID:        "b1",
		StudentID: "u1",
		MentorID:  "m1",
		Date:      "2026-02-05",
		Time:      "2:00 PM",
		Subject:   "Mathematics",
		Concept:   "Fractions",
		Status:    booking.StatusUpcoming,
	},
}

var demoProgress = []progress.Record{
	{Date: "2026-01-01", ConceptID: "c1", Score: 30},
	{Date: "2026-01-08", ConceptID: "c1", Score: 38},
	{Date: "2026-01-15", ConceptID: "c1", Score: 45},
	{Date: "2026-01-22", ConceptID: "c1", Score: 55},
	{Date: "2026-01-29", ConceptID: "c1", Score: 62},
	{Date: "2026-01-01", ConceptID: "c3", Score: 60},
	{Date: "2026-01-08", ConceptID: "c3", Score: 70},
	{Date: "2026-01-15", ConceptID: "c3", Score: 85},
}

const demoFeedback = "Alex demonstrated excellent problem-solving skills and a solid understanding of " +
	"algebraic concepts. Their ability to apply variables in real-world scenarios shows true mastery."

var demoCertificates = []certificate.Certificate{
	{
		ID:             "cert1",
		StudentID:      "u1",
		StudentName:    "Alex Johnson",
		Skill:          "Algebra Basics",
		Subject:        "Mathematics",
		IssuedDate:     "2026-01-20",
		MentorID:       "m1",
		MentorName:     "Dr. Sarah Chen",
		MentorFeedback: demoFeedback,
		Improvement:    42,
	},
}

// Seed appends the demo history to s.
func Seed(ctx context.Context, s Store) error {
	for _, r := range demoResults {
		r.ConceptScores = slices.Clone(r.ConceptScores)
		if err := s.AppendResult(ctx, r); err != nil {
			return fmt.Errorf("seed result %s: %w", r.ID, err)
		}
	}
	for _, b := range demoBookings {
		if err := s.AppendBooking(ctx, b); err != nil {
			return fmt.Errorf("seed booking %s: %w", b.ID, err)
		}
	}
	for _, p := range demoProgress {
		if err := s.AppendProgress(ctx, p); err != nil {
			return fmt.Errorf("seed progress %s: %w", p.ConceptID, err)
		}
	}
	for _, c := range demoCertificates {
		if err := s.AppendCertificate(ctx, c); err != nil {
			return fmt.Errorf("seed certificate %s: %w", c.ID, err)
		}
	}
	return nil
}
