// Package dashboard derives the learner-facing views (weak and strong
// concepts, mentor recommendations, upcoming sessions) from stored state.
// Nothing here is cached; every view is recomputed from the store.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/store"
)

// FocusLimit caps the weak concepts shown on the home view.
const FocusLimit = 3

// RecommendLimit caps recommended mentors on the results view.
const RecommendLimit = 2

func byStatus(results []scoring.Result, s scoring.Status) []scoring.ConceptScore {
	var out []scoring.ConceptScore
	for _, r := range results {
		out = append(out, r.ByStatus(s)...)
	}
	return out
}

// WeakConcepts returns every weak concept score across results, in result
// order. A concept weak in two results appears twice.
func WeakConcepts(results []scoring.Result) []scoring.ConceptScore {
	return byStatus(results, scoring.StatusWeak)
}

// StrongConcepts returns every strong concept score across results.
func StrongConcepts(results []scoring.Result) []scoring.ConceptScore {
	return byStatus(results, scoring.StatusStrong)
}

// LatestResult returns the most recently appended result.
func LatestResult(results []scoring.Result) (scoring.Result, bool) {
	if len(results) == 0 {
		return scoring.Result{}, false
	}
	return results[len(results)-1], true
}

// ResultFor returns the first result for assessmentID.
func ResultFor(results []scoring.Result, assessmentID string) (scoring.Result, error) {
	for _, r := range results {
		if r.AssessmentID == assessmentID {
			return r, nil
		}
	}
	return scoring.Result{}, apperr.NotFound("result for assessment", assessmentID)
}

// UpcomingBookings returns the bookings still upcoming.
func UpcomingBookings(bookings []booking.Booking) []booking.Booking {
	return booking.Upcoming(bookings)
}

// matchesConcept reports whether a mentor's expertise covers the concept
// name in either direction, ignoring case.
func matchesConcept(m catalog.Mentor, conceptName string) bool {
	name := strings.ToLower(conceptName)
	if name == "" {
		return false
	}
	for _, e := range m.Expertise {
		e = strings.ToLower(e)
		if strings.Contains(e, name) || strings.Contains(name, e) {
			return true
		}
	}
	return false
}

// MentorFor returns the first mentor whose expertise names the concept.
func MentorFor(conceptName string, mentors []catalog.Mentor) (catalog.Mentor, bool) {
	for _, m := range mentors {
		if conceptName != "" && m.HasExpertise(conceptName) {
			return m, true
		}
	}
	return catalog.Mentor{}, false
}

// RecommendMentors returns mentors matching any weak concept, in mentor
// order. limit <= 0 returns them all.
func RecommendMentors(weak []scoring.ConceptScore, mentors []catalog.Mentor, limit int) []catalog.Mentor {
	var out []catalog.Mentor
	for _, m := range mentors {
		for _, w := range weak {
			if matchesConcept(m, catalog.ConceptName(w.ConceptID)) {
				out = append(out, m)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// ConceptResources pairs a concept with its study material.
type ConceptResources struct {
	Concept   catalog.Concept
	Resources []catalog.Resource
}

// ResourcesFor returns study material for each weak concept, skipping
// concepts missing from the catalog.
func ResourcesFor(weak []scoring.ConceptScore) []ConceptResources {
	var out []ConceptResources
	for _, w := range weak {
		c, err := catalog.GetConcept(w.ConceptID)
		if err != nil {
			continue
		}
		out = append(out, ConceptResources{Concept: c, Resources: catalog.ResourcesFor(w.ConceptID)})
	}
	return out
}

// AllSubjects is the subject filter value that matches every mentor.
const AllSubjects = "all"

// FilterMentors returns mentors whose name or expertise contains query and
// whose expertise contains subject. An empty query matches everyone; an
// empty or "all" subject matches everyone.
func FilterMentors(mentors []catalog.Mentor, query, subject string) []catalog.Mentor {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []catalog.Mentor
	for _, m := range mentors {
		matchesSearch := strings.Contains(strings.ToLower(m.Name), q) || m.HasExpertise(q)
		matchesSubject := subject == "" || strings.EqualFold(subject, AllSubjects) || m.HasExpertise(subject)
		if matchesSearch && matchesSubject {
			out = append(out, m)
		}
	}
	return out
}

// Subjects returns the distinct expertise areas across mentors in
// first-seen order.
func Subjects(mentors []catalog.Mentor) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range mentors {
		for _, e := range m.Expertise {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// Overview is everything the home view shows.
type Overview struct {
	User                 store.User
	Results              []scoring.Result
	AssessmentsTaken     int
	AssessmentsRemaining int
	OverallProgress      int
	Upcoming             []booking.Booking
	Certificates         []certificate.Certificate
	Weak                 []scoring.ConceptScore
	Strong               []scoring.ConceptScore
	Latest               *scoring.Result
}

// Focus returns up to FocusLimit weak concepts for the home view.
func (o Overview) Focus() []scoring.ConceptScore {
	return o.Weak[:min(len(o.Weak), FocusLimit)]
}

// Build reads the user's state from s and assembles the overview.
func Build(ctx context.Context, s store.Store, user store.User) (Overview, error) {
	results, err := s.Results(ctx, user.ID)
	if err != nil {
		return Overview{}, fmt.Errorf("load results: %w", err)
	}
	bookings, err := s.Bookings(ctx, user.ID)
	if err != nil {
		return Overview{}, fmt.Errorf("load bookings: %w", err)
	}
	history, err := s.Progress(ctx, "")
	if err != nil {
		return Overview{}, fmt.Errorf("load progress: %w", err)
	}
	certs, err := s.Certificates(ctx, user.ID)
	if err != nil {
		return Overview{}, fmt.Errorf("load certificates: %w", err)
	}

	o := Overview{
		User:                 user,
		Results:              results,
		AssessmentsTaken:     len(results),
		AssessmentsRemaining: max(0, len(catalog.AllAssessments())-len(results)),
		OverallProgress:      progress.Overall(history),
		Upcoming:             UpcomingBookings(bookings),
		Certificates:         certs,
		Weak:                 WeakConcepts(results),
		Strong:               StrongConcepts(results),
	}
	if latest, ok := LatestResult(results); ok {
		o.Latest = &latest
	}
	return o, nil
}

// ProgressReport is everything the progress view shows.
type ProgressReport struct {
	Stats   progress.Stats          `json:"stats"`
	Overall int                     `json:"overallProgress"`
	Trends  []progress.ConceptTrend `json:"trends"`
}

// LoadProgress reads the user's history from s and derives the report.
func LoadProgress(ctx context.Context, s store.Store, userID string) (ProgressReport, error) {
	results, err := s.Results(ctx, userID)
	if err != nil {
		return ProgressReport{}, fmt.Errorf("load results: %w", err)
	}
	certs, err := s.Certificates(ctx, userID)
	if err != nil {
		return ProgressReport{}, fmt.Errorf("load certificates: %w", err)
	}
	history, err := s.Progress(ctx, "")
	if err != nil {
		return ProgressReport{}, fmt.Errorf("load progress: %w", err)
	}
	trends := progress.Trends(history, catalog.AllConcepts())
	return ProgressReport{
		Stats:   progress.Summarize(results, certs, trends),
		Overall: progress.Overall(history),
		Trends:  trends,
	}, nil
}
