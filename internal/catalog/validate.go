package catalog

import (
	"fmt"
	"strings"
)

// validateSeed performs the cross-table checks a schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateSeed(d seedData) error {
	var errs []string

	conceptIDs := make(map[string]bool, len(d.Concepts))
	for _, c := range d.Concepts {
		if conceptIDs[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		conceptIDs[c.ID] = true
	}

	// Every concept referenced by a question must exist.
	questionIDs := make(map[string]bool, len(d.Questions))
	for _, q := range d.Questions {
		if questionIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		questionIDs[q.ID] = true
		if !conceptIDs[q.ConceptID] {
			errs = append(errs, fmt.Sprintf("question %q references nonexistent concept %q", q.ID, q.ConceptID))
		}
		if len(q.Options) != OptionsPerQuestion {
			errs = append(errs, fmt.Sprintf("question %q has %d options, want %d", q.ID, len(q.Options), OptionsPerQuestion))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %q: correct answer %d out of range", q.ID, q.CorrectAnswer))
		}
	}

	assessmentIDs := make(map[string]bool, len(d.Assessments))
	for _, a := range d.Assessments {
		if assessmentIDs[a.ID] {
			errs = append(errs, fmt.Sprintf("duplicate assessment ID: %q", a.ID))
		}
		assessmentIDs[a.ID] = true
		if a.DurationMins <= 0 {
			errs = append(errs, fmt.Sprintf("assessment %q: duration must be > 0, got %d", a.ID, a.DurationMins))
		}
		for _, cid := range a.ConceptIDs {
			if !conceptIDs[cid] {
				errs = append(errs, fmt.Sprintf("assessment %q references nonexistent concept %q", a.ID, cid))
			}
		}
	}

	mentorIDs := make(map[string]bool, len(d.Mentors))
	for _, m := range d.Mentors {
		if mentorIDs[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate mentor ID: %q", m.ID))
		}
		mentorIDs[m.ID] = true
		days := make(map[string]bool, len(m.Availability))
		for _, a := range m.Availability {
			key := strings.ToLower(a.Day)
			if days[key] {
				errs = append(errs, fmt.Sprintf("mentor %q lists %s twice", m.ID, a.Day))
			}
			days[key] = true
		}
	}

	for _, r := range d.Resources {
		if !conceptIDs[r.ConceptID] {
			errs = append(errs, fmt.Sprintf("resource %q references nonexistent concept %q", r.Title, r.ConceptID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
