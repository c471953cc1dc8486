package catalog

import (
	"slices"
	"strings"

	"github.com/abhisek/learnboard/internal/apperr"
)

// index holds the reference tables with precomputed lookups.
type index struct {
	concepts     []Concept
	conceptByID  map[string]*Concept
	bySubject    map[string][]Concept
	subjects     []string
	questions    []Question
	byConcept    map[string][]Question
	assessments  []Assessment
	assessmentBy map[string]*Assessment
	mentors      []Mentor
	mentorByID   map[string]*Mentor
	resources    []Resource
}

// idx is the package-level catalog, set by init() in seed.go.
var idx *index

// buildIndex constructs lookups over the seed tables. Ordering of every
// slice follows declaration order in the seed.
func buildIndex(d seedData) *index {
	ix := &index{
		concepts:     d.Concepts,
		conceptByID:  make(map[string]*Concept, len(d.Concepts)),
		bySubject:    make(map[string][]Concept),
		questions:    d.Questions,
		byConcept:    make(map[string][]Question),
		assessments:  d.Assessments,
		assessmentBy: make(map[string]*Assessment, len(d.Assessments)),
		mentors:      d.Mentors,
		mentorByID:   make(map[string]*Mentor, len(d.Mentors)),
		resources:    d.Resources,
	}

	for i := range ix.concepts {
		c := &ix.concepts[i]
		ix.conceptByID[c.ID] = c
		if _, seen := ix.bySubject[c.Subject]; !seen {
			ix.subjects = append(ix.subjects, c.Subject)
		}
		ix.bySubject[c.Subject] = append(ix.bySubject[c.Subject], *c)
	}
	for _, q := range ix.questions {
		ix.byConcept[q.ConceptID] = append(ix.byConcept[q.ConceptID], q)
	}
	for i := range ix.assessments {
		ix.assessmentBy[ix.assessments[i].ID] = &ix.assessments[i]
	}
	for i := range ix.mentors {
		ix.mentorByID[ix.mentors[i].ID] = &ix.mentors[i]
	}
	return ix
}

// GetConcept returns a concept by ID.
func GetConcept(id string) (Concept, error) {
	c, ok := idx.conceptByID[id]
	if !ok {
		return Concept{}, apperr.NotFound("concept", id)
	}
	return *c, nil
}

// ConceptName returns the concept's display name, falling back to the ID.
func ConceptName(id string) string {
	if c, ok := idx.conceptByID[id]; ok {
		return c.Name
	}
	return id
}

// AllConcepts returns every concept in catalog order.
func AllConcepts() []Concept {
	return slices.Clone(idx.concepts)
}

// BySubject returns the concepts of a subject, matched case-insensitively.
func BySubject(subject string) []Concept {
	for s, cs := range idx.bySubject {
		if strings.EqualFold(s, subject) {
			return slices.Clone(cs)
		}
	}
	return nil
}

// Subjects returns the distinct concept subjects in first-seen order.
func Subjects() []string {
	return slices.Clone(idx.subjects)
}

// AllQuestions returns the whole question bank.
func AllQuestions() []Question {
	return slices.Clone(idx.questions)
}

// QuestionsForConcept returns the bank questions tagged with a concept.
func QuestionsForConcept(conceptID string) []Question {
	return slices.Clone(idx.byConcept[conceptID])
}

// QuestionsForConcepts filters the bank down to questions whose concept is
// in ids, preserving bank order.
func QuestionsForConcepts(ids []string) []Question {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []Question
	for _, q := range idx.questions {
		if want[q.ConceptID] {
			out = append(out, q)
		}
	}
	return out
}

// GetAssessment returns an assessment by ID.
func GetAssessment(id string) (Assessment, error) {
	a, ok := idx.assessmentBy[id]
	if !ok {
		return Assessment{}, apperr.NotFound("assessment", id)
	}
	return *a, nil
}

// AllAssessments returns every assessment in catalog order.
func AllAssessments() []Assessment {
	return slices.Clone(idx.assessments)
}

// QuestionsFor returns the questions served by an assessment: every bank
// question covering one of its concepts, in bank order.
func QuestionsFor(assessmentID string) ([]Question, error) {
	a, err := GetAssessment(assessmentID)
	if err != nil {
		return nil, err
	}
	return QuestionsForConcepts(a.ConceptIDs), nil
}

// GetMentor returns a mentor by ID.
func GetMentor(id string) (Mentor, error) {
	m, ok := idx.mentorByID[id]
	if !ok {
		return Mentor{}, apperr.NotFound("mentor", id)
	}
	return *m, nil
}

// AllMentors returns every mentor in catalog order.
func AllMentors() []Mentor {
	return slices.Clone(idx.mentors)
}

// ResourcesFor returns the learning resources attached to a concept.
func ResourcesFor(conceptID string) []Resource {
	var out []Resource
	for _, r := range idx.resources {
		if r.ConceptID == conceptID {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks the loaded catalog for structural issues.
func Validate() error {
	return validateSeed(seedData{
		Concepts:    idx.concepts,
		Questions:   idx.questions,
		Assessments: idx.assessments,
		Mentors:     idx.mentors,
		Resources:   idx.resources,
	})
}
