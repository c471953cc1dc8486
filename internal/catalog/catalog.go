package catalog

import "strings"

// Difficulty ranks a concept within its subject.
type Difficulty string

const (
	DifficultyFoundational Difficulty = "foundational"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// AllDifficulties returns all difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyFoundational,
		DifficultyIntermediate,
		DifficultyAdvanced,
	}
}

// Label returns a human-readable name for a difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyFoundational:
		return "Foundational"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return string(d)
	}
}

// Concept is a tagged unit of subject-matter knowledge.
type Concept struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
}

// OptionsPerQuestion is the number of choices every question carries.
const OptionsPerQuestion = 4

// Question is a multiple-choice question tagged with exactly one concept.
type Question struct {
	ID            string   `json:"id"`
	ConceptID     string   `json:"conceptId"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// IsCorrect reports whether the option index matches the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}

// Assessment is a named test drawn from a fixed set of concepts.
// QuestionCount is the advertised size; the questions actually served are
// every bank question whose concept is listed in ConceptIDs.
type Assessment struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Subject       string   `json:"subject"`
	Description   string   `json:"description"`
	DurationMins  int      `json:"duration"`
	QuestionCount int      `json:"questionCount"`
	ConceptIDs    []string `json:"concepts"`
}

// Covers reports whether the assessment includes the concept.
func (a Assessment) Covers(conceptID string) bool {
	for _, id := range a.ConceptIDs {
		if id == conceptID {
			return true
		}
	}
	return false
}

// Availability lists the bookable time slots a mentor offers on a weekday.
type Availability struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

// Mentor is a tutor students can book sessions with.
type Mentor struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Avatar            string         `json:"avatar"`
	Expertise         []string       `json:"expertise"`
	Bio               string         `json:"bio"`
	Rating            float64        `json:"rating"`
	SessionsCompleted int            `json:"sessionsCompleted"`
	HourlyRate        float64        `json:"hourlyRate"`
	Availability      []Availability `json:"availability"`
}

// PrimaryExpertise returns the first listed expertise, or "" if none.
func (m Mentor) PrimaryExpertise() string {
	if len(m.Expertise) == 0 {
		return ""
	}
	return m.Expertise[0]
}

// Days returns the weekdays the mentor is available, in declared order.
func (m Mentor) Days() []string {
	days := make([]string, 0, len(m.Availability))
	for _, a := range m.Availability {
		days = append(days, a.Day)
	}
	return days
}

// SlotsOn returns the slots declared for day. The bool is false when the
// mentor is not available that day.
func (m Mentor) SlotsOn(day string) ([]string, bool) {
	for _, a := range m.Availability {
		if strings.EqualFold(a.Day, day) {
			return a.Slots, true
		}
	}
	return nil, false
}

// HasExpertise reports whether any expertise contains term, ignoring case.
func (m Mentor) HasExpertise(term string) bool {
	term = strings.ToLower(term)
	for _, e := range m.Expertise {
		if strings.Contains(strings.ToLower(e), term) {
			return true
		}
	}
	return false
}

// ResourceKind is the format of a learning resource.
type ResourceKind string

const (
	ResourceVideo       ResourceKind = "video"
	ResourceExercise    ResourceKind = "exercise"
	ResourceArticle     ResourceKind = "article"
	ResourceInteractive ResourceKind = "interactive"
)

// Icon returns the display icon for a resource kind.
func (k ResourceKind) Icon() string {
	switch k {
	case ResourceVideo:
		return "▶"
	case ResourceExercise:
		return "✎"
	case ResourceArticle:
		return "≡"
	case ResourceInteractive:
		return "◎"
	default:
		return "•"
	}
}

// Resource is study material recommended for a concept.
type Resource struct {
	ConceptID string       `json:"conceptId"`
	Title     string       `json:"title"`
	Kind      ResourceKind `json:"type"`
	Duration  string       `json:"duration,omitempty"`
	Questions int          `json:"questions,omitempty"`
	URL       string       `json:"url"`
}
