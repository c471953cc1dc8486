package scoring

// Status classifies a concept score into one of three tiers.
type Status string

const (
	StatusWeak     Status = "weak"     // score < 60
	StatusModerate Status = "moderate" // 60 <= score < 80
	StatusStrong   Status = "strong"   // score >= 80
)

// Tier boundaries, inclusive lower bounds.
const (
	ModerateThreshold = 60
	StrongThreshold   = 80
)

// AllStatuses returns the statuses from weakest to strongest.
func AllStatuses() []Status {
	return []Status{StatusWeak, StatusModerate, StatusStrong}
}

// Classify maps a 0-100 score to its status.
func Classify(score int) Status {
	switch {
	case score < ModerateThreshold:
		return StatusWeak
	case score < StrongThreshold:
		return StatusModerate
	default:
		return StatusStrong
	}
}

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusWeak:
		return "Needs Work"
	case StatusModerate:
		return "Developing"
	case StatusStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// Icon returns the display icon for a status.
func (s Status) Icon() string {
	switch s {
	case StatusWeak:
		return "✗"
	case StatusModerate:
		return "~"
	case StatusStrong:
		return "✓"
	default:
		return "?"
	}
}
