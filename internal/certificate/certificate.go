package certificate

import (
	"slices"

	"github.com/abhisek/learnboard/internal/apperr"
)

// Certificate is mentor-validated evidence of improvement in a skill.
type Certificate struct {
	ID             string `json:"id"`
	StudentID      string `json:"studentId"`
	StudentName    string `json:"studentName"`
	Skill          string `json:"skill"`
	Subject        string `json:"subject"`
	IssuedDate     string `json:"issuedDate"`
	MentorID       string `json:"mentorId"`
	MentorName     string `json:"mentorName"`
	MentorFeedback string `json:"mentorFeedback"`
	Improvement    int    `json:"improvementPercentage"`
}

// ForStudent returns the certificates issued to studentID, in input order.
func ForStudent(certs []Certificate, studentID string) []Certificate {
	var out []Certificate
	for _, c := range certs {
		if c.StudentID == studentID {
			out = append(out, c)
		}
	}
	return out
}

// SortByIssued returns a copy of certs ordered newest first. Certificates
// issued on the same date keep their relative order.
func SortByIssued(certs []Certificate) []Certificate {
	out := slices.Clone(certs)
	slices.SortStableFunc(out, func(a, b Certificate) int {
		// ISO dates compare lexically.
		switch {
		case a.IssuedDate > b.IssuedDate:
			return -1
		case a.IssuedDate < b.IssuedDate:
			return 1
		}
		return 0
	})
	return out
}

// Get returns the certificate with the given ID.
func Get(certs []Certificate, id string) (Certificate, error) {
	for _, c := range certs {
		if c.ID == id {
			return c, nil
		}
	}
	return Certificate{}, apperr.NotFound("certificate", id)
}
