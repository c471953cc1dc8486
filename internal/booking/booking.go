package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/catalog"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", apperr.InvalidInput("parse status", "unknown booking status %q", s)
}

// Booking is a confirmed mentor session.
type Booking struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	MentorID  string `json:"mentorId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Subject   string `json:"subject"`
	Concept   string `json:"concept"`
	Status    Status `json:"status"`
	Feedback  string `json:"feedback,omitempty"`
}

// Request carries the selections made while booking a session.
type Request struct {
	StudentID string         `validate:"required"`
	Mentor    catalog.Mentor `validate:"-"`
	Day       string         `validate:"required"`
	Slot      string         `validate:"required"`
	Concept   string
}

var validate = validator.New()

// newID generates booking IDs.
var newID = func() string { return uuid.New().String() }

// Confirm turns a request into an upcoming booking dated at the next
// occurrence of the requested day after today. The day and slot must come
// from the mentor's declared availability. On error no booking is produced.
func Confirm(req Request, today time.Time) (Booking, error) {
	if err := validate.Struct(req); err != nil {
		return Booking{}, requestError(err)
	}
	if req.Mentor.ID == "" {
		return Booking{}, apperr.InvalidInput("confirm booking", "mentor is required")
	}

	slots, ok := req.Mentor.SlotsOn(req.Day)
	if !ok {
		return Booking{}, apperr.InvalidInput("confirm booking", "%s is not available on %s", req.Mentor.Name, req.Day)
	}
	if !containsSlot(slots, req.Slot) {
		return Booking{}, apperr.InvalidInput("confirm booking", "%s has no %s slot on %s", req.Mentor.Name, req.Slot, req.Day)
	}

	date, err := NextDateForWeekday(req.Day, today)
	if err != nil {
		return Booking{}, err
	}

	concept := req.Concept
	if concept == "" {
		concept = req.Mentor.PrimaryExpertise()
	}

	return Booking{
		ID:        newID(),
		StudentID: req.StudentID,
		MentorID:  req.Mentor.ID,
		Date:      date,
		Time:      req.Slot,
		Subject:   req.Mentor.PrimaryExpertise(),
		Concept:   concept,
		Status:    StatusUpcoming,
	}, nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(slot)) {
			return true
		}
	}
	return false
}

// requestError converts validator output into an InvalidInput error.
func requestError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return apperr.InvalidInput("confirm booking", "%s", strings.Join(fields, ", "))
	}
	return apperr.InvalidInput("confirm booking", "%v", err)
}

// Update is a partial change to a booking. Nil fields are left untouched.
type Update struct {
	Status   *Status
	Feedback *string
}

// Apply returns b with u applied. Only upcoming bookings may change status,
// and only to completed or cancelled.
func Apply(b Booking, u Update) (Booking, error) {
	if u.Status != nil && *u.Status != b.Status {
		if b.Status != StatusUpcoming {
			return b, apperr.InvalidInput("update booking", "booking %s is already %s", b.ID, b.Status)
		}
		switch *u.Status {
		case StatusCompleted, StatusCancelled:
		default:
			return b, apperr.InvalidInput("update booking", "cannot move booking %s to %s", b.ID, *u.Status)
		}
		b.Status = *u.Status
	}
	if u.Feedback != nil {
		b.Feedback = *u.Feedback
	}
	return b, nil
}

// Upcoming filters bookings down to those still upcoming.
func Upcoming(bookings []Booking) []Booking {
	var out []Booking
	for _, b := range bookings {
		if b.Status == StatusUpcoming {
			out = append(out, b)
		}
	}
	return out
}
