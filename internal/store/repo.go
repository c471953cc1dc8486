package store

import (
	"context"
	"time"

	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/scoring"
)

// ResultRepo holds scored assessment results. Results are append-only.
type ResultRepo interface {
	// AppendResult stores a new result.
	AppendResult(ctx context.Context, r scoring.Result) error

	// Results returns the results for userID in append order. An empty
	// userID returns every result.
	Results(ctx context.Context, userID string) ([]scoring.Result, error)
}

// BookingRepo holds mentor bookings.
type BookingRepo interface {
	// AppendBooking stores a new booking.
	AppendBooking(ctx context.Context, b booking.Booking) error

	// UpdateBooking applies u to the booking with the given ID and returns
	// the updated booking. It fails with apperr.ErrNotFound when no such
	// booking exists.
	UpdateBooking(ctx context.Context, id string, u booking.Update) (booking.Booking, error)

	// Bookings returns the bookings for studentID in append order. An
	// empty studentID returns every booking.
	Bookings(ctx context.Context, studentID string) ([]booking.Booking, error)
}

// ProgressRepo holds the per-concept score history.
type ProgressRepo interface {
	// AppendProgress stores a new progress record.
	AppendProgress(ctx context.Context, rec progress.Record) error

	// Progress returns the records for conceptID in append order. An
	// empty conceptID returns the whole history.
	Progress(ctx context.Context, conceptID string) ([]progress.Record, error)
}

// CertificateRepo holds issued certificates.
type CertificateRepo interface {
	// AppendCertificate stores a new certificate.
	AppendCertificate(ctx context.Context, c certificate.Certificate) error

	// Certificates returns the certificates for studentID in append order.
	// An empty studentID returns every certificate.
	Certificates(ctx context.Context, studentID string) ([]certificate.Certificate, error)
}

// Store is the application state: every repo plus change notification.
type Store interface {
	ResultRepo
	BookingRepo
	ProgressRepo
	CertificateRepo

	// Subscribe registers l for change events. The returned func removes
	// the subscription and may be called more than once.
	Subscribe(l Listener) (cancel func())

	// Reset removes all stored state.
	Reset(ctx context.Context) error

	// Close releases the backend.
	Close() error
}

// EventKind names a change to the store.
type EventKind string

const (
	EventResultAppended      EventKind = "result.appended"
	EventBookingAppended     EventKind = "booking.appended"
	EventBookingUpdated      EventKind = "booking.updated"
	EventProgressAppended    EventKind = "progress.appended"
	EventCertificateAppended EventKind = "certificate.appended"
	EventReset               EventKind = "store.reset"
)

// Event describes one change. ID is the affected entity's ID, or the
// concept ID for progress records.
type Event struct {
	Kind EventKind
	ID   string
	At   time.Time
}

// Listener receives store events. Listeners run synchronously on the
// writer's goroutine after the write is visible and must not block.
type Listener func(Event)
