package store

import (
	"context"
	"slices"
	"sync"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/scoring"
)

// Memory is a Store kept in process memory.
type Memory struct {
	*broker

	mu           sync.RWMutex
	results      []scoring.Result
	bookings     []booking.Booking
	progress     []progress.Record
	certificates []certificate.Certificate
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{broker: newBroker()}
}

func (m *Memory) AppendResult(_ context.Context, r scoring.Result) error {
	m.mu.Lock()
	if slices.ContainsFunc(m.results, func(x scoring.Result) bool { return x.ID == r.ID }) {
		m.mu.Unlock()
		return apperr.InvalidInput("append result", "duplicate result id %q", r.ID)
	}
	r.ConceptScores = slices.Clone(r.ConceptScores)
	m.results = append(m.results, r)
	m.mu.Unlock()

	m.publish(EventResultAppended, r.ID)
	return nil
}

func (m *Memory) Results(_ context.Context, userID string) ([]scoring.Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []scoring.Result
	for _, r := range m.results {
		if userID == "" || r.UserID == userID {
			r.ConceptScores = slices.Clone(r.ConceptScores)
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) AppendBooking(_ context.Context, b booking.Booking) error {
	m.mu.Lock()
	if slices.ContainsFunc(m.bookings, func(x booking.Booking) bool { return x.ID == b.ID }) {
		m.mu.Unlock()
		return apperr.InvalidInput("append booking", "duplicate booking id %q", b.ID)
	}
	m.bookings = append(m.bookings, b)
	m.mu.Unlock()

	m.publish(EventBookingAppended, b.ID)
	return nil
}

func (m *Memory) UpdateBooking(_ context.Context, id string, u booking.Update) (booking.Booking, error) {
	m.mu.Lock()
	i := slices.IndexFunc(m.bookings, func(b booking.Booking) bool { return b.ID == id })
	if i < 0 {
		m.mu.Unlock()
		return booking.Booking{}, apperr.NotFound("booking", id)
	}
	updated, err := booking.Apply(m.bookings[i], u)
	if err != nil {
		m.mu.Unlock()
		return booking.Booking{}, err
	}
	m.bookings[i] = updated
	m.mu.Unlock()

	m.publish(EventBookingUpdated, id)
	return updated, nil
}

func (m *Memory) Bookings(_ context.Context, studentID string) ([]booking.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []booking.Booking
	for _, b := range m.bookings {
		if studentID == "" || b.StudentID == studentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *Memory) AppendProgress(_ context.Context, rec progress.Record) error {
	m.mu.Lock()
	m.progress = append(m.progress, rec)
	m.mu.Unlock()

	m.publish(EventProgressAppended, rec.ConceptID)
	return nil
}

func (m *Memory) Progress(_ context.Context, conceptID string) ([]progress.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []progress.Record
	for _, r := range m.progress {
		if conceptID == "" || r.ConceptID == conceptID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *Memory) AppendCertificate(_ context.Context, c certificate.Certificate) error {
	m.mu.Lock()
	if slices.ContainsFunc(m.certificates, func(x certificate.Certificate) bool { return x.ID == c.ID }) {
		m.mu.Unlock()
		return apperr.InvalidInput("append certificate", "duplicate certificate id %q", c.ID)
	}
	m.certificates = append(m.certificates, c)
	m.mu.Unlock()

	m.publish(EventCertificateAppended, c.ID)
	return nil
}

func (m *Memory) Certificates(_ context.Context, studentID string) ([]certificate.Certificate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []certificate.Certificate
	for _, c := range m.certificates {
		if studentID == "" || c.StudentID == studentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	m.results = nil
	m.bookings = nil
	m.progress = nil
	m.certificates = nil
	m.mu.Unlock()

	m.publish(EventReset, "")
	return nil
}

// Close is a no-op for the memory store.
func (m *Memory) Close() error { return nil }
