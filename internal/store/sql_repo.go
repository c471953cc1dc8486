package store

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/learnboard/internal/apperr"
	"github.com/abhisek/learnboard/internal/booking"
	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/scoring"
)

var sqlite = entsql.Dialect(dialect.SQLite)

type resultRow struct {
	ID            string `sql:"id"`
	AssessmentID  string `sql:"assessment_id"`
	UserID        string `sql:"user_id"`
	Date          string `sql:"date"`
	Score         int    `sql:"score"`
	ConceptScores string `sql:"concept_scores"`
	TimeTaken     int    `sql:"time_taken"`
}

var resultColumns = []string{"id", "assessment_id", "user_id", "date", "score", "concept_scores", "time_taken"}

type bookingRow struct {
	ID        string `sql:"id"`
	StudentID string `sql:"student_id"`
	MentorID  string `sql:"mentor_id"`
	Date      string `sql:"date"`
	Time      string `sql:"time"`
	Subject   string `sql:"subject"`
	Concept   string `sql:"concept"`
	Status    string `sql:"status"`
	Feedback  string `sql:"feedback"`
}

var bookingColumns = []string{"id", "student_id", "mentor_id", "date", "time", "subject", "concept", "status", "feedback"}

func (r bookingRow) booking() booking.Booking {
	return booking.Booking{
		ID:        r.ID,
		StudentID: r.StudentID,
		MentorID:  r.MentorID,
		Date:      r.Date,
		Time:      r.Time,
		Subject:   r.Subject,
		Concept:   r.Concept,
		Status:    booking.Status(r.Status),
		Feedback:  r.Feedback,
	}
}

type progressRow struct {
	ConceptID string `sql:"concept_id"`
	Date      string `sql:"date"`
	Score     int    `sql:"score"`
}

type certificateRow struct {
	ID             string `sql:"id"`
	StudentID      string `sql:"student_id"`
	StudentName    string `sql:"student_name"`
	Skill          string `sql:"skill"`
	Subject        string `sql:"subject"`
	IssuedDate     string `sql:"issued_date"`
	MentorID       string `sql:"mentor_id"`
	MentorName     string `sql:"mentor_name"`
	MentorFeedback string `sql:"mentor_feedback"`
	Improvement    int    `sql:"improvement"`
}

var certificateColumns = []string{"id", "student_id", "student_name", "skill", "subject", "issued_date", "mentor_id", "mentor_name", "mentor_feedback", "improvement"}

// exec runs a built statement.
func (s *SQLStore) exec(ctx context.Context, query string, args []any) error {
	return s.drv.Exec(ctx, query, args, nil)
}

// selectAll runs sel and scans every row into dst, a pointer to a slice.
func (s *SQLStore) selectAll(ctx context.Context, sel *entsql.Selector, dst any) error {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, dst)
}

// exists reports whether table has a row with the given id.
func (s *SQLStore) exists(ctx context.Context, table, id string) (bool, error) {
	var ids []string
	sel := sqlite.Select("id").From(sqlite.Table(table)).Where(entsql.EQ("id", id))
	if err := s.selectAll(ctx, sel, &ids); err != nil {
		return false, fmt.Errorf("query %s: %w", table, err)
	}
	return len(ids) > 0, nil
}

func (s *SQLStore) AppendResult(ctx context.Context, r scoring.Result) error {
	scores, err := json.Marshal(r.ConceptScores)
	if err != nil {
		return fmt.Errorf("encode concept scores: %w", err)
	}

	s.mu.Lock()
	err = s.insertUnique(ctx, "results", r.ID, func(seq int64) (string, []any) {
		return sqlite.Insert("results").
			Columns(append([]string{"seq"}, resultColumns...)...).
			Values(seq, r.ID, r.AssessmentID, r.UserID, r.Date, r.Score, string(scores), r.TimeTakenMins).
			Query()
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(EventResultAppended, r.ID)
	return nil
}

// insertUnique inserts a row built by build unless id is already present.
// The caller holds s.mu.
func (s *SQLStore) insertUnique(ctx context.Context, table, id string, build func(seq int64) (string, []any)) error {
	found, err := s.exists(ctx, table, id)
	if err != nil {
		return err
	}
	if found {
		return apperr.InvalidInput("append "+table, "duplicate id %q", id)
	}
	seq, err := s.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := build(seq)
	if err := s.exec(ctx, query, args); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

func (s *SQLStore) Results(ctx context.Context, userID string) ([]scoring.Result, error) {
	sel := sqlite.Select(resultColumns...).From(sqlite.Table("results")).OrderBy("seq")
	if userID != "" {
		sel.Where(entsql.EQ("user_id", userID))
	}
	var rows []resultRow
	if err := s.selectAll(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	out := make([]scoring.Result, 0, len(rows))
	for _, row := range rows {
		var scores []scoring.ConceptScore
		if err := json.Unmarshal([]byte(row.ConceptScores), &scores); err != nil {
			return nil, fmt.Errorf("decode concept scores for %s: %w", row.ID, err)
		}
		out = append(out, scoring.Result{
			ID:            row.ID,
			AssessmentID:  row.AssessmentID,
			UserID:        row.UserID,
			Date:          row.Date,
			Score:         row.Score,
			ConceptScores: scores,
			TimeTakenMins: row.TimeTaken,
		})
	}
	return out, nil
}

func (s *SQLStore) AppendBooking(ctx context.Context, b booking.Booking) error {
	s.mu.Lock()
	err := s.insertUnique(ctx, "bookings", b.ID, func(seq int64) (string, []any) {
		return sqlite.Insert("bookings").
			Columns(append([]string{"seq"}, bookingColumns...)...).
			Values(seq, b.ID, b.StudentID, b.MentorID, b.Date, b.Time, b.Subject, b.Concept, string(b.Status), b.Feedback).
			Query()
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(EventBookingAppended, b.ID)
	return nil
}

func (s *SQLStore) UpdateBooking(ctx context.Context, id string, u booking.Update) (booking.Booking, error) {
	s.mu.Lock()
	updated, err := s.updateBooking(ctx, id, u)
	s.mu.Unlock()
	if err != nil {
		return booking.Booking{}, err
	}

	s.publish(EventBookingUpdated, id)
	return updated, nil
}

func (s *SQLStore) updateBooking(ctx context.Context, id string, u booking.Update) (booking.Booking, error) {
	var rows []bookingRow
	sel := sqlite.Select(bookingColumns...).From(sqlite.Table("bookings")).Where(entsql.EQ("id", id))
	if err := s.selectAll(ctx, sel, &rows); err != nil {
		return booking.Booking{}, fmt.Errorf("query booking: %w", err)
	}
	if len(rows) == 0 {
		return booking.Booking{}, apperr.NotFound("booking", id)
	}

	updated, err := booking.Apply(rows[0].booking(), u)
	if err != nil {
		return booking.Booking{}, err
	}

	query, args := sqlite.Update("bookings").
		Set("status", string(updated.Status)).
		Set("feedback", updated.Feedback).
		Where(entsql.EQ("id", id)).
		Query()
	if err := s.exec(ctx, query, args); err != nil {
		return booking.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	return updated, nil
}

func (s *SQLStore) Bookings(ctx context.Context, studentID string) ([]booking.Booking, error) {
	sel := sqlite.Select(bookingColumns...).From(sqlite.Table("bookings")).OrderBy("seq")
	if studentID != "" {
		sel.Where(entsql.EQ("student_id", studentID))
	}
	var rows []bookingRow
	if err := s.selectAll(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	out := make([]booking.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.booking())
	}
	return out, nil
}

func (s *SQLStore) AppendProgress(ctx context.Context, rec progress.Record) error {
	seq, err := s.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := sqlite.Insert("progress").
		Columns("seq", "concept_id", "date", "score").
		Values(seq, rec.ConceptID, rec.Date, rec.Score).
		Query()
	if err := s.exec(ctx, query, args); err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}

	s.publish(EventProgressAppended, rec.ConceptID)
	return nil
}

func (s *SQLStore) Progress(ctx context.Context, conceptID string) ([]progress.Record, error) {
	sel := sqlite.Select("concept_id", "date", "score").From(sqlite.Table("progress")).OrderBy("seq")
	if conceptID != "" {
		sel.Where(entsql.EQ("concept_id", conceptID))
	}
	var rows []progressRow
	if err := s.selectAll(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	out := make([]progress.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, progress.Record{ConceptID: row.ConceptID, Date: row.Date, Score: row.Score})
	}
	return out, nil
}

func (s *SQLStore) AppendCertificate(ctx context.Context, c certificate.Certificate) error {
	s.mu.Lock()
	err := s.insertUnique(ctx, "certificates", c.ID, func(seq int64) (string, []any) {
		return sqlite.Insert("certificates").
			Columns(append([]string{"seq"}, certificateColumns...)...).
			Values(seq, c.ID, c.StudentID, c.StudentName, c.Skill, c.Subject, c.IssuedDate,
				c.MentorID, c.MentorName, c.MentorFeedback, c.Improvement).
			Query()
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(EventCertificateAppended, c.ID)
	return nil
}

func (s *SQLStore) Certificates(ctx context.Context, studentID string) ([]certificate.Certificate, error) {
	sel := sqlite.Select(certificateColumns...).From(sqlite.Table("certificates")).OrderBy("seq")
	if studentID != "" {
		sel.Where(entsql.EQ("student_id", studentID))
	}
	var rows []certificateRow
	if err := s.selectAll(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query certificates: %w", err)
	}
	out := make([]certificate.Certificate, 0, len(rows))
	for _, row := range rows {
		out = append(out, certificate.Certificate{
			ID:             row.ID,
			StudentID:      row.StudentID,
			StudentName:    row.StudentName,
			Skill:          row.Skill,
			Subject:        row.Subject,
			IssuedDate:     row.IssuedDate,
			MentorID:       row.MentorID,
			MentorName:     row.MentorName,
			MentorFeedback: row.MentorFeedback,
			Improvement:    row.Improvement,
		})
	}
	return out, nil
}

func (s *SQLStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	for _, table := range []string{"results", "bookings", "progress", "certificates"} {
		query, args := sqlite.Delete(table).Query()
		if err := s.exec(ctx, query, args); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	s.mu.Unlock()

	s.publish(EventReset, "")
	return nil
}
