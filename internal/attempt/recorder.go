package attempt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/progress"
	"github.com/abhisek/learnboard/internal/scoring"
)

// Sink receives scored results and the progress points derived from them.
type Sink interface {
	AppendResult(ctx context.Context, r scoring.Result) error
	AppendProgress(ctx context.Context, rec progress.Record) error
}

// Recorder persists submitted results.
type Recorder struct {
	sink   Sink
	logger *zap.Logger
}

// NewRecorder creates a Recorder writing to sink. A nil logger is replaced
// with a no-op logger.
func NewRecorder(sink Sink, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{sink: sink, logger: logger}
}

// Save tracks how far recording one result got, so a failed save can be
// resumed without writing any row twice.
type Save struct {
	Result scoring.Result

	resultStored bool
	progressDone int
}

// NewSave starts a save for res.
func NewSave(res scoring.Result) *Save {
	return &Save{Result: res}
}

// Done reports whether every row of the save is stored.
func (s *Save) Done() bool {
	return s.resultStored && s.progressDone == len(s.Result.ConceptScores)
}

// Record appends the result and one progress record per concept score.
func (r *Recorder) Record(ctx context.Context, res scoring.Result) error {
	return r.Resume(ctx, NewSave(res))
}

// Resume writes the rows of s not yet stored. After an error it may be
// called again with the same Save.
func (r *Recorder) Resume(ctx context.Context, s *Save) error {
	res := s.Result
	if !s.resultStored {
		if err := r.sink.AppendResult(ctx, res); err != nil {
			return fmt.Errorf("record result: %w", err)
		}
		s.resultStored = true
	}
	recs := progress.FromResult(res)
	for ; s.progressDone < len(recs); s.progressDone++ {
		rec := recs[s.progressDone]
		if err := r.sink.AppendProgress(ctx, rec); err != nil {
			return fmt.Errorf("record progress for %s: %w", rec.ConceptID, err)
		}
	}
	r.logger.Info("result recorded",
		zap.String("result_id", res.ID),
		zap.String("assessment_id", res.AssessmentID),
		zap.Int("score", res.Score),
		zap.Int("concepts", len(res.ConceptScores)),
	)
	return nil
}
