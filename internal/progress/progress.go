// Package progress derives per-concept trends and summary statistics from
// the progress history. Everything here is computed on demand from the
// store's contents and never cached.
package progress

import (
	"math"
	"slices"
	"strings"

	"github.com/abhisek/learnboard/internal/catalog"
	"github.com/abhisek/learnboard/internal/certificate"
	"github.com/abhisek/learnboard/internal/scoring"
)

// Record is one point in a concept's score history.
type Record struct {
	ConceptID string `json:"conceptId"`
	Date      string `json:"date"`
	Score     int    `json:"score"`
}

// FromResult expands a result into one record per concept score.
func FromResult(r scoring.Result) []Record {
	out := make([]Record, 0, len(r.ConceptScores))
	for _, cs := range r.ConceptScores {
		out = append(out, Record{ConceptID: cs.ConceptID, Date: r.Date, Score: cs.Score})
	}
	return out
}

// Trend is the direction of a concept's scores over its history.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// trendBand is how far improvement must move before it counts as a trend.
const trendBand = 5

// improvedThreshold is the improvement above which a concept counts as improved.
const improvedThreshold = 10

// OverallWindow is how many of the most recent records feed Overall.
const OverallWindow = 5

// Icon returns the display arrow for a trend.
func (t Trend) Icon() string {
	switch t {
	case TrendUp:
		return "↑"
	case TrendDown:
		return "↓"
	default:
		return "→"
	}
}

// ClassifyTrend maps an improvement delta to a trend.
func ClassifyTrend(improvement int) Trend {
	switch {
	case improvement > trendBand:
		return TrendUp
	case improvement < -trendBand:
		return TrendDown
	default:
		return TrendStable
	}
}

// ConceptTrend summarizes the history of one concept.
type ConceptTrend struct {
	Concept     catalog.Concept
	History     []Record
	First       int
	Latest      int
	Improvement int
	Trend       Trend
}

// History returns the records for conceptID ordered by date. Records on the
// same date keep their original order.
func History(records []Record, conceptID string) []Record {
	var out []Record
	for _, r := range records {
		if r.ConceptID == conceptID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// Trends returns a ConceptTrend for every concept that has history, in the
// order of concepts.
func Trends(records []Record, concepts []catalog.Concept) []ConceptTrend {
	var out []ConceptTrend
	for _, c := range concepts {
		h := History(records, c.ID)
		if len(h) == 0 {
			continue
		}
		first, latest := h[0].Score, h[len(h)-1].Score
		out = append(out, ConceptTrend{
			Concept:     c,
			History:     h,
			First:       first,
			Latest:      latest,
			Improvement: latest - first,
			Trend:       ClassifyTrend(latest - first),
		})
	}
	return out
}

// Overall is the rounded mean score of the last OverallWindow records in
// storage order. It returns 0 when there is no history.
func Overall(records []Record) int {
	if len(records) == 0 {
		return 0
	}
	window := records[max(0, len(records)-OverallWindow):]
	sum := 0
	for _, r := range window {
		sum += r.Score
	}
	return round(float64(sum) / float64(len(window)))
}

// Stats are the headline numbers on the progress view.
type Stats struct {
	TotalAssessments   int `json:"totalAssessments"`
	AverageScore       int `json:"avgScore"`
	CertificatesEarned int `json:"certificatesEarned"`
	ConceptsImproved   int `json:"conceptsImproved"`
}

// Summarize computes headline statistics.
func Summarize(results []scoring.Result, certs []certificate.Certificate, trends []ConceptTrend) Stats {
	s := Stats{
		TotalAssessments:   len(results),
		CertificatesEarned: len(certs),
	}
	if len(results) > 0 {
		sum := 0
		for _, r := range results {
			sum += r.Score
		}
		s.AverageScore = round(float64(sum) / float64(len(results)))
	}
	for _, t := range trends {
		if t.Improvement > improvedThreshold {
			s.ConceptsImproved++
		}
	}
	return s
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}
