package automatic

import (
	"maps"
	"slices"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"

	"github.com/domino14/rookery/stats"
)

// Summary aggregates finished self-play games. It is safe for concurrent
// use by the game workers.
type Summary struct {
	mu      sync.Mutex
	results map[string]int
	length  stats.Statistic
	score   stats.Statistic
	lengths []float64
}

func NewSummary() *Summary {
	return &Summary{results: make(map[string]int)}
}

// Add records a finished game. The score is the last searched score of the
// game, from white's point of view.
func (s *Summary) Add(rec *GameRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[rec.Result]++
	s.length.Push(float64(len(rec.Plies)))
	s.lengths = append(s.lengths, float64(len(rec.Plies)))
	if n := len(rec.Plies); n > 0 {
		s.score.Push(rec.Plies[n-1].Score)
	}
}

func (s *Summary) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.length.Count()
}

func (s *Summary) Results() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.results)
}

func (s *Summary) MeanLength() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.length.Mean()
}

// LengthInterval is the confidence interval, in percent, of the mean game
// length.
func (s *Summary) LengthInterval(confidence float64) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.length.ConfidenceInterval(confidence)
}

func (s *Summary) MeanFinalScore() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score.Mean()
}

// LengthHistogram buckets the game lengths into bins bins.
func (s *Summary) LengthHistogram(bins int) histogram.Histogram {
	s.mu.Lock()
	lengths := slices.Clone(s.lengths)
	s.mu.Unlock()
	return histogram.Hist(bins, lengths)
}

// MarshalZerologObject lets a summary be logged with Object.
func (s *Summary) MarshalZerologObject(e *zerolog.Event) {
	lo, hi := s.LengthInterval(95)
	e.Int("games", s.Games()).
		Float64("mean-plies", s.MeanLength()).
		Float64("plies-ci95-lo", lo).
		Float64("plies-ci95-hi", hi).
		Float64("mean-final-score", s.MeanFinalScore())
	for result, n := range s.Results() {
		e.Int(result, n)
	}
}
