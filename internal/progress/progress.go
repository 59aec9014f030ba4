// Package progress measures how far the active track has played and maps
// clicks on the progress strip back onto track positions.
package progress

import (
	"math"
	"time"

	"github.com/jscyril/vinyl_player/api"
	"github.com/jscyril/vinyl_player/internal/timefmt"
)

// DefaultEndEpsilon is how close to the end a track counts as finished.
const DefaultEndEpsilon = 100 * time.Millisecond

// Report is one frame's progress readout.
type Report struct {
	Ratio       float64 // 0..1 share played; 0 when the duration is unknown
	Current     time.Duration
	Total       time.Duration
	CurrentText string
	TotalText   string
	Ended       bool // within the end epsilon of a known duration
}

// Reset is the readout after a stop: nothing played, total still shown.
func Reset(total time.Duration) Report {
	return Measure(0, total, DefaultEndEpsilon)
}

// Measure builds a report from a position and a duration.
func Measure(current, total, epsilon time.Duration) Report {
	r := Report{
		Current:     current,
		Total:       total,
		CurrentText: timefmt.Format(current),
		TotalText:   timefmt.Format(total),
	}
	if total > 0 {
		r.Ratio = math.Max(0, math.Min(1, float64(current)/float64(total)))
		r.Ended = current >= total-epsilon
	}
	return r
}

// Reporter reads progress from the active sound every frame.
type Reporter struct {
	Epsilon time.Duration
}

// NewReporter returns a reporter that treats a track within epsilon of its
// end as finished.
func NewReporter(epsilon time.Duration) *Reporter {
	if epsilon <= 0 {
		epsilon = DefaultEndEpsilon
	}
	return &Reporter{Epsilon: epsilon}
}

// Update measures s. A nil sound reads as an empty report.
func (r *Reporter) Update(s api.Sound) Report {
	if s == nil {
		return Measure(0, 0, r.Epsilon)
	}
	return Measure(s.CurrentTime(), s.Duration(), r.Epsilon)
}

// SeekTarget maps a normalized strip position onto a track position.
// p is clamped to [0,1].
func SeekTarget(p float64, total time.Duration) time.Duration {
	if math.IsNaN(p) || total <= 0 {
		return 0
	}
	p = math.Max(0, math.Min(1, p))
	return time.Duration(p * float64(total))
}
