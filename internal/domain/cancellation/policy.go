package cancellation

import (
	"math"
	"time"
)

const DefaultCutoff = 24 * time.Hour

// NoticePolicy decides whether a parent may still cancel in the app.
type NoticePolicy struct {
	cutoff time.Duration
}

func NewNoticePolicy(cutoff time.Duration) NoticePolicy {
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	return NoticePolicy{cutoff: cutoff}
}

func (p NoticePolicy) Cutoff() time.Duration { return p.cutoff }

type Notice struct {
	Remaining   time.Duration
	HoursBefore float64
	Late        bool
}

// Evaluate measures the notice given for a session starting at start.
// Exactly cutoff hours of notice is on time.
func (p NoticePolicy) Evaluate(start, now time.Time) Notice {
	remaining := start.Sub(now)
	return Notice{
		Remaining:   remaining,
		HoursBefore: floorHours(remaining),
		Late:        remaining < p.cutoff,
	}
}

// floorHours reports notice in tenths of an hour, rounded down so a late
// cancellation never displays as the full cutoff.
func floorHours(d time.Duration) float64 {
	return math.Floor(d.Hours()*10) / 10
}

// ShouldFloat applies the single-booking rule: only recurring sessions that
// have not started yet earn a makeup credit.
func ShouldFloat(isRecurring bool, start, now time.Time) bool {
	return isRecurring && start.After(now)
}
