package lifecycle

import "time"

// DefaultSLAHours is the review window: an article left in pending_review
// this long is escalated automatically.
const DefaultSLAHours = 120

// Urgency bands for the review queue.
type Urgency string

const (
	UrgencyNormal   Urgency = "normal"
	UrgencyWarning  Urgency = "warning"  // 48h or less remaining
	UrgencyCritical Urgency = "critical" // 24h or less remaining
)

// ClockReport describes how much of the review window an article has used.
type ClockReport struct {
	HoursElapsed   float64
	HoursRemaining float64
	Urgency        Urgency
	Expired        bool
}

// ClockStatus computes the review clock for an article that entered
// pending_review at pendingSince, observed at now. It is a pure function:
// callers poll it as often as they like and always recompute from the stored
// timestamp, so repeated evaluation cannot drift.
func ClockStatus(pendingSince, now time.Time, slaHours float64) ClockReport {
	if slaHours <= 0 {
		slaHours = DefaultSLAHours
	}

	elapsed := now.Sub(pendingSince).Hours()
	remaining := slaHours - elapsed

	urgency := UrgencyNormal
	switch {
	case remaining <= 24:
		urgency = UrgencyCritical
	case remaining <= 48:
		urgency = UrgencyWarning
	}

	return ClockReport{
		HoursElapsed:   elapsed,
		HoursRemaining: remaining,
		Urgency:        urgency,
		Expired:        remaining <= 0,
	}
}
