package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"copydesk/internal/usecase/lifecycle"
)

var pendingSince = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

func at(hours float64) time.Time {
	return pendingSince.Add(time.Duration(hours * float64(time.Hour)))
}

func TestClockStatusBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		elapsedHours float64
		wantUrgency  lifecycle.Urgency
		wantExpired  bool
	}{
		{"fresh", 1, lifecycle.UrgencyNormal, false},
		{"just before warning", 71.9, lifecycle.UrgencyNormal, false},
		{"warning band", 72, lifecycle.UrgencyWarning, false},
		{"critical starts at 96h elapsed", 96, lifecycle.UrgencyCritical, false},
		{"one hour before deadline", 119, lifecycle.UrgencyCritical, false},
		{"at deadline", 120, lifecycle.UrgencyCritical, true},
		{"past deadline", 121, lifecycle.UrgencyCritical, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := lifecycle.ClockStatus(pendingSince, at(tt.elapsedHours), lifecycle.DefaultSLAHours)
			assert.InDelta(t, tt.elapsedHours, report.HoursElapsed, 1e-9)
			assert.InDelta(t, lifecycle.DefaultSLAHours-tt.elapsedHours, report.HoursRemaining, 1e-9)
			assert.Equal(t, tt.wantUrgency, report.Urgency)
			assert.Equal(t, tt.wantExpired, report.Expired)
		})
	}
}

// Repeated polling recomputes from the stored timestamp, so two calls at the
// same instant are identical regardless of how many calls happened in between.
func TestClockStatusStateless(t *testing.T) {
	now := at(50)
	first := lifecycle.ClockStatus(pendingSince, now, lifecycle.DefaultSLAHours)
	for i := 0; i < 100; i++ {
		lifecycle.ClockStatus(pendingSince, at(float64(i)), lifecycle.DefaultSLAHours)
	}
	second := lifecycle.ClockStatus(pendingSince, now, lifecycle.DefaultSLAHours)
	assert.Equal(t, first, second)
}

func TestClockStatusDefaultsSLA(t *testing.T) {
	report := lifecycle.ClockStatus(pendingSince, at(119), 0)
	assert.False(t, report.Expired)

	report = lifecycle.ClockStatus(pendingSince, at(121), 0)
	assert.True(t, report.Expired)
}
