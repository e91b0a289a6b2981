package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func TestApplicationStatusValid(t *testing.T) {
	for _, s := range []ApplicationStatus{
		StatusNew, StatusReviewing, StatusShortlisted, StatusInterview,
		StatusOffered, StatusRejected, StatusWithdrawn,
	} {
		assert.True(t, s.Valid(), "status %q should be valid", s)
	}

	assert.False(t, ApplicationStatus("pending").Valid())
	assert.False(t, ApplicationStatus("").Valid())
	assert.False(t, ApplicationStatus("NEW").Valid())
}

// The transition table is data; today it permits every move between the
// seven statuses, which this test pins down so a future tightening is a
// deliberate change.
func TestTransitionTableFullyPermissive(t *testing.T) {
	all := []ApplicationStatus{
		StatusNew, StatusReviewing, StatusShortlisted, StatusInterview,
		StatusOffered, StatusRejected, StatusWithdrawn,
	}

	for _, from := range all {
		for _, to := range all {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(ApplicationStatus("bogus"), StatusNew))
}

func TestJobOpen(t *testing.T) {
	now := mustTime(t, "2026-03-01T12:00:00Z")
	past := mustTime(t, "2026-02-01T00:00:00Z")
	future := mustTime(t, "2026-04-01T00:00:00Z")

	open := &Job{IsActive: true, ClosingDate: &future}
	assert.True(t, open.Open(now))

	noDeadline := &Job{IsActive: true}
	assert.True(t, noDeadline.Open(now))

	expired := &Job{IsActive: true, ClosingDate: &past}
	assert.False(t, expired.Open(now))

	inactive := &Job{IsActive: false, ClosingDate: &future}
	assert.False(t, inactive.Open(now))
}
