package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferralStatus_Valid(t *testing.T) {
	assert.True(t, ReferralPending.Valid())
	assert.True(t, ReferralInProgress.Valid())
	assert.True(t, ReferralCompleted.Valid())
	assert.True(t, ReferralCancelled.Valid())
	assert.False(t, ReferralStatus("Open").Valid())
	assert.False(t, ReferralStatus("").Valid())
}

func TestReferralStatus_Transitions(t *testing.T) {
	assert.True(t, ReferralPending.CanTransitionTo(ReferralInProgress))
	assert.True(t, ReferralPending.CanTransitionTo(ReferralCancelled))
	assert.True(t, ReferralInProgress.CanTransitionTo(ReferralCompleted))
	assert.True(t, ReferralInProgress.CanTransitionTo(ReferralCancelled))

	// Terminal states stay terminal.
	assert.False(t, ReferralCompleted.CanTransitionTo(ReferralInProgress))
	assert.False(t, ReferralCancelled.CanTransitionTo(ReferralPending))

	// Re-asserting the current status is a no-op, not an error.
	assert.True(t, ReferralCompleted.CanTransitionTo(ReferralCompleted))
}

func TestDetailStatus_Valid(t *testing.T) {
	for _, s := range []DetailStatus{DetailReferred, DetailContacted, DetailScheduled, DetailEstimated, DetailSelected, DetailInProgress, DetailCompleted} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, DetailStatus("Done").Valid())
}

func TestDetailStatus_ForwardOnly(t *testing.T) {
	assert.True(t, DetailReferred.CanTransitionTo(DetailContacted))
	assert.True(t, DetailContacted.CanTransitionTo(DetailScheduled))
	assert.True(t, DetailContacted.CanTransitionTo(DetailEstimated))
	assert.True(t, DetailScheduled.CanTransitionTo(DetailSelected))
	assert.True(t, DetailSelected.CanTransitionTo(DetailInProgress))
	assert.True(t, DetailInProgress.CanTransitionTo(DetailCompleted))

	// Skipping forward is allowed.
	assert.True(t, DetailReferred.CanTransitionTo(DetailScheduled))
	assert.True(t, DetailContacted.CanTransitionTo(DetailCompleted))

	// Backwards never is.
	assert.False(t, DetailContacted.CanTransitionTo(DetailReferred))
	assert.False(t, DetailCompleted.CanTransitionTo(DetailInProgress))
	assert.False(t, DetailSelected.CanTransitionTo(DetailContacted))
}

func TestDetailStatus_ScheduledEstimatedInterchange(t *testing.T) {
	assert.True(t, DetailScheduled.CanTransitionTo(DetailEstimated))
	assert.True(t, DetailEstimated.CanTransitionTo(DetailScheduled))
	assert.True(t, DetailScheduled.CanTransitionTo(DetailScheduled))
}
