package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusApproved.Terminal())
	assert.True(t, StatusDone.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestTransitionGuards(t *testing.T) {
	// Approve accepts pending and approved (re-approval with new duration).
	assert.NoError(t, CanApprove(StatusPending))
	assert.NoError(t, CanApprove(StatusApproved))
	assert.Error(t, CanApprove(StatusCancelled))
	assert.Error(t, CanApprove(StatusDone))

	// Reject is pending-only.
	assert.NoError(t, CanReject(StatusPending))
	assert.Error(t, CanReject(StatusApproved))

	// Complete is approved-only.
	assert.NoError(t, CanComplete(StatusApproved))
	assert.Error(t, CanComplete(StatusPending))

	// Cancel covers both live states.
	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusApproved))
	assert.Error(t, CanCancel(StatusRejected))
}

func TestValidActor(t *testing.T) {
	assert.True(t, ValidActor(ActorCustomer))
	assert.True(t, ValidActor(ActorAdmin))
	assert.True(t, ValidActor(ActorSystem))
	assert.False(t, ValidActor("robot"))
}

func TestGuardErrorsArePolicy(t *testing.T) {
	err := CanComplete(StatusPending)
	assert.True(t, IsKind(err, KindPolicy))
	assert.Equal(t, "invalid_state", CodeOf(err))
}
