package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusWithdrawn.Valid())
	assert.False(t, ApplicationStatus("archived").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{StatusPending, StatusReviewing, true},
		{StatusPending, StatusInterview, true},
		{StatusPending, StatusRejected, true},
		{StatusReviewing, StatusAccepted, true},
		{StatusInterview, StatusRejected, true},
		{StatusRejected, StatusAccepted, false},
		{StatusAccepted, StatusRejected, false},
		{StatusWithdrawn, StatusPending, false},
		{StatusInterview, StatusReviewing, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestActivityAction(t *testing.T) {
	assert.Equal(t, "status_interview", ActivityAction(StatusInterview))
}
