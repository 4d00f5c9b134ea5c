package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive(BookingPending))
	assert.True(t, IsActive(BookingConfirmed))
	assert.False(t, IsActive(BookingCancelled))
	assert.False(t, IsActive(BookingCompleted))
	assert.False(t, IsActive("bogus"))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCancelled, BookingCancelled, false},
		{BookingCompleted, BookingCancelled, false},
		{BookingCompleted, BookingCompleted, false},
		{BookingPending, BookingPending, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidTargetStatus(t *testing.T) {
	assert.True(t, ValidTargetStatus(BookingConfirmed))
	assert.True(t, ValidTargetStatus(BookingCancelled))
	assert.True(t, ValidTargetStatus(BookingCompleted))
	assert.False(t, ValidTargetStatus(BookingPending))
	assert.False(t, ValidTargetStatus("EXPIRED"))
}
