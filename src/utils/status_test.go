package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gmotors/src/types"
)

func TestBookingTransitions(t *testing.T) {
	assert.True(t, CanTransitionBooking(types.BOOKING_PENDING, types.BOOKING_CONFIRMED))
	assert.True(t, CanTransitionBooking(types.BOOKING_PENDING, types.BOOKING_CANCELLED))
	assert.True(t, CanTransitionBooking(types.BOOKING_CONFIRMED, types.BOOKING_IN_PROGRESS))
	assert.True(t, CanTransitionBooking(types.BOOKING_IN_PROGRESS, types.BOOKING_COMPLETED))

	// terminal states stay terminal
	assert.False(t, CanTransitionBooking(types.BOOKING_COMPLETED, types.BOOKING_CANCELLED))
	assert.False(t, CanTransitionBooking(types.BOOKING_CANCELLED, types.BOOKING_PENDING))
	// no skipping ahead
	assert.False(t, CanTransitionBooking(types.BOOKING_PENDING, types.BOOKING_COMPLETED))
	assert.False(t, CanTransitionBooking(types.BOOKING_CONFIRMED, types.BOOKING_COMPLETED))
}

func TestOrderTransitions(t *testing.T) {
	assert.True(t, CanTransitionOrder(types.ORDER_PENDING, types.ORDER_CONFIRMED))
	assert.True(t, CanTransitionOrder(types.ORDER_CONFIRMED, types.ORDER_PROCESSING))
	assert.True(t, CanTransitionOrder(types.ORDER_PROCESSING, types.ORDER_SHIPPED))
	assert.True(t, CanTransitionOrder(types.ORDER_SHIPPED, types.ORDER_DELIVERED))

	// a shipped order is past the point of cancellation
	assert.False(t, CanTransitionOrder(types.ORDER_SHIPPED, types.ORDER_CANCELLED))
	assert.False(t, CanTransitionOrder(types.ORDER_DELIVERED, types.ORDER_CANCELLED))
	assert.False(t, CanTransitionOrder(types.ORDER_CANCELLED, types.ORDER_CONFIRMED))
	assert.False(t, CanTransitionOrder(types.ORDER_PENDING, types.ORDER_DELIVERED))
}

func TestActiveBookingStatuses(t *testing.T) {
	assert.True(t, IsActiveBookingStatus(types.BOOKING_PENDING))
	assert.True(t, IsActiveBookingStatus(types.BOOKING_CONFIRMED))
	assert.True(t, IsActiveBookingStatus(types.BOOKING_IN_PROGRESS))
	assert.False(t, IsActiveBookingStatus(types.BOOKING_COMPLETED))
	assert.False(t, IsActiveBookingStatus(types.BOOKING_CANCELLED))
}
