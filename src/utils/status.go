package utils

import "gmotors/src/types"

// Legal lifecycle transitions. Anything not listed is rejected, so a
// Completed booking can no longer be cancelled through a form post.
var bookingTransitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_PENDING:     {types.BOOKING_CONFIRMED, types.BOOKING_CANCELLED},
	types.BOOKING_CONFIRMED:   {types.BOOKING_IN_PROGRESS, types.BOOKING_CANCELLED},
	types.BOOKING_IN_PROGRESS: {types.BOOKING_COMPLETED, types.BOOKING_CANCELLED},
	types.BOOKING_COMPLETED:   {},
	types.BOOKING_CANCELLED:   {},
}

var orderTransitions = map[types.OrderStatus][]types.OrderStatus{
	types.ORDER_PENDING:    {types.ORDER_CONFIRMED, types.ORDER_CANCELLED},
	types.ORDER_CONFIRMED:  {types.ORDER_PROCESSING, types.ORDER_CANCELLED},
	types.ORDER_PROCESSING: {types.ORDER_SHIPPED, types.ORDER_CANCELLED},
	types.ORDER_SHIPPED:    {types.ORDER_DELIVERED},
	types.ORDER_DELIVERED:  {},
	types.ORDER_CANCELLED:  {},
}

func CanTransitionBooking(from, to types.BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func CanTransitionOrder(from, to types.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsActiveBookingStatus(s types.BookingStatus) bool {
	return s == types.BOOKING_PENDING || s == types.BOOKING_CONFIRMED || s == types.BOOKING_IN_PROGRESS
}
