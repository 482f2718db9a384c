package models

import (
	"gmotors/src/types"

	"github.com/google/uuid"
)

type Payment struct {
	ID                uuid.UUID           `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderID           *uint               `json:"order_id,omitempty"`
	BookingID         *uint               `json:"booking_id,omitempty"`
	Kind              types.PaymentKind   `gorm:"size:10" json:"kind,omitempty"`
	Amount            float64             `json:"amount,omitempty"`
	Currency          string              `gorm:"size:3;default:'inr'" json:"currency,omitempty"`
	Method            string              `gorm:"size:30" json:"method,omitempty"`
	Status            types.PaymentStatus `gorm:"size:20;default:'Pending'" json:"status,omitempty"`
	CheckoutSessionId *string             `json:"-"`
	Metadata          *types.JSONB        `gorm:"type:jsonb" json:"metadata,omitempty"`

	Order   *PartOrder      `gorm:"foreignKey:order_id" json:"order,omitempty"`
	Booking *ServiceBooking `gorm:"foreignKey:booking_id" json:"booking,omitempty"`

	types.Timestamps
}
