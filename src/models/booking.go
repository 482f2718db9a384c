package models

import (
	"gmotors/src/types"
	"time"
)

// ServiceBooking holds the reserved slot by foreign key so cancellation
// releases it with a single keyed update instead of a field-match scan.
type ServiceBooking struct {
	ID                  uint                `gorm:"primarykey" json:"id"`
	BookingID           string              `gorm:"uniqueIndex;size:20" json:"booking_id,omitempty"`
	CustomerName        string              `gorm:"size:120" json:"customer_name,omitempty"`
	CustomerPhone       string              `gorm:"size:20" json:"customer_phone,omitempty"`
	CustomerEmail       string              `gorm:"size:120" json:"customer_email,omitempty"`
	VehicleBrand        string              `gorm:"size:50" json:"vehicle_brand,omitempty"`
	VehicleModel        string              `gorm:"size:100" json:"vehicle_model,omitempty"`
	VehicleYear         *int                `json:"vehicle_year,omitempty"`
	VehicleRegistration string              `gorm:"size:50" json:"vehicle_registration,omitempty"`
	ServiceID           uint                `json:"service_id,omitempty"`
	TechnicianID        uint                `json:"technician_id,omitempty"`
	SlotID              *uint               `json:"slot_id,omitempty"`
	Date                time.Time           `gorm:"type:date" json:"date,omitempty"`
	Time                string              `gorm:"size:5" json:"time,omitempty"`
	Status              types.BookingStatus `gorm:"size:20;default:'Pending'" json:"status,omitempty"`
	PaymentStatus       types.PaymentStatus `gorm:"size:20;default:'Pending'" json:"payment_status,omitempty"`
	TotalAmount         float64             `json:"total_amount,omitempty"`
	Notes               string              `gorm:"size:1000" json:"notes,omitempty"`

	Service    *CarService        `gorm:"foreignKey:service_id" json:"service,omitempty"`
	Technician *TechnicianProfile `gorm:"foreignKey:technician_id" json:"technician,omitempty"`
	Slot       *Availability      `gorm:"foreignKey:slot_id" json:"slot,omitempty"`

	types.Timestamps
}
