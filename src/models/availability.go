package models

import (
	"gmotors/src/types"
	"time"
)

// Availability is one bookable technician slot. The composite unique index
// keeps a technician from offering the same date+time twice; reservation
// flips is_available with a conditional update, never a read-then-write.
type Availability struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	TechnicianID uint      `gorm:"uniqueIndex:idx_tech_slot" json:"technician_id,omitempty"`
	Date         time.Time `gorm:"type:date;uniqueIndex:idx_tech_slot" json:"date,omitempty"`
	Time         string    `gorm:"size:5;uniqueIndex:idx_tech_slot" json:"time,omitempty"`
	IsAvailable  bool      `gorm:"default:true" json:"is_available"`

	Technician *TechnicianProfile `gorm:"foreignKey:technician_id" json:"technician,omitempty"`

	types.Timestamps
}
