package models

import "gmotors/src/types"

type Department struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:120" json:"name,omitempty"`
	Description *string `gorm:"size:300" json:"description,omitempty"`

	Technicians []TechnicianProfile `gorm:"foreignKey:department_id" json:"technicians,omitempty"`

	types.Timestamps
}

// One profile row per user, enforced by the unique index on user_id.
type TechnicianProfile struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	UserID         uint   `gorm:"uniqueIndex" json:"user_id,omitempty"`
	Name           string `gorm:"size:120" json:"name,omitempty"`
	Specialization string `gorm:"size:120" json:"specialization,omitempty"`
	DepartmentID   *uint  `json:"department_id,omitempty"`

	User       *User          `gorm:"foreignKey:user_id" json:"-"`
	Department *Department    `gorm:"foreignKey:department_id" json:"department,omitempty"`
	Slots      []Availability `gorm:"foreignKey:technician_id" json:"slots,omitempty"`

	types.Timestamps
}

type CustomerProfile struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	UserID  uint   `gorm:"uniqueIndex" json:"user_id,omitempty"`
	Name    string `gorm:"size:120" json:"name,omitempty"`
	Contact string `gorm:"size:40" json:"contact,omitempty"`

	User *User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
