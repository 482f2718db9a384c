package models

import "gmotors/src/types"

type ServiceCategory struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:100" json:"name,omitempty"`
	Icon        string  `gorm:"size:50" json:"icon,omitempty"`
	Description *string `gorm:"size:500" json:"description,omitempty"`

	Services []CarService `gorm:"foreignKey:category_id" json:"services,omitempty"`

	types.Timestamps
}

type CarService struct {
	ID              uint    `gorm:"primarykey" json:"id"`
	Name            string  `gorm:"size:150" json:"name,omitempty"`
	Slug            string  `gorm:"uniqueIndex;size:160" json:"slug,omitempty"`
	CategoryID      uint    `json:"category_id,omitempty"`
	Description     *string `gorm:"size:1000" json:"description,omitempty"`
	Price           float64 `json:"price,omitempty"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	Icon            string  `gorm:"size:50" json:"icon,omitempty"`
	Includes        string  `gorm:"size:1000" json:"includes,omitempty"`
	IsPopular       bool    `gorm:"default:false" json:"is_popular,omitempty"`
	IsActive        bool    `gorm:"default:true" json:"is_active"`

	Category *ServiceCategory `gorm:"foreignKey:category_id" json:"category,omitempty"`
	Bookings []ServiceBooking `gorm:"foreignKey:service_id" json:"bookings,omitempty"`

	types.Timestamps
}
