package models

import "gmotors/src/types"

// PartOrder pricing fields are computed once by the pricing calculator at
// creation; advance_amount + remaining_amount always equals total_price.
type PartOrder struct {
	ID                 uint                `gorm:"primarykey" json:"id"`
	OrderNumber        string              `gorm:"uniqueIndex;size:20" json:"order_number,omitempty"`
	CustomerID         *uint               `json:"customer_id,omitempty"`
	CustomerName       string              `gorm:"size:120" json:"customer_name,omitempty"`
	CustomerPhone      string              `gorm:"size:20" json:"customer_phone,omitempty"`
	CustomerEmail      string              `gorm:"size:120" json:"customer_email,omitempty"`
	PartID             *uint               `json:"part_id,omitempty"`
	AccessoryID        *uint               `json:"accessory_id,omitempty"`
	Quantity           int                 `gorm:"default:1" json:"quantity,omitempty"`
	UnitPrice          float64             `json:"unit_price,omitempty"`
	Subtotal           float64             `json:"subtotal,omitempty"`
	InstallationNeeded bool                `gorm:"default:false" json:"installation_required,omitempty"`
	InstallationCharge float64             `json:"installation_charge,omitempty"`
	TotalPrice         float64             `json:"total_price,omitempty"`
	AdvanceAmount      float64             `json:"advance_amount,omitempty"`
	RemainingAmount    float64             `json:"remaining_amount,omitempty"`
	CarBrand           string              `gorm:"size:50" json:"car_brand,omitempty"`
	CarModel           string              `gorm:"size:100" json:"car_model,omitempty"`
	CarYear            *int                `json:"car_year,omitempty"`
	Status             types.OrderStatus   `gorm:"size:20;default:'Pending'" json:"status,omitempty"`
	PaymentStatus      types.PaymentStatus `gorm:"size:20;default:'Pending'" json:"payment_status,omitempty"`
	Notes              string              `gorm:"size:500" json:"notes,omitempty"`

	Customer  *CustomerProfile `gorm:"foreignKey:customer_id" json:"customer,omitempty"`
	Part      *SparePart       `gorm:"foreignKey:part_id" json:"part,omitempty"`
	Accessory *CarAccessory    `gorm:"foreignKey:accessory_id" json:"accessory,omitempty"`
	Payments  []Payment        `gorm:"foreignKey:order_id" json:"payments,omitempty"`

	types.Timestamps
}
