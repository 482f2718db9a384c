package models

import "gmotors/src/types"

// CartItem is transient pre-order state. Exactly one of part_id or
// accessory_id is set; re-adding the same item merges quantities.
type CartItem struct {
	ID          uint  `gorm:"primarykey" json:"id"`
	CustomerID  uint  `gorm:"uniqueIndex:idx_cart_line" json:"customer_id,omitempty"`
	PartID      *uint `gorm:"uniqueIndex:idx_cart_line" json:"part_id,omitempty"`
	AccessoryID *uint `gorm:"uniqueIndex:idx_cart_line" json:"accessory_id,omitempty"`
	Quantity    int   `gorm:"default:1" json:"quantity,omitempty"`

	Customer  *CustomerProfile `gorm:"foreignKey:customer_id" json:"-"`
	Part      *SparePart       `gorm:"foreignKey:part_id" json:"part,omitempty"`
	Accessory *CarAccessory    `gorm:"foreignKey:accessory_id" json:"accessory,omitempty"`

	types.Timestamps
}
