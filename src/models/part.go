package models

import "gmotors/src/types"

type SparePartCategory struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Name        string  `gorm:"uniqueIndex;size:100" json:"name,omitempty"`
	Icon        string  `gorm:"size:50" json:"icon,omitempty"`
	Color       string  `gorm:"size:20" json:"color,omitempty"`
	ImageURL    string  `gorm:"size:500" json:"image_url,omitempty"`
	Description *string `gorm:"size:500" json:"description,omitempty"`

	Parts []SparePart `gorm:"foreignKey:category_id" json:"parts,omitempty"`

	types.Timestamps
}

type SparePart struct {
	ID               uint    `gorm:"primarykey" json:"id"`
	Name             string  `gorm:"size:150" json:"name,omitempty"`
	Slug             string  `gorm:"uniqueIndex;size:160" json:"slug,omitempty"`
	CategoryID       uint    `json:"category_id,omitempty"`
	PartNumber       *string `gorm:"uniqueIndex;size:100" json:"part_number,omitempty"`
	Brand            string  `gorm:"size:100" json:"brand,omitempty"`
	Price            float64 `json:"price,omitempty"`
	StockQuantity    int     `gorm:"default:0" json:"stock_quantity"`
	ImageURL         string  `gorm:"size:500" json:"image_url,omitempty"`
	Description      *string `gorm:"size:1000" json:"description,omitempty"`
	CompatibleBrands string  `gorm:"size:300" json:"compatible_brands,omitempty"`
	WarrantyMonths   int     `gorm:"default:6" json:"warranty_months,omitempty"`
	IsOEM            bool    `gorm:"column:is_oem;default:false" json:"is_oem,omitempty"`
	IsFeatured       bool    `gorm:"default:false" json:"is_featured,omitempty"`

	Category *SparePartCategory `gorm:"foreignKey:category_id" json:"category,omitempty"`
	Orders   []PartOrder        `gorm:"foreignKey:part_id" json:"orders,omitempty"`

	types.Timestamps
}

type CarAccessory struct {
	ID             uint    `gorm:"primarykey" json:"id"`
	Name           string  `gorm:"size:150" json:"name,omitempty"`
	Slug           string  `gorm:"uniqueIndex;size:160" json:"slug,omitempty"`
	CategoryID     uint    `json:"category_id,omitempty"`
	Price          float64 `json:"price,omitempty"`
	StockQuantity  int     `gorm:"default:0" json:"stock_quantity"`
	ImageURL       string  `gorm:"size:500" json:"image_url,omitempty"`
	Description    *string `gorm:"size:1000" json:"description,omitempty"`
	Features       string  `gorm:"size:500" json:"features,omitempty"`
	CompatibleCars string  `gorm:"size:300" json:"compatible_cars,omitempty"`
	IsFeatured     bool    `gorm:"default:false" json:"is_featured,omitempty"`

	Category *SparePartCategory `gorm:"foreignKey:category_id" json:"category,omitempty"`

	types.Timestamps
}
