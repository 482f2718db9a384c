package utils

import (
	"errors"

	"gorm.io/gorm"

	"gmotors/src/models"
)

var (
	ErrSlotTaken         = errors.New("slot is no longer available")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ReserveSlot flips the availability flag only if it is still set, so two
// customers racing for the same slot cannot both win.
func ReserveSlot(tx *gorm.DB, slotId uint) error {
	result := tx.
		Model(&models.Availability{}).
		Where("id = ? AND is_available = ?", slotId, true).
		Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotTaken
	}
	return nil
}

// ReleaseSlot re-opens a previously reserved slot.
func ReleaseSlot(tx *gorm.DB, slotId uint) error {
	return tx.
		Model(&models.Availability{}).
		Where("id = ?", slotId).
		Update("is_available", true).
		Error
}

// DecrementStock subtracts quantity guarded by the current level, failing
// instead of going negative.
func DecrementStock(tx *gorm.DB, partId uint, quantity int) error {
	result := tx.
		Model(&models.SparePart{}).
		Where("id = ? AND stock_quantity >= ?", partId, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// RestoreStock adds quantity back after a cancellation.
func RestoreStock(tx *gorm.DB, partId uint, quantity int) error {
	return tx.
		Model(&models.SparePart{}).
		Where("id = ?", partId).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).
		Error
}

func DecrementAccessoryStock(tx *gorm.DB, accessoryId uint, quantity int) error {
	result := tx.
		Model(&models.CarAccessory{}).
		Where("id = ? AND stock_quantity >= ?", accessoryId, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func RestoreAccessoryStock(tx *gorm.DB, accessoryId uint, quantity int) error {
	return tx.
		Model(&models.CarAccessory{}).
		Where("id = ?", accessoryId).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity)).
		Error
}
