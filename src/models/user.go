package models

import (
	"gmotors/src/types"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:80" json:"username,omitempty"`
	Email        string     `gorm:"uniqueIndex;size:120" json:"email,omitempty"`
	PasswordHash string     `gorm:"size:200" json:"-"`
	Role         types.Role `gorm:"size:20" json:"role,omitempty"`
	LastActive   *time.Time `json:"last_active,omitempty"`

	TechnicianProfile *TechnicianProfile `gorm:"foreignKey:user_id" json:"technician_profile,omitempty"`
	CustomerProfile   *CustomerProfile   `gorm:"foreignKey:user_id" json:"customer_profile,omitempty"`

	types.Timestamps
}

func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
