package models

import (
	"gmotors/src/types"
	"time"

	"github.com/google/uuid"
)

// EmailQueue rows are written first and delivered best-effort; the
// scheduler drains queued rows so a dead SMTP link never loses mail.
type EmailQueue struct {
	ID         uuid.UUID         `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Recipient  string            `gorm:"size:120" json:"recipient,omitempty"`
	Subject    string            `gorm:"size:200" json:"subject,omitempty"`
	Body       string            `json:"body,omitempty"`
	Html       bool              `gorm:"default:false" json:"html,omitempty"`
	Attachment []byte            `json:"-"`
	Status     types.EmailStatus `gorm:"size:10;default:'queued';index" json:"status,omitempty"`
	Attempts   int               `gorm:"default:0" json:"attempts,omitempty"`
	LastError  *string           `gorm:"size:500" json:"last_error,omitempty"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`

	types.Timestamps
}
