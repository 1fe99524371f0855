package model

import (
	"time"

	"github.com/rs/xid"
	"gorm.io/gorm"
)

// swagger:model
type Base struct {
	ID        string    `gorm:"primaryKey;type:varchar(20)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IDs are xid tokens: globally unique and sortable by creation time.
func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = xid.New().String()
	}
	return
}

func GenerateID() string {
	return xid.New().String()
}
