package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseEntity struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)" bson:"_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"index" bson:"created_at"`
}

// Prepare assigns an id and a creation timestamp when they are still empty.
func (base *BaseEntity) Prepare(now time.Time) {
	if base.ID == "" {
		base.ID = NewID()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
}

func (base *BaseEntity) BeforeCreate(tx *gorm.DB) error {
	base.Prepare(time.Now().UTC())
	return nil
}

func NewID() string {
	return uuid.New().String()
}
