package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a persisted book record. Timestamps are owned by the service layer,
// so gorm's automatic tracking is switched off for both.
type Book struct {
	UID         uuid.UUID `gorm:"column:uid;type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Author      string    `gorm:"not null"`
	Publisher   string    `gorm:"not null"`
	PageCount   int       `gorm:"not null"`
	PublishDate Date      `gorm:"not null"`
	Language    string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.UID == uuid.Nil {
		b.UID = uuid.New()
	}
	return
}
