package model

import (
	"time"

	"gorm.io/gorm"
)

type PostModel struct {
	ID       string `gorm:"type:uuid;primary_key" json:"id"`
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	Caption  string `gorm:"type:text;not null" json:"caption"`
	URL      string `gorm:"type:varchar(500);not null" json:"url"`
	FileType string `gorm:"type:varchar(10);not null" json:"file_type"`
	FileName string `gorm:"type:varchar(255);not null" json:"file_name"`
	// Seq records insertion order and breaks created_at ties in the feed.
	// Unique so concurrent writers cannot claim the same slot.
	Seq       int64          `gorm:"not null;uniqueIndex" json:"-"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PostModel) TableName() string {
	return "posts"
}
