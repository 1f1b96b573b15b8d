package models

import "time"

// Image holds uploaded image bytes when images are kept in the database.
type Image struct {
	StorageKey  string `gorm:"type:varchar(255);primarykey"`
	ContentType string `gorm:"type:varchar(100);not null"`
	Data        []byte `gorm:"not null"`
	CreatedAt   time.Time
}
