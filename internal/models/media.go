package models

import "gorm.io/gorm"

type Media struct {
	gorm.Model

	Filename     string `gorm:"uniqueIndex;not null"`
	OriginalName string `gorm:"not null"`
	MimeType     string `gorm:"not null"`
	Size         int64  `gorm:"not null"`
	URL          string `gorm:"not null"`
	Alt          *string
	Category     string `gorm:"not null;index"` // "image" or "document"
}
