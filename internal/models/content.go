package models

import "gorm.io/gorm"

type Content struct {
	gorm.Model

	Key      string `gorm:"not null;uniqueIndex:idx_key_locale"`
	Locale   string `gorm:"not null;uniqueIndex:idx_key_locale;default:tr"`
	Title    string `gorm:"not null"`
	Content  string `gorm:"not null"`
	IsActive bool   `gorm:"default:true"`
}
