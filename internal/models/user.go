package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  // empty for invited users who have not set a password yet
	Name         *string
	CurrentOrgID *uint `gorm:"index"` // last org the user switched to; last-write-wins

	// Relationships
	Memberships []Membership `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
