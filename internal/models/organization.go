package models

import "gorm.io/gorm"

type Organization struct {
	gorm.Model

	Name string `gorm:"not null"`

	// Relationships
	Memberships []Membership `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AuditLogs   []AuditLog   `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
