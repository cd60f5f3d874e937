package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog rows are append-only: created once, never updated or deleted.
// ActorID is kept as an opaque reference so entries survive actor deletion.
type AuditLog struct {
	ID        uint           `gorm:"primaryKey"`
	OrgID     uint           `gorm:"not null;index"`
	ActorID   *uint          `gorm:"index"`
	Action    string         `gorm:"not null"`
	Resource  *string
	Before    datatypes.JSON `gorm:"type:jsonb"`
	After     datatypes.JSON `gorm:"type:jsonb"`
	IP        *string
	UA        *string
	CreatedAt time.Time

	// Relationships
	Organization Organization `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
