package models

import "gorm.io/gorm"

// Role is the closed set of roles a member can hold within an organization.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// MembershipStatus tracks the invite lifecycle: PENDING until accepted, then ACTIVE.
type MembershipStatus string

const (
	StatusActive  MembershipStatus = "ACTIVE"
	StatusPending MembershipStatus = "PENDING"
)

func (s MembershipStatus) Valid() bool {
	return s == StatusActive || s == StatusPending
}

type Membership struct {
	gorm.Model

	UserID uint             `gorm:"not null;uniqueIndex:idx_user_org"`
	OrgID  uint             `gorm:"not null;uniqueIndex:idx_user_org"`
	Role   Role             `gorm:"type:varchar(16);not null"`
	Status MembershipStatus `gorm:"type:varchar(16);not null;default:ACTIVE"`

	// Relationships
	User         User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Organization Organization `gorm:"foreignKey:OrgID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
