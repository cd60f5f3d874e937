package models

import "gorm.io/gorm"

// ContactStatus is the review lifecycle of an inbound contact form.
type ContactStatus string

const (
	ContactNew       ContactStatus = "NEW"
	ContactReviewed  ContactStatus = "REVIEWED"
	ContactResponded ContactStatus = "RESPONDED"
	ContactClosed    ContactStatus = "CLOSED"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactReviewed, ContactResponded, ContactClosed:
		return true
	}
	return false
}

type ContactForm struct {
	gorm.Model

	Name       string        `gorm:"not null"`
	Email      string        `gorm:"not null;index"`
	Phone      *string
	Company    *string
	Service    string        `gorm:"not null;index"`
	SubService *string
	Message    string        `gorm:"not null"`
	Status     ContactStatus `gorm:"type:varchar(16);not null;default:NEW;index"`
}
