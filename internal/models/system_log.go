package models

import (
	"time"

	"gorm.io/datatypes"
)

type SystemLog struct {
	ID        uint           `gorm:"primaryKey"`
	Level     string         `gorm:"not null;index"` // "INFO", "WARN", "ERROR"
	Message   string         `gorm:"not null"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	IP        *string
	UserAgent *string
	CreatedAt time.Time
}
