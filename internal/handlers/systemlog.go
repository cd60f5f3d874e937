package handlers

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/models"
	"gorm.io/datatypes"
)

// writeSystemLog appends a SystemLog row. Best-effort: failures are logged
// and never surfaced to the request that triggered them. ip/ua are passed
// explicitly so callers can log after the request context is gone.
func writeSystemLog(level, message string, data gin.H, ip, ua string) {
	var payload datatypes.JSON

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			log.Printf("Failed to encode system log payload: %v", err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	row := models.SystemLog{
		Level:   level,
		Message: message,
		Data:    payload,
	}

	if ip != "" {
		row.IP = &ip
	}

	if ua != "" {
		row.UserAgent = &ua
	}

	if err := db.DB.Create(&row).Error; err != nil {
		log.Printf("Failed to write system log: %v", err)
	}
}
