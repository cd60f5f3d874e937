package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/models"
	"github.com/lodestone-dev/lodestone/internal/utils"
)

type CreateSystemLogRequest struct {
	Level   string `json:"level" binding:"required"`
	Message string `json:"message" binding:"required"`
	Data    gin.H  `json:"data"`
}

type groupCount struct {
	Label string `json:"label" gorm:"column:label"`
	Count int64  `json:"count" gorm:"column:count"`
}

type monthlyCount struct {
	Month time.Time `json:"month" gorm:"column:month"`
	Count int64     `json:"count" gorm:"column:count"`
}

// AdminDashboard serves the admin views: ?action=stats, recent-contacts or
// system-logs, defaulting to the overview.
func AdminDashboard(ctx *gin.Context) {
	switch ctx.Query("action") {
	case "stats":
		adminStats(ctx)
	case "recent-contacts":
		limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
		if err != nil || limit < 1 {
			limit = 5
		}
		adminRecentContacts(ctx, limit)
	case "system-logs":
		limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}
		adminSystemLogs(ctx, limit, ctx.Query("level"))
	default:
		adminOverview(ctx)
	}
}

func adminOverview(ctx *gin.Context) {
	var totalContacts, newContacts, totalContents, totalMedia int64

	if err := db.DB.Model(&models.ContactForm{}).Count(&totalContacts).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	since := time.Now().Add(-24 * time.Hour)

	if err := db.DB.Model(&models.ContactForm{}).
		Where("created_at >= ?", since).
		Count(&newContacts).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	if err := db.DB.Model(&models.Content{}).
		Where("is_active = ?", true).
		Count(&totalContents).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	if err := db.DB.Model(&models.Media{}).Count(&totalMedia).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	var serviceStats []groupCount

	if err := db.DB.Model(&models.ContactForm{}).
		Select("service as label, count(*) as count").
		Group("service").
		Order("count desc").
		Scan(&serviceStats).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"overview": gin.H{
			"total_contacts": totalContacts,
			"new_contacts":   newContacts,
			"total_contents": totalContents,
			"total_media":    totalMedia,
		},
		"service_stats": serviceStats,
	})
}

func adminStats(ctx *gin.Context) {
	var statusStats []groupCount

	if err := db.DB.Model(&models.ContactForm{}).
		Select("status as label, count(*) as count").
		Group("status").
		Scan(&statusStats).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	var monthlyContacts []monthlyCount

	err := db.DB.Raw(`
		SELECT date_trunc('month', created_at) AS month, COUNT(*) AS count
		FROM contact_forms
		WHERE created_at >= NOW() - INTERVAL '12 months' AND deleted_at IS NULL
		GROUP BY date_trunc('month', created_at)
		ORDER BY month DESC
	`).Scan(&monthlyContacts).Error

	if err != nil {
		adminQueryError(ctx, err)
		return
	}

	var topServices []groupCount

	if err := db.DB.Model(&models.ContactForm{}).
		Select("service as label, count(*) as count").
		Group("service").
		Order("count desc").
		Limit(5).
		Scan(&topServices).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status_stats":     statusStats,
		"monthly_contacts": monthlyContacts,
		"top_services":     topServices,
	})
}

func adminRecentContacts(ctx *gin.Context, limit int) {
	var contacts []models.ContactForm

	err := db.DB.
		Select("id", "name", "email", "service", "status", "created_at").
		Order("created_at desc").
		Limit(limit).
		Find(&contacts).Error

	if err != nil {
		adminQueryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": contacts})
}

func adminSystemLogs(ctx *gin.Context, limit int, level string) {
	query := db.DB.Model(&models.SystemLog{})

	if level != "" {
		query = query.Where("level = ?", level)
	}

	var logs []models.SystemLog

	if err := query.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		adminQueryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": logs})
}

// CreateSystemLog appends an operator-supplied SystemLog row.
func CreateSystemLog(ctx *gin.Context) {
	var body CreateSystemLogRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Level and message are required"})
		return
	}

	writeSystemLog(body.Level, body.Message, body.Data, utils.ClientIP(ctx), ctx.GetHeader("User-Agent"))

	ctx.JSON(http.StatusCreated, gin.H{"ok": true})
}

func adminQueryError(ctx *gin.Context, err error) {
	log.Printf("Admin query failed: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve admin data"})
}
