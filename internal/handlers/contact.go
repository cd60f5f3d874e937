package handlers

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/models"
	"github.com/lodestone-dev/lodestone/internal/services"
	"github.com/lodestone-dev/lodestone/internal/utils"
)

type ContactFormRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Service    string `json:"service" binding:"required"`
	SubService string `json:"sub_service"`
	Message    string `json:"message" binding:"required,min=10"`
}

type UpdateContactRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateContact is the public intake endpoint. The admin notification and
// the intake log are fired off the request path; their failure never blocks
// or fails the submission.
func CreateContact(ctx *gin.Context) {
	var body ContactFormRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	contact := models.ContactForm{
		Name:    body.Name,
		Email:   body.Email,
		Service: body.Service,
		Message: body.Message,
		Status:  models.ContactNew,
	}

	if body.Phone != "" {
		contact.Phone = &body.Phone
	}

	if body.Company != "" {
		contact.Company = &body.Company
	}

	if body.SubService != "" {
		contact.SubService = &body.SubService
	}

	if err := db.DB.Create(&contact).Error; err != nil {
		log.Printf("Failed to save contact form: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contact form"})
		return
	}

	ip := utils.ClientIP(ctx)
	ua := ctx.GetHeader("User-Agent")

	go func(contact models.ContactForm, ip, ua string) {
		webhookURL := os.Getenv("ADMIN_WEBHOOK_URL")

		if err := services.SendContactNotification(webhookURL, contact); err != nil {
			log.Printf("Failed to send contact notification: %v", err)
			writeSystemLog("ERROR", "Contact notification delivery failed", gin.H{
				"error":      err.Error(),
				"contact_id": contact.ID,
			}, ip, ua)
			return
		}

		writeSystemLog("INFO", "New contact form received", gin.H{
			"contact_id": contact.ID,
			"service":    contact.Service,
			"name":       contact.Name,
			"email":      contact.Email,
		}, ip, ua)
	}(contact, ip, ua)

	ctx.JSON(http.StatusCreated, gin.H{
		"id":         contact.ID,
		"status":     contact.Status,
		"created_at": contact.CreatedAt,
	})
}

func ListContacts(ctx *gin.Context) {
	limit, offset := pagination(ctx)

	query := db.DB.Model(&models.ContactForm{})

	if status := ctx.Query("status"); status != "" {
		if !models.ContactStatus(status).Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count contact forms: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact forms"})
		return
	}

	var contacts []models.ContactForm

	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&contacts).Error; err != nil {
		log.Printf("Failed to list contact forms: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact forms"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": contacts,
		"pagination": gin.H{
			"total":    total,
			"limit":    limit,
			"offset":   offset,
			"has_more": int64(offset+limit) < total,
		},
	})
}

func UpdateContact(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Contact form ID is required"})
		return
	}

	var body UpdateContactRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	status := models.ContactStatus(body.Status)

	if !status.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status must be NEW, REVIEWED, RESPONDED or CLOSED"})
		return
	}

	var contact models.ContactForm

	if err := db.DB.First(&contact, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact form not found"})
			return
		}
		log.Printf("Failed to fetch contact form %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&contact).Update("status", status).Error; err != nil {
		log.Printf("Failed to update contact form %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact form"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "data": contact})
}

func DeleteContact(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Contact form ID is required"})
		return
	}

	var contact models.ContactForm

	if err := db.DB.First(&contact, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact form not found"})
			return
		}
		log.Printf("Failed to fetch contact form %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Unscoped().Delete(&contact).Error; err != nil {
		log.Printf("Failed to delete contact form %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact form"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func pagination(ctx *gin.Context) (int, int) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	if err != nil || limit < 1 {
		limit = 20
	}

	if limit > 100 {
		limit = 100
	}

	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
