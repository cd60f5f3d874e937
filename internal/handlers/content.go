package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/models"
)

type CreateContentRequest struct {
	Key      string `json:"key" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Locale   string `json:"locale"`
	IsActive *bool  `json:"is_active"`
}

type UpdateContentRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"is_active"`
}

const defaultLocale = "tr"

// GetContent returns a single entry when ?key= is given, otherwise lists the
// locale's entries.
func GetContent(ctx *gin.Context) {
	locale := ctx.DefaultQuery("locale", defaultLocale)

	if key := ctx.Query("key"); key != "" {
		var content models.Content

		err := db.DB.Where("key = ? AND locale = ?", key, locale).First(&content).Error

		if err != nil {
			if db.IsNotFound(err) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
				return
			}
			log.Printf("Failed to fetch content %s/%s: %v", key, locale, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"data": content})
		return
	}

	isActive := ctx.DefaultQuery("active", "true") != "false"

	var contents []models.Content

	err := db.DB.
		Where("locale = ? AND is_active = ?", locale, isActive).
		Order("key asc, created_at desc").
		Find(&contents).Error

	if err != nil {
		log.Printf("Failed to list contents: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contents"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": contents, "count": len(contents)})
}

func CreateContent(ctx *gin.Context) {
	var body CreateContentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	locale := body.Locale

	if locale == "" {
		locale = defaultLocale
	}

	isActive := true

	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	content := models.Content{
		Key:      body.Key,
		Locale:   locale,
		Title:    body.Title,
		Content:  body.Content,
		IsActive: isActive,
	}

	if err := db.DB.Create(&content).Error; err != nil {
		if db.IsUniqueViolation(err) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "This key and locale combination already exists"})
			return
		}
		log.Printf("Failed to create content: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"data": content})
}

func UpdateContent(ctx *gin.Context) {
	key := ctx.Query("key")

	if key == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Content key is required"})
		return
	}

	locale := ctx.DefaultQuery("locale", defaultLocale)

	var body UpdateContentRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if body.Title != nil {
		updates["title"] = *body.Title
	}

	if body.Content != nil {
		updates["content"] = *body.Content
	}

	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	var content models.Content

	if err := db.DB.Where("key = ? AND locale = ?", key, locale).First(&content).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		log.Printf("Failed to fetch content %s/%s: %v", key, locale, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&content).Updates(updates).Error; err != nil {
		log.Printf("Failed to update content %s/%s: %v", key, locale, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": content})
}

func DeleteContent(ctx *gin.Context) {
	key := ctx.Query("key")

	if key == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Content key is required"})
		return
	}

	locale := ctx.DefaultQuery("locale", defaultLocale)

	var content models.Content

	if err := db.DB.Where("key = ? AND locale = ?", key, locale).First(&content).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
			return
		}
		log.Printf("Failed to fetch content %s/%s: %v", key, locale, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Unscoped().Delete(&content).Error; err != nil {
		log.Printf("Failed to delete content %s/%s: %v", key, locale, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
