package handlers

import (
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/models"
	"github.com/lodestone-dev/lodestone/internal/upload"
)

var uploadStore = upload.NewStore(os.Getenv("UPLOAD_DIR"))

func ListMedia(ctx *gin.Context) {
	limit, offset := pagination(ctx)

	query := db.DB.Model(&models.Media{})

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		log.Printf("Failed to count media: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve media"})
		return
	}

	var media []models.Media

	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&media).Error; err != nil {
		log.Printf("Failed to list media: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve media"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": media,
		"pagination": gin.H{
			"total":    total,
			"limit":    limit,
			"offset":   offset,
			"has_more": int64(offset+limit) < total,
		},
	})
}

// UploadMedia accepts a multipart upload, validates type and size, writes the
// file to disk and records it.
func UploadMedia(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	if err := upload.Validate(mimeType, fileHeader.Size); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		log.Printf("Failed to read uploaded file: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	result, err := uploadStore.Save(data, fileHeader.Filename, mimeType)

	if err != nil {
		log.Printf("Failed to store uploaded file: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	media := models.Media{
		Filename:     result.Filename,
		OriginalName: fileHeader.Filename,
		MimeType:     mimeType,
		Size:         result.Size,
		URL:          result.URL,
		Category:     upload.Category(mimeType),
	}

	if alt := ctx.PostForm("alt"); alt != "" {
		media.Alt = &alt
	}

	if err := db.DB.Create(&media).Error; err != nil {
		log.Printf("Failed to save media record: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save media record"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"data":           media,
		"formatted_size": upload.FormatSize(media.Size),
	})
}

// DeleteMedia removes the stored file and its record. A missing physical
// file is logged but does not block removing the record.
func DeleteMedia(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Media ID is required"})
		return
	}

	var media models.Media

	if err := db.DB.First(&media, "id = ?", id).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
			return
		}
		log.Printf("Failed to fetch media %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	removed, err := uploadStore.Delete(media.Filename, media.MimeType)

	if err != nil {
		log.Printf("Failed to delete file %s: %v", media.Filename, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
		return
	}

	if !removed {
		log.Printf("Physical file not found: %s", media.Filename)
	}

	if err := db.DB.Unscoped().Delete(&media).Error; err != nil {
		log.Printf("Failed to delete media record %s: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete media record"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
