package handlers

import (
	"log"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/audit"
	"github.com/lodestone-dev/lodestone/internal/authz"
	"github.com/lodestone-dev/lodestone/internal/models"
	"github.com/lodestone-dev/lodestone/internal/types"
	"gorm.io/gorm"
)

type CreateOrgRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

var orgNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)

func ListOrgs(ctx *gin.Context) {
	user, err := authz.RequireAuth(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	var memberships []models.Membership

	err = db.DB.
		Preload("Organization").
		Where("user_id = ?", user.ID).
		Order("org_id asc").
		Find(&memberships).Error

	if err != nil {
		log.Printf("Failed to list orgs for user %d: %v", user.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve organizations"})
		return
	}

	response := make([]types.OrgResponse, 0, len(memberships))

	for _, m := range memberships {
		response = append(response, types.OrgResponse{
			ID:   m.Organization.ID,
			Name: m.Organization.Name,
			Role: string(m.Role),
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateOrg creates an organization with the caller as its OWNER, in one
// transaction so the org can never exist without an owner.
func CreateOrg(ctx *gin.Context) {
	user, err := authz.RequireAuth(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	var body CreateOrgRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !orgNamePattern.MatchString(body.Name) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Organization name may only contain letters, digits, spaces, hyphens and underscores"})
		return
	}

	var org models.Organization

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		org = models.Organization{Name: body.Name}

		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		membership := models.Membership{
			UserID: user.ID,
			OrgID:  org.ID,
			Role:   models.RoleOwner,
			Status: models.StatusActive,
		}

		return tx.Create(&membership).Error
	})

	if err != nil {
		log.Printf("Failed to create organization: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
		return
	}

	audit.RecordOrLog(ctx, audit.Entry{
		OrgID:    org.ID,
		ActorID:  &user.ID,
		Action:   "ORG_CREATE",
		Resource: orgResource(org.ID),
		After:    gin.H{"id": org.ID, "name": org.Name},
	})

	ctx.JSON(http.StatusCreated, gin.H{"id": org.ID, "name": org.Name})
}
