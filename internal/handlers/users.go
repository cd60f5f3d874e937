package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/audit"
	"github.com/lodestone-dev/lodestone/internal/authz"
	"github.com/lodestone-dev/lodestone/internal/models"
	"github.com/lodestone-dev/lodestone/internal/types"
	"github.com/lodestone-dev/lodestone/internal/utils"
)

type UpdateUserRequest struct {
	Email *string `json:"email" binding:"omitempty,email"`
	Name  *string `json:"name"`
}

func ListUsers(ctx *gin.Context) {
	var users []models.User

	if err := db.DB.Order("created_at desc").Find(&users).Error; err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	userID, err := utils.GetUserIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		log.Printf("Failed to fetch user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// UpdateUser updates a user's profile. Users may always update themselves;
// ADMIN/OWNER of the caller's org may update others.
func UpdateUser(ctx *gin.Context) {
	userID, err := utils.GetUserIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	actor, _, err := authz.RequireSelfOrRole(ctx, orgID, userID, models.RoleAdmin, models.RoleOwner)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	var target models.User

	if err := db.DB.First(&target, userID).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		log.Printf("Failed to fetch user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var body UpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	before := types.UserResponse{ID: target.ID, Email: target.Email, Name: target.Name}

	updates := make(map[string]interface{})

	if body.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*body.Email))
	}

	if body.Name != nil {
		updates["name"] = *body.Name
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&target).Updates(updates).Error; err != nil {
		if db.IsUniqueViolation(err) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		log.Printf("Failed to update user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&target, userID).Error; err != nil {
		log.Printf("Failed to refresh user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	after := types.UserResponse{ID: target.ID, Email: target.Email, Name: target.Name}

	audit.RecordOrLog(ctx, audit.Entry{
		OrgID:    orgID,
		ActorID:  &actor.ID,
		Action:   "USER_UPDATE",
		Resource: userResource(userID),
		Before:   before,
		After:    after,
	})

	ctx.JSON(http.StatusOK, after)
}

// DeleteUser removes a user account. Same self-or-privileged guard as
// UpdateUser; the membership cascade is handled by the datastore.
func DeleteUser(ctx *gin.Context) {
	userID, err := utils.GetUserIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	actor, _, err := authz.RequireSelfOrRole(ctx, orgID, userID, models.RoleAdmin, models.RoleOwner)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	var target models.User

	if err := db.DB.First(&target, userID).Error; err != nil {
		if db.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		log.Printf("Failed to fetch user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	before := types.UserResponse{ID: target.ID, Email: target.Email, Name: target.Name}

	if err := db.DB.Delete(&target).Error; err != nil {
		log.Printf("Failed to delete user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	audit.RecordOrLog(ctx, audit.Entry{
		OrgID:    orgID,
		ActorID:  &actor.ID,
		Action:   "USER_DELETE",
		Resource: userResource(userID),
		Before:   before,
	})

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
