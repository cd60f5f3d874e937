package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/audit"
	"github.com/lodestone-dev/lodestone/internal/authz"
	"github.com/lodestone-dev/lodestone/internal/models"
)

type SwitchOrgRequest struct {
	OrgID uint `json:"org_id" binding:"required"`
}

// permissionsFor maps a role to the coarse permission tags served to the
// dashboard client.
func permissionsFor(role models.Role) []string {
	switch role {
	case models.RoleOwner:
		return []string{
			"org.read",
			"org.update",
			"members.list",
			"members.invite",
			"members.remove",
			"members.changeRole",
			"audit.view",
		}
	case models.RoleAdmin:
		return []string{
			"org.read",
			"org.update",
			"members.list",
			"members.invite",
			"members.remove",
			"audit.view",
		}
	default:
		return []string{"org.read", "members.list"}
	}
}

// GetSessionOrg returns the caller's active-org summary: the org, their role
// in it, the derived permission tags and the ACTIVE member count.
func GetSessionOrg(ctx *gin.Context) {
	user, err := authz.RequireAuth(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err == authz.ErrOrgRequired {
		ctx.JSON(http.StatusOK, gin.H{
			"org_id":       nil,
			"organization": nil,
			"role":         nil,
			"permissions":  []string{},
			"member_count": 0,
		})
		return
	}

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	var org models.Organization

	if err := db.DB.First(&org, orgID).Error; err != nil {
		if db.IsNotFound(err) {
			authz.Respond(ctx, authz.ErrForbidden)
			return
		}
		log.Printf("Failed to fetch org %d: %v", orgID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	membership, err := authz.GetMembership(user.ID, orgID)

	if err != nil {
		log.Printf("Failed to fetch membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if membership == nil || membership.Status != models.StatusActive {
		authz.Respond(ctx, authz.ErrForbidden)
		return
	}

	var memberCount int64

	if err := db.DB.Model(&models.Membership{}).
		Where("org_id = ? AND status = ?", orgID, models.StatusActive).
		Count(&memberCount).Error; err != nil {
		log.Printf("Failed to count members for org %d: %v", orgID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"org_id":       orgID,
		"organization": gin.H{"id": org.ID, "name": org.Name},
		"role":         membership.Role,
		"permissions":  permissionsFor(membership.Role),
		"member_count": memberCount,
	})
}

// SwitchOrg updates the caller's stored current org. Requires an ACTIVE
// membership in the target org.
func SwitchOrg(ctx *gin.Context) {
	user, err := authz.RequireAuth(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	var body SwitchOrgRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "org_id is required"})
		return
	}

	membership, err := authz.GetMembership(user.ID, body.OrgID)

	if err != nil {
		log.Printf("Failed to fetch membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if membership == nil || membership.Status != models.StatusActive {
		authz.Respond(ctx, authz.ErrForbidden)
		return
	}

	if err := db.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("current_org_id", body.OrgID).Error; err != nil {
		log.Printf("Failed to switch org for user %d: %v", user.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	audit.RecordOrLog(ctx, audit.Entry{
		OrgID:    body.OrgID,
		ActorID:  &user.ID,
		Action:   "ORG_SWITCH",
		Resource: orgResource(body.OrgID),
	})

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "org_id": body.OrgID})
}
