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
	"gorm.io/gorm"
)

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type membershipSnapshot struct {
	UserID uint   `json:"user_id"`
	OrgID  uint   `json:"org_id"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func snapshotMembership(m models.Membership) membershipSnapshot {
	return membershipSnapshot{
		UserID: m.UserID,
		OrgID:  m.OrgID,
		Role:   string(m.Role),
		Status: string(m.Status),
	}
}

func ListMembers(ctx *gin.Context) {
	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	if _, _, err := authz.RequireRole(ctx, orgID, models.RoleOwner, models.RoleAdmin); err != nil {
		authz.Respond(ctx, err)
		return
	}

	var memberships []models.Membership

	err = db.DB.
		Preload("User").
		Where("org_id = ?", orgID).
		Order("id asc").
		Find(&memberships).Error

	if err != nil {
		log.Printf("Failed to list members for org %d: %v", orgID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	response := make([]types.MemberResponse, 0, len(memberships))

	for _, m := range memberships {
		response = append(response, types.MemberResponse{
			UserID: m.UserID,
			Email:  m.User.Email,
			Name:   m.User.Name,
			Role:   string(m.Role),
			Status: string(m.Status),
		})
	}

	ctx.JSON(http.StatusOK, response)
}

// inviteConflict maps a unique-index violation onto the same conflict the
// in-transaction checks produce. A concurrent duplicate invite can pass both
// existence checks and still land on the email or (user, org) unique index
// at commit.
func inviteConflict(err error) error {
	if db.IsUniqueViolation(err) {
		return &authz.Error{Status: http.StatusConflict, Code: "already_invited"}
	}
	return err
}

// InviteMember invites an email into the org. An existing ACTIVE or PENDING
// membership is a conflict; a brand-new email gets a passwordless user shell
// plus a PENDING membership in one transaction.
func InviteMember(ctx *gin.Context) {
	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	actor, _, err := authz.RequireRole(ctx, orgID, models.RoleOwner, models.RoleAdmin)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	var body InviteMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	role := models.RoleMember

	if body.Role != "" {
		role = models.Role(body.Role)
		if role == models.RoleOwner || !role.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role must be ADMIN or MEMBER"})
			return
		}
	}

	var invited models.User

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", body.Email).First(&invited).Error

		if err != nil && !db.IsNotFound(err) {
			return err
		}

		if db.IsNotFound(err) {
			invited = models.User{Email: body.Email}
			if err := tx.Create(&invited).Error; err != nil {
				return err
			}
		} else {
			var existing models.Membership

			err := tx.Where("user_id = ? AND org_id = ?", invited.ID, orgID).First(&existing).Error

			if err == nil {
				if existing.Status == models.StatusActive {
					return &authz.Error{Status: http.StatusConflict, Code: "already_active_member"}
				}
				return &authz.Error{Status: http.StatusConflict, Code: "already_invited"}
			}

			if !db.IsNotFound(err) {
				return err
			}
		}

		membership := models.Membership{
			UserID: invited.ID,
			OrgID:  orgID,
			Role:   role,
			Status: models.StatusPending,
		}

		return tx.Create(&membership).Error
	})

	if err != nil {
		authz.Respond(ctx, inviteConflict(err))
		return
	}

	audit.RecordOrLog(ctx, audit.Entry{
		OrgID:    orgID,
		ActorID:  &actor.ID,
		Action:   "MEMBERS_INVITE",
		Resource: userResource(invited.ID),
		After:    gin.H{"email": invited.Email, "role": role, "status": models.StatusPending},
	})

	ctx.JSON(http.StatusCreated, gin.H{"ok": true, "user_id": invited.ID})
}

// UpdateMemberRole changes a member's role. OWNER only; changing your own
// role is rejected outright. Demoting an OWNER re-checks the last-owner
// invariant inside the update transaction.
func UpdateMemberRole(ctx *gin.Context) {
	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	actor, _, err := authz.RequireRole(ctx, orgID, models.RoleOwner)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	targetID, err := utils.GetUserIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if targetID == actor.ID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
		return
	}

	var body UpdateMemberRoleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role is required"})
		return
	}

	newRole := models.Role(body.Role)

	if !newRole.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid_role"})
		return
	}

	var before, updated models.Membership

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND org_id = ?", targetID, orgID).First(&before).Error

		if err != nil {
			if db.IsNotFound(err) {
				return &authz.Error{Status: http.StatusNotFound, Code: "member_not_found"}
			}
			return err
		}

		if before.Role == newRole {
			return &authz.Error{Status: http.StatusConflict, Code: "same_role"}
		}

		if newRole != models.RoleOwner {
			if err := authz.EnsureOwnerIsNotLast(tx, orgID, targetID); err != nil {
				return err
			}
		}

		updated = before
		updated.Role = newRole

		return tx.Model(&models.Membership{}).
			Where("user_id = ? AND org_id = ?", targetID, orgID).
			Update("role", newRole).Error
	})

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	audit.RecordOrLog(ctx, audit.Entry{
		OrgID:    orgID,
		ActorID:  &actor.ID,
		Action:   "MEMBERS_ROLE_CHANGE",
		Resource: userResource(targetID),
		Before:   snapshotMembership(before),
		After:    snapshotMembership(updated),
	})

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// RemoveMember deletes a membership. Removing an OWNER re-checks the
// last-owner invariant inside the delete transaction.
func RemoveMember(ctx *gin.Context) {
	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	actor, _, err := authz.RequireRole(ctx, orgID, models.RoleOwner, models.RoleAdmin)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	targetID, err := utils.GetUserIDParam(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var before models.Membership

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND org_id = ?", targetID, orgID).First(&before).Error

		if err != nil {
			if db.IsNotFound(err) {
				return &authz.Error{Status: http.StatusNotFound, Code: "member_not_found"}
			}
			return err
		}

		if err := authz.EnsureOwnerIsNotLast(tx, orgID, targetID); err != nil {
			return err
		}

		// Hard delete so a later re-invite does not trip the (user, org)
		// unique index on a soft-deleted row.
		return tx.Unscoped().
			Where("user_id = ? AND org_id = ?", targetID, orgID).
			Delete(&models.Membership{}).Error
	})

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	audit.RecordOrLog(ctx, audit.Entry{
		OrgID:    orgID,
		ActorID:  &actor.ID,
		Action:   "MEMBERS_DELETE",
		Resource: userResource(targetID),
		Before:   snapshotMembership(before),
	})

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
