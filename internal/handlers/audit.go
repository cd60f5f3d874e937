package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/authz"
	"github.com/lodestone-dev/lodestone/internal/models"
)

// AuditLogResponse is the list-view projection of an audit entry. The
// before/after snapshots and ip/ua provenance stay on the stored row and are
// left out of the listing.
type AuditLogResponse struct {
	ID        uint    `json:"id"`
	OrgID     uint    `json:"org_id"`
	ActorID   *uint   `json:"actor_id"`
	Action    string  `json:"action"`
	Resource  *string `json:"resource"`
	CreatedAt string  `json:"created_at"`
}

// ListAuditLog returns the org's audit entries, newest first. OWNER/ADMIN
// only; scoped strictly to the resolved org.
func ListAuditLog(ctx *gin.Context) {
	orgID, err := authz.ResolveCurrentOrgID(ctx)

	if err != nil {
		authz.Respond(ctx, err)
		return
	}

	if _, _, err := authz.RequireRole(ctx, orgID, models.RoleOwner, models.RoleAdmin); err != nil {
		authz.Respond(ctx, err)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	if err != nil || limit < 1 {
		limit = 20
	}

	if limit > 100 {
		limit = 100
	}

	var logs []models.AuditLog

	err = db.DB.
		Where("org_id = ?", orgID).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error

	if err != nil {
		log.Printf("Failed to list audit log for org %d: %v", orgID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve audit log"})
		return
	}

	response := make([]AuditLogResponse, 0, len(logs))

	for _, entry := range logs {
		response = append(response, AuditLogResponse{
			ID:        entry.ID,
			OrgID:     entry.OrgID,
			ActorID:   entry.ActorID,
			Action:    entry.Action,
			Resource:  entry.Resource,
			CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	ctx.JSON(http.StatusOK, response)
}
