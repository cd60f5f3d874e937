package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lodestone-dev/lodestone/db"
	"github.com/lodestone-dev/lodestone/internal/models"
	"github.com/lodestone-dev/lodestone/internal/utils"
	"gorm.io/datatypes"
)

// ErrOrgRequired rejects entries that cannot be attributed to an org.
// Per-org audit queries stay complete only if every entry carries one.
var ErrOrgRequired = errors.New("audit entry requires an org")

type Entry struct {
	OrgID    uint
	ActorID  *uint
	Action   string
	Resource string
	Before   interface{}
	After    interface{}
	IP       string
	UA       string
}

// Record appends an audit entry. OrgID is mandatory and the write fails fast
// without one. IP and UA default to the originating request's headers.
// Before/After snapshots are stored verbatim; the recorder does no diffing.
func Record(ctx *gin.Context, entry Entry) (*models.AuditLog, error) {
	if entry.OrgID == 0 {
		return nil, ErrOrgRequired
	}

	if entry.Action == "" {
		return nil, errors.New("audit entry requires an action")
	}

	if ctx != nil {
		if entry.IP == "" {
			entry.IP = utils.ClientIP(ctx)
		}
		if entry.UA == "" {
			entry.UA = ctx.GetHeader("User-Agent")
		}
	}

	before, err := snapshot(entry.Before)

	if err != nil {
		return nil, fmt.Errorf("failed to encode before snapshot: %w", err)
	}

	after, err := snapshot(entry.After)

	if err != nil {
		return nil, fmt.Errorf("failed to encode after snapshot: %w", err)
	}

	row := models.AuditLog{
		OrgID:    entry.OrgID,
		ActorID:  entry.ActorID,
		Action:   entry.Action,
		Resource: optional(entry.Resource),
		Before:   before,
		After:    after,
		IP:       optional(entry.IP),
		UA:       optional(entry.UA),
	}

	if err := db.DB.Create(&row).Error; err != nil {
		return nil, err
	}

	return &row, nil
}

// RecordOrLog is the best-effort variant used after a committed mutation:
// a failed audit write is logged but never rolls back or fails the mutation
// it describes.
func RecordOrLog(ctx *gin.Context, entry Entry) {
	if _, err := Record(ctx, entry); err != nil {
		log.Printf("Failed to write audit entry %q for org %d: %v", entry.Action, entry.OrgID, err)
	}
}

func snapshot(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}

	raw, err := json.Marshal(v)

	if err != nil {
		return nil, err
	}

	return datatypes.JSON(raw), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
