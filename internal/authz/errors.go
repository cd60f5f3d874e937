package authz

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is a guard failure carrying the HTTP status it translates to and a
// stable error code returned to the caller.
type Error struct {
	Status int
	Code   string
}

func (e *Error) Error() string {
	return e.Code
}

var (
	ErrUnauthorized = &Error{Status: http.StatusUnauthorized, Code: "unauthorized"}
	ErrForbidden    = &Error{Status: http.StatusForbidden, Code: "forbidden"}
	ErrOrgRequired  = &Error{Status: http.StatusBadRequest, Code: "org_required"}
	ErrLastOwner    = &Error{Status: http.StatusConflict, Code: "last_owner_protection"}
)

// Respond translates a guard failure into its response. Unclassified errors
// are logged and answered with a generic 500.
func Respond(ctx *gin.Context, err error) {
	var authzErr *Error

	if errors.As(err, &authzErr) {
		ctx.JSON(authzErr.Status, gin.H{"error": authzErr.Code})
		return
	}

	log.Printf("Unexpected authorization error: %v", err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
