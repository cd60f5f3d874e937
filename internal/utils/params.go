package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetUserIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New("user ID not found")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("invalid user ID")
	}

	return uint(id), nil
}

// ClientIP returns the originating client address, preferring proxy headers.
func ClientIP(ctx *gin.Context) string {
	if fwd := ctx.GetHeader("X-Forwarded-For"); fwd != "" {
		return fwd
	}

	if real := ctx.GetHeader("X-Real-IP"); real != "" {
		return real
	}

	return ctx.ClientIP()
}
