package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JorgeWendell/clinics/internal/dto"
	"github.com/JorgeWendell/clinics/internal/service"
	"github.com/JorgeWendell/clinics/pkg/response"
)

// Context keys written by middleware.JWTAuth.
const (
	ctxUserID   = "user_id"
	ctxRole     = "role"
	ctxClinicID = "clinic_id"
	ctxTokenJTI = "token_jti"
	ctxTokenExp = "token_exp"
)

// MustGetUserID reads user_id set by the JWT middleware.
// On failure it writes a 401 and the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(ctxUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "authentication required")
		return "", false
	}
	return s, true
}

// MustGetRole reads the caller's role.
func MustGetRole(c *gin.Context) (string, bool) {
	s := c.GetString(ctxRole)
	if s == "" {
		response.Unauthorized(c, 10002, "authentication required")
		return "", false
	}
	return s, true
}

// MustGetClinicID reads the caller's clinic. A signed-in user without a
// clinic gets 403 so the client can send them to clinic setup.
func MustGetClinicID(c *gin.Context) (string, bool) {
	if _, exists := c.Get(ctxClinicID); !exists {
		response.Unauthorized(c, 10002, "authentication required")
		return "", false
	}
	s := c.GetString(ctxClinicID)
	if s == "" {
		response.Forbidden(c, 12001, "clinic not found")
		return "", false
	}
	return s, true
}

// MustGetPathID binds the :id path parameter. A malformed id is answered
// with 400 before any lookup.
func MustGetPathID(c *gin.Context) (string, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, 10001, "invalid id")
		return "", false
	}
	return uri.ID, true
}

func tokenInfo(c *gin.Context) (string, time.Time) {
	return c.GetString(ctxTokenJTI), c.GetTime(ctxTokenExp)
}

// writeValidationError answers 400 when err is a field validation failure.
func writeValidationError(c *gin.Context, err error) bool {
	ve, ok := service.AsValidationError(err)
	if !ok {
		return false
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", ve.Error())
	return true
}

func bindFailed(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "validation failed", err.Error())
}
