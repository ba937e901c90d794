package api

import (
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"

	"github.com/anilvs/casetrack/internal/model"
)

const (
	ctxUserID   = "auth.user_id"
	ctxUserRole = "auth.user_role"
)

func setIdentity(c *gin.Context, id uuid.UUID, role model.Role) {
	c.Set(ctxUserID, id)
	c.Set(ctxUserRole, role)
}

// userID returns the authenticated user id, if any.
func userID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// userRole returns the authenticated user role, if any.
func userRole(c *gin.Context) (model.Role, bool) {
	v, ok := c.Get(ctxUserRole)
	if !ok {
		return "", false
	}
	role, ok := v.(model.Role)
	return role, ok
}
