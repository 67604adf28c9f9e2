package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/votervision/backend/pkg/utils"
)

// resolveSession returns the caller's session ID: an explicit valid
// X-Session-ID header wins, otherwise a fingerprint of IP and user
// agent keeps anonymous users on a stable session.
func resolveSession(c *gin.Context) string {
	if id := c.GetHeader("X-Session-ID"); utils.ValidateSessionID(id) {
		return id
	}
	return utils.GenerateSessionID(c.ClientIP() + c.GetHeader("User-Agent"))
}
