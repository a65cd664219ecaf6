package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHeader carries the shared admin secret on every gated request.
const AdminHeader = "X-Admin-Secret"

// AdminGate guards mutating routes with a single shared secret. An empty
// configured secret means open admin: every request passes. This is a
// deliberate configuration state, not a fallback.
func AdminGate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(AdminHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "invalid admin secret",
			})
			return
		}

		c.Next()
	}
}
