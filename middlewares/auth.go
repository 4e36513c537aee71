// file: middlewares/auth.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xFraylin/Hackong-ctf/models"
	"github.com/xFraylin/Hackong-ctf/utils"
	"gorm.io/gorm"
)

const (
	SessionCookie = "session"

	loginRedirect     = "/login"
	dashboardRedirect = "/dashboard"
)

// Context keys populated by SessionGate.
const (
	CtxProfileID = "profile_id"
	CtxUsername  = "username"
	CtxUserRole  = "user_role"
)

// SessionGate guards authenticated routes. A missing or invalid session
// token redirects to the login page before any store lookup happens; a valid
// one stashes the identity in the request context. The profile itself is not
// fetched here, general routes only need the token identity.
func SessionGate(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Redirect(http.StatusFound, loginRedirect)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			c.Redirect(http.StatusFound, loginRedirect)
			c.Abort()
			return
		}

		c.Set(CtxProfileID, claims.ProfileID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// AdminGate guards /admin routes. The role is resolved fresh from the store
// with a single lookup; a missing profile or a store error counts as
// non-admin (fail closed), and non-admins are silently down-routed to the
// dashboard. No retries.
func AdminGate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := c.GetString(CtxProfileID)

		var profile models.Profile
		err := db.Select("role").Where("id = ?", profileID).First(&profile).Error
		if err != nil || profile.Role != models.RoleAdmin {
			c.Redirect(http.StatusFound, dashboardRedirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionToken reads the session cookie, falling back to a Bearer header for
// non-browser clients.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.Request.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
