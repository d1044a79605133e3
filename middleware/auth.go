package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"travel-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userId"
	ContextUsername = "username"

	SessionCookie = "session"
)

func tokenFromRequest(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// OptionalAuth sets userId/username when the request carries a valid session
// token and lets anonymous requests through.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := tokenFromRequest(c); tokenStr != "" {
			if claims, err := utils.ValidateJWT(secret, tokenStr); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests: pages are redirected to the login
// page, API calls get a 401.
func RequireAuth(secret string, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			unauthorized(c, loginPath, "Authentication credentials were not provided.")
			return
		}
		claims, err := utils.ValidateJWT(secret, tokenStr)
		if err != nil {
			unauthorized(c, loginPath, "Invalid or expired token")
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

func unauthorized(c *gin.Context, loginPath, message string) {
	if loginPath != "" && c.Request.Method == http.MethodGet {
		c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}
	utils.JSONAbort(c, http.StatusUnauthorized, message)
}

// CurrentUser reads what the auth middleware stored; ok is false for anonymous requests.
func CurrentUser(c *gin.Context) (id uint, username string, ok bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, "", false
	}
	id, ok = v.(uint)
	if !ok || id == 0 {
		return 0, "", false
	}
	return id, c.GetString(ContextUsername), true
}
