package auth

import (
	"net/http"
	"strings"

	"github.com/oreltrt123/displan-sub003/internal/users"
	"github.com/gin-gonic/gin"
)

const (
	CtxAuthUID  = "auth_uid"
	CtxUserDBID = "user_db_id"
	CtxEmail    = "user_email"
)

// WithUser validates the Bearer access token, upserts the user row on first
// sight and stores both the auth uid and the db user id in the gin context.
func WithUser(jwtSecret string, userRepo *users.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			c.Abort()
			return
		}

		claims, err := ParseToken(jwtSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		uid, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			AuthUID:     claims.Subject,
			Email:       claims.Email,
			DisplayName: c.GetHeader("X-User-Name"),
			AvatarURL:   c.GetHeader("X-User-Photo"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxAuthUID, claims.Subject)
		c.Set(CtxUserDBID, uid)
		c.Set(CtxEmail, claims.Email)
		c.Next()
	}
}

func UserDBID(c *gin.Context) string {
	v := c.GetString(CtxUserDBID)
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

func AuthUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxAuthUID))
}

func Email(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxEmail))
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
