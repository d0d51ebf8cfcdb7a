package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gianghaison/gianghaison.me/utils"
)

const (
	// SessionCookieName is the HTTP-only cookie carrying the admin session.
	SessionCookieName = "session"
	// ContextEmailKey stores the authenticated admin email in Gin context.
	ContextEmailKey = "admin_email"
	// ContextTokenKey stores the raw session token for logout handling.
	ContextTokenKey = "session_token"
)

// AuthRequired ensures the request carries a valid admin session, either as
// the session cookie or as a bearer token.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := sessionToken(ctx)
		if token == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authentication required")
			ctx.Abort()
			return
		}

		if utils.IsTokenBlacklisted(token) {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "session revoked")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "invalid session")
			ctx.Abort()
			return
		}

		ctx.Set(ContextEmailKey, claims.Email)
		ctx.Set(ContextTokenKey, token)
		ctx.Next()
	}
}

func sessionToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
