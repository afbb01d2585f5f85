package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName carries the session token for the lifetime of the
	// browser session.
	CookieName   = "admin_auth"
	CtxClaimsKey = "auth_claims"
)

// RequireSession lets requests with a live session through. Everything else
// is handed to deny, which must write a response.
func RequireSession(sessions *Sessions, logger *slog.Logger, deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CookieName)
		claims, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, ErrInvalidSession) {
				logger.Error("session lookup failed", slog.Any("error", err))
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			deny(c)
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
