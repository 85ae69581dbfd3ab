package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UIDKey is the gin context key holding the signed-in user's id.
const UIDKey = "uid"

// DevUserHeader carries the user id when token verification is disabled.
const DevUserHeader = "X-User-ID"

// TokenVerifier checks a Firebase ID token. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// Authenticate rejects requests without a valid Firebase ID token and stores
// the token's uid under UIDKey.
func Authenticate(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken := bearer(c)
		if idToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token not provided"})
			return
		}

		token, err := v.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			log.Debug().Err(err).Msg("middleware: token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization token"})
			return
		}

		c.Set(UIDKey, token.UID)
		c.Next()
	}
}

// OptionalAuthenticate sets UIDKey when a valid token is present and lets
// anonymous requests through. An invalid token is still rejected.
func OptionalAuthenticate(v TokenVerifier) gin.HandlerFunc {
	required := Authenticate(v)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		required(c)
	}
}

// DevUser trusts the X-User-ID header. Only for local runs with auth disabled.
func DevUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := strings.TrimSpace(c.GetHeader(DevUserHeader)); uid != "" {
			c.Set(UIDKey, uid)
		}
		c.Next()
	}
}
