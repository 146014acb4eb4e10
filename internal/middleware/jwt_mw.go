package middleware

import (
	"net/http"

	"printshop/internal/logger"
	"printshop/internal/model"
	"printshop/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "printshop_session"
	IdentityKey   = "identity"
)

// Session resolves the session cookie into an identity on the context.
// It never aborts; gates further down decide what a missing identity means.
func Session(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		identity, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			logger.Debug().Err(err).Msg("Ignoring invalid session cookie")
			c.Next()
			return
		}

		c.Set(IdentityKey, *identity)
		c.Next()
	}
}

// CurrentIdentity returns the caller resolved by Session, if any.
func CurrentIdentity(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}

// SetSessionCookie stores the signed token in an HttpOnly, SameSite=Lax cookie.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
