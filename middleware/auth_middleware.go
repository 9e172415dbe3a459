package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionKeyUser and SessionKeyEmail hold the logged-in identity.
	SessionKeyUser  = "auth_user"
	SessionKeyEmail = "auth_email"

	// SessionKeyCSRF holds the anti-forgery token issued by /auth/csrf/.
	SessionKeyCSRF = "csrf_token"

	// CsrfCookieName mirrors the token to the front-end so it can echo it
	// back in the CsrfHeader on unsafe requests.
	CsrfCookieName = "csrftoken"
	CsrfHeader     = "X-CSRFToken"
)

// RequireLogin rejects requests without an authenticated session and stashes
// the resolved identity in the gin context for handlers downstream.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, ok := session.Get(SessionKeyUser).(string)
		if !ok || username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"authenticated": false})
			return
		}

		email, _ := session.Get(SessionKeyEmail).(string)
		c.Set("user", model.UserDto{Username: username, Email: email})
		c.Next()
	}
}

// GetUser is a helper to extract the resolved identity from the context.
func GetUser(c *gin.Context) (model.UserDto, bool) {
	val, exists := c.Get("user")
	if !exists {
		return model.UserDto{}, false
	}

	user, ok := val.(model.UserDto)
	return user, ok
}

// VerifyCSRF enforces the double-submit check on unsafe methods. Only
// requests that already carry an authenticated session are checked, matching
// how session authentication treats anonymous login/register calls.
func VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		session := sessions.Default(c)
		username, ok := session.Get(SessionKeyUser).(string)
		if !ok || username == "" {
			c.Next()
			return
		}

		expected, ok := session.Get(SessionKeyCSRF).(string)
		received := c.GetHeader(CsrfHeader)
		if !ok || expected == "" ||
			subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"detail": "CSRF token missing or incorrect",
			})
			return
		}

		c.Next()
	}
}

// NewCsrfToken generates a 32-byte random token, hex encoded.
func NewCsrfToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
