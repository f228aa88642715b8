package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-fintrack/fintrack/pkg/web"
)

// UserIDHeader carries the authenticated user identity. It is injected by
// the auth gateway in front of this service; the value is trusted as is.
const UserIDHeader = "X-User-ID"

// UserIDKey is the gin context key the parsed user id is stored under.
const UserIDKey = "user_id"

// ErrUserIDNotFound indicates a request without a valid user identity header.
var ErrUserIDNotFound = errors.New("user identity not provided")

// UserID extracts the authenticated user id from the request headers and
// stores it in the gin context for the handlers.
func UserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)

		id, err := strconv.ParseInt(raw, 10, 32)
		if raw == "" || err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUserIDNotFound))
			return
		}

		c.Set(UserIDKey, int32(id))
		c.Next()
	}
}
