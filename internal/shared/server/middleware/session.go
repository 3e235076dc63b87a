package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the client's session id.
	SessionHeader = "X-Session-Id"
	sessionIDKey  = "sessionId"
	mintedKey     = "sessionMinted"
)

// SessionID resolves the session id from the request header, minting a fresh
// uuid when it is missing or not a uuid. The id is echoed in the response.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if parsed, err := uuid.Parse(id); err == nil {
			id = parsed.String()
		} else {
			id = uuid.NewString()
			c.Set(mintedKey, true)
		}
		c.Set(sessionIDKey, id)
		c.Writer.Header().Set(SessionHeader, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session id stored by SessionID.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// SessionIDMinted reports whether the id was minted for this request because
// the client sent none or an invalid one.
func SessionIDMinted(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(mintedKey)
}
