package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	ClientIDHeader = "X-Client-ID"
	// ClientIDKey is the fiber.Ctx locals key holding the client ID.
	ClientIDKey = "clientID"
)

// EnsureClientID identifies the caller by the X-Client-ID header or the
// clientId query parameter. Callers without one are assigned a fresh ID,
// echoed back in the response header.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(ClientIDKey) != nil {
			return c.Next()
		}

		clientID := c.Get(ClientIDHeader)
		if clientID == "" {
			clientID = c.Query("clientId")
		}
		if clientID == "" {
			clientID = uuid.New().String()
		}

		c.Locals(ClientIDKey, clientID)
		c.Set(ClientIDHeader, clientID)
		return c.Next()
	}
}

// ClientID returns the ID stored by EnsureClientID.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(ClientIDKey).(string)
	return id
}
