package middleware

import (
	"strings"

	"github.com/biosecret/go-tasks/auth"
	"github.com/biosecret/go-tasks/models"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth verifies the bearer token and stores the caller's identity in
// the request locals as "user_id" and "email". Tokens are self-contained, so
// no database lookup happens here.
func RequireAuth(codec *auth.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Missing authentication token")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			// Some other scheme; no bearer credential was presented.
			return unauthorized(c, "Missing authentication token")
		}

		claims, err := codec.Verify(tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
		StatusCode: fiber.StatusUnauthorized,
		ErrorType:  "authentication_error",
		Message:    message,
	})
}
