package middlewares

import (
	t_token "github.com/Saieshwar5/sangam-sub001/pkg/token"

	"github.com/gofiber/fiber/v2"
)

const (
	// QueryToken token in query name
	QueryToken = "auth"

	// CookieToken token in cookie name
	CookieToken = "auth_token"

	// TokenUserID get user from token, set c.locals name
	TokenUserID = "UserID"
	// TokenRole get role from token, set c.locals name
	TokenRole = "role"
)

// JWTMiddleware validates JWT carried in the query param or the auth cookie
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Query(QueryToken)

		// fall back to the HTTP-only cookie set at login
		if tokenStr == "" {
			tokenStr = c.Cookies(CookieToken)
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		claims, err := t_token.Verify(tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(TokenUserID, claims.UserID)
		c.Locals(TokenRole, claims.Role)

		return c.Next()
	}
}
