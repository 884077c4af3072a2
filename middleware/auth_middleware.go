package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
)

// Protected guards dashboard pages with the signed session cookie issued
// after a successful one-time-code check.
func Protected(sessionSecret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(sessionSecret),
		TokenLookup:  "cookie:session",
		ErrorHandler: redirectToLogin,
	})
}

func redirectToLogin(c *fiber.Ctx, err error) error {
	return c.Redirect("/login", fiber.StatusFound)
}
