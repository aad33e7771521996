package api

import (
	"strings"

	domain "github.com/example/study-task-manager/domain/user"
	"github.com/example/study-task-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"

	// SessionCookie carries the access token for browser clients.
	SessionCookie = "session_token"
)

// SessionMiddleware resolves the caller from a Bearer token or the session
// cookie and rejects the request with 401 when there is none.
func SessionMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return unauthorized(c)
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil || claims == nil || claims.UserID == 0 {
			return unauthorized(c)
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// sessionToken prefers a Bearer Authorization header over the cookie. The
// scheme is case-insensitive; an unusable header falls back to the cookie.
func sessionToken(c *fiber.Ctx) string {
	if scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " "); ok && strings.EqualFold(scheme, "Bearer") {
		if token = strings.TrimSpace(token); token != "" {
			return token
		}
	}
	return c.Cookies(SessionCookie)
}

// currentUser returns the claims stored by SessionMiddleware.
func currentUser(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok && claims != nil
}

// authenticated adapts a handler that needs the caller's identity.
func authenticated(next func(c *fiber.Ctx, caller *domain.Claims) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := currentUser(c)
		if !ok {
			return unauthorized(c)
		}
		return next(c, caller)
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "Unauthorized",
	})
}
