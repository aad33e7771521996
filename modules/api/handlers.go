package api

import (
	"errors"
	"log"
	"time"

	domain "github.com/example/study-task-manager/domain/user"
	"github.com/example/study-task-manager/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the account and session HTTP handlers.
type Handlers struct {
	authAdapter  auth.AuthPort
	cookieSecure bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authAdapter auth.AuthPort, cookieSecure bool) *Handlers {
	return &Handlers{
		authAdapter:  authAdapter,
		cookieSecure: cookieSecure,
	}
}

// Register creates an account. It does not sign the user in.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	user, err := h.authAdapter.Register(c.UserContext(), auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		Message: "Account created successfully",
		UserID:  user.ID,
	})
}

// Login exchanges credentials for a token pair and sets the session cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	tokens, err := h.authAdapter.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleAuthError(c, err)
	}

	h.setSessionCookie(c, tokens)
	return c.Status(fiber.StatusOK).JSON(toTokenResponse(tokens))
}

// Refresh rotates the token pair and the session cookie.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	tokens, err := h.authAdapter.RefreshTokens(c.UserContext(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired refresh token",
			})
		}
		return h.handleAuthError(c, err)
	}

	h.setSessionCookie(c, tokens)
	return c.Status(fiber.StatusOK).JSON(toTokenResponse(tokens))
}

// Logout clears the session cookie. Issued tokens stay valid until they
// expire.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(OKResponse{OK: true})
}

// Session returns the signed-in user.
func (h *Handlers) Session(c *fiber.Ctx, caller *domain.Claims) error {
	user, err := h.authAdapter.GetUser(c.UserContext(), caller.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return unauthorized(c)
		}
		return h.handleAuthError(c, err)
	}

	return c.JSON(SessionResponse{
		User: SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (h *Handlers) setSessionCookie(c *fiber.Ctx, tokens *domain.TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// handleAuthError maps auth errors to responses without exposing internals.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return badRequest(c, "Email and password are required")
	case errors.Is(err, auth.ErrUserExists):
		return badRequest(c, "Email already in use")
	case errors.Is(err, auth.ErrPasswordTooLong):
		return badRequest(c, "Password must be at most 72 bytes")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case errors.Is(err, auth.ErrInvalidToken):
		return unauthorized(c)
	default:
		log.Printf("[api] Internal error: %v", err)
		return internalError(c)
	}
}

func toTokenResponse(tokens *domain.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An error occurred",
	})
}
