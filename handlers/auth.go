package handlers

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/biosecret/go-tasks/auth"
	"github.com/biosecret/go-tasks/database"
	"github.com/biosecret/go-tasks/models"
	"github.com/gofiber/fiber/v2"
)

// HandleSignup creates a new account and returns a bearer token for it.
func (h *Handler) HandleSignup(c *fiber.Ctx) error {
	req := new(models.SignupRequest)
	if err := c.BodyParser(req); err != nil {
		return validationError(c, "Invalid request body")
	}

	if !validEmail(req.Email) {
		return validationError(c, "Invalid email address")
	}
	if utf8.RuneCountInString(req.Password) < 8 {
		return validationError(c, "Password must be at least 8 characters")
	}

	// Fast path only; the unique constraint on users.email is what actually
	// guarantees uniqueness under concurrent signups.
	existing, err := h.users.FindByEmail(c.Context(), req.Email)
	if err != nil {
		return internalError(c, err)
	}
	if existing != nil {
		return writeError(c, fiber.StatusBadRequest, "conflict", "Email already registered")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return internalError(c, err)
	}

	user, err := h.users.Create(c.Context(), req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return writeError(c, fiber.StatusBadRequest, "conflict", "Email already registered")
		}
		return internalError(c, err)
	}

	accessToken, err := h.codec.Issue(user.ID, user.Email)
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SignupResponse{
		Message:     "Account created successfully",
		UserID:      user.ID,
		Email:       user.Email,
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// HandleSignin authenticates a user and returns a bearer token. Unknown
// email and wrong password answer identically.
func (h *Handler) HandleSignin(c *fiber.Ctx) error {
	req := new(models.SigninRequest)
	if err := c.BodyParser(req); err != nil {
		return validationError(c, "Invalid request body")
	}

	user, err := h.users.FindByEmail(c.Context(), req.Email)
	if err != nil {
		return internalError(c, err)
	}
	if user == nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		return writeError(c, fiber.StatusUnauthorized, "authentication_error", "Invalid email or password")
	}

	accessToken, err := h.codec.Issue(user.ID, user.Email)
	if err != nil {
		return internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.SigninResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		UserID:      user.ID,
		Email:       user.Email,
	})
}

// HandleSignout acknowledges a signout. Tokens are stateless, so there is
// nothing to revoke server-side; the client discards the token.
func (h *Handler) HandleSignout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.MessageResponse{
		Message: "Successfully signed out",
	})
}

// HandleMe returns the identity embedded in the caller's token.
func (h *Handler) HandleMe(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(models.MeResponse{
		UserID: currentUserID(c),
		Email:  currentEmail(c),
	})
}

// validEmail applies the boundary's modest format check: something@something
// within the column limit.
func validEmail(email string) bool {
	if email == "" || utf8.RuneCountInString(email) > 255 {
		return false
	}
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}
