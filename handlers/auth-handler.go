package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/models"
	"github.com/smartbrain-app/smartbrain-api/store"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenDuration  = 24 * time.Hour
	cookieDuration = 7 * 24 * time.Hour
	tokenIssuer    = "smartbrain-api"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return apperrors.Validation("Missing required fields")
	}
	if !strings.Contains(email, "@") {
		return apperrors.Validation("Invalid email format")
	}
	if len(password) < 5 {
		return apperrors.Validation("Password must be at least 5 characters")
	}
	return nil
}

// Register creates a new account. The password is bcrypt-hashed before
// it is stored and never returned to the client.
func (h *Handler) Register(c *fiber.Ctx) error {
	var input credentials
	if err := c.BodyParser(&input); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	if input.Name == "" {
		return apperrors.Validation("Missing required fields")
	}
	if err := validateCredentials(input.Email, input.Password); err != nil {
		return err
	}

	if _, err := h.Users.ByEmail(c.UserContext(), input.Email); err == nil {
		return apperrors.Validation("User with this email already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := h.Users.Create(c.UserContext(), &user); err != nil {
		return err
	}

	return c.JSON(user)
}

type loginResponse struct {
	*models.User
	Token string `json:"token"`
}

// Login verifies credentials and appends a LoginHistory row whether the
// attempt succeeds or fails. Success returns the safe user plus a signed
// token, mirrored into an HTTP-only cookie for web clients.
func (h *Handler) Login(c *fiber.Ctx) error {
	var input credentials
	if err := c.BodyParser(&input); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	if err := validateCredentials(input.Email, input.Password); err != nil {
		return err
	}

	user, err := h.Users.ByEmail(c.UserContext(), input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.Authentication()
		}
		return err
	}

	passwordValid := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) == nil

	if err := h.Logins.Record(c.UserContext(), user.ID, c.IP(), passwordValid); err != nil {
		return err
	}

	if !passwordValid {
		return apperrors.Authentication()
	}

	tokenStr, err := h.signToken(user.ID)
	if err != nil {
		return apperrors.Internal("Failed to generate token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "JWT",
		Value:    tokenStr,
		Expires:  time.Now().Add(cookieDuration),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(loginResponse{User: user, Token: tokenStr})
}

func (h *Handler) signToken(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Cfg.JWTSecret))
}
