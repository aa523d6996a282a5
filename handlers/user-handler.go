package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/store"
)

type userSummary struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Entries int       `json:"entries"`
	Joined  time.Time `json:"joined"`
}

// ListUsers returns all users without emails or credential material.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return err
	}

	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, userSummary{
			ID:      u.ID,
			Name:    u.Name,
			Entries: u.Entries,
			Joined:  u.Joined,
		})
	}

	return c.JSON(summaries)
}

type profileResponse struct {
	ID      uint      `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Entries int       `json:"entries"`
	Joined  time.Time `json:"joined"`
}

// GetProfile returns a single user's profile by route id.
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return apperrors.Validation("Missing or invalid user ID")
	}

	user, err := h.Users.ByID(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return err
	}

	return c.JSON(profileResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Entries: user.Entries,
		Joined:  user.Joined,
	})
}
