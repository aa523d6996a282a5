package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/store"
	"gorm.io/datatypes"
)

type entriesUpdateRequest struct {
	ID               json.Number     `json:"id"`
	ImageURL         string          `json:"imageUrl"`
	DetectionResults json.RawMessage `json:"detectionResults"`
}

// UpdateEntries increments the user's entries counter and stores the
// image entry. Both writes happen in one store transaction so a crash
// cannot leave the counter ahead of the entries, or the reverse.
func (h *Handler) UpdateEntries(c *fiber.Ctx) error {
	var input entriesUpdateRequest
	if err := c.BodyParser(&input); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	id, err := strconv.ParseUint(input.ID.String(), 10, 32)
	if err != nil || id == 0 {
		return apperrors.Validation("Missing or invalid user ID")
	}

	user, err := h.Users.AddEntry(c.UserContext(), uint(id), input.ImageURL, datatypes.JSON(input.DetectionResults))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("User")
		}
		return err
	}

	return c.JSON(user)
}
