package handler

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/smartbrain-app/smartbrain-api/apperrors"
)

type detectRequest struct {
	ID       json.Number `json:"id"`
	ImageURL string      `json:"imageUrl"`
	// Legacy field name still sent by older frontends.
	LegacyImageURL string `json:"IMAGE_URL"`
}

// Detect runs face detection on the submitted URL. The api-limiter chain
// has already authorized the caller and recorded the usage row by the
// time this handler runs, so a detection failure here still counts
// against the quota.
func (h *Handler) Detect(c *fiber.Ctx) error {
	var input detectRequest
	if err := c.BodyParser(&input); err != nil {
		return apperrors.Validation("Invalid request body")
	}

	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = input.LegacyImageURL
	}
	if imageURL == "" {
		return apperrors.Validation("Image URL is required")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.Cfg.DetectorTimeout)
	defer cancel()

	boxes, err := h.Detector.Detect(ctx, imageURL)
	if err != nil {
		return err
	}

	return c.JSON(boxes)
}
