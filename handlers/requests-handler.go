package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/smartbrain-app/smartbrain-api/apperrors"
)

// RemainingRequests reports the caller's quota standing for the current
// month. Reads are idempotent: repeated calls without an intervening
// detection return identical counts.
func (h *Handler) RemainingRequests(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil || id == 0 {
		return apperrors.Validation("Missing or invalid user ID")
	}

	status, err := h.Policy.Evaluate(c.UserContext(), uint(id))
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Status == fiber.StatusForbidden {
			// Unauthorized callers still learn the limit, with zero remaining.
			return &apperrors.Error{
				Status:  fiber.StatusForbidden,
				Message: "Unauthorized",
				Context: map[string]interface{}{
					"remaining": 0,
					"limit":     h.Policy.Limit,
				},
			}
		}
		return err
	}

	return c.JSON(fiber.Map{
		"remaining": status.Remaining,
		"used":      status.Used,
		"limit":     status.Limit,
		"resetDay":  h.Policy.ResetDay,
		"resetDate": status.ResetsAt,
	})
}
