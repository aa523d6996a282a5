package middleware

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/smartbrain-app/smartbrain-api/apperrors"
)

// UserIDFromRequest resolves the acting user id, checking the JSON body
// first, then route params, then the query string. The id must parse to
// a positive integer.
func UserIDFromRequest(c *fiber.Ctx) (uint, error) {
	if body := c.Body(); len(body) > 0 {
		var fields struct {
			ID json.Number `json:"id"`
		}
		if err := json.Unmarshal(body, &fields); err == nil && fields.ID != "" {
			if id, ok := parseID(fields.ID.String()); ok {
				return id, nil
			}
		}
	}

	if raw := c.Params("id"); raw != "" {
		if id, ok := parseID(raw); ok {
			return id, nil
		}
	}

	if raw := c.Query("id"); raw != "" {
		if id, ok := parseID(raw); ok {
			return id, nil
		}
	}

	return 0, apperrors.Validation("Missing or invalid user ID")
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
