// API limiting chain for the detection endpoint: authorization gate,
// monthly quota check, then usage recording. Order matters: an
// unauthorized or over-quota user is rejected before any ledger row is
// written, and recording happens before the detector runs, so a failed
// detection still consumes quota.
package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/quota"
	"github.com/smartbrain-app/smartbrain-api/store"
)

// CheckAuthorization rejects requests from unknown or unauthorized
// users and stashes the resolved user for downstream handlers.
func CheckAuthorization(users store.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserIDFromRequest(c)
		if err != nil {
			return err
		}

		user, err := users.ByID(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperrors.NotFound("User")
			}
			return err
		}

		if !user.IsAuthorized {
			return apperrors.Authorization("Unauthorized - User does not have API access")
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// CheckRequestLimit enforces the monthly quota via the policy's allow
// decision.
func CheckRequestLimit(policy *quota.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserIDFromRequest(c)
		if err != nil {
			return err
		}

		if _, err := policy.Allow(c.UserContext(), userID); err != nil {
			return err
		}

		return c.Next()
	}
}

// RecordApiRequest appends a usage ledger row. Recording is best-effort:
// a ledger write failure never blocks the request.
func RecordApiRequest(ledger store.UsageLedger, endpoint string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserIDFromRequest(c)
		if err != nil {
			return c.Next()
		}

		if err := ledger.Record(c.UserContext(), userID, endpoint); err != nil {
			log.Printf("Error recording API request: %v", err)
		}

		return c.Next()
	}
}
