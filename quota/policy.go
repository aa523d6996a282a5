// Package quota implements the monthly API quota policy: an
// authorization gate checked first, then a usage count over the current
// calendar-month window compared against a fixed limit.
package quota

import (
	"context"
	"errors"
	"time"

	"github.com/smartbrain-app/smartbrain-api/apperrors"
	"github.com/smartbrain-app/smartbrain-api/store"
)

// Status is the result of evaluating a user against the quota.
type Status struct {
	Authorized bool      `json:"authorized"`
	Used       int       `json:"used"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetsAt   time.Time `json:"resetsAt"`
}

// Policy evaluates users against the monthly quota. The window is the
// current calendar month in server-local time; there is no carry-over
// and no rolling window. Now is injectable for tests.
type Policy struct {
	Users    store.UserStore
	Ledger   store.UsageLedger
	Limit    int
	ResetDay int
	Now      func() time.Time
}

// NewPolicy builds a Policy with the wall clock.
func NewPolicy(users store.UserStore, ledger store.UsageLedger, limit, resetDay int) *Policy {
	return &Policy{
		Users:    users,
		Ledger:   ledger,
		Limit:    limit,
		ResetDay: resetDay,
		Now:      time.Now,
	}
}

// Evaluate resolves the user and reports their current-window usage.
// Authorization is a binary gate checked before any quota math: an
// unauthorized user fails here regardless of usage count.
func (p *Policy) Evaluate(ctx context.Context, userID uint) (*Status, error) {
	if userID == 0 {
		return nil, apperrors.Validation("Missing or invalid user ID")
	}

	user, err := p.Users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, err
	}

	if !user.IsAuthorized {
		return nil, apperrors.Authorization("Unauthorized - User does not have API access")
	}

	now := p.Now()
	used, err := p.Ledger.CountSince(ctx, userID, startOfMonth(now))
	if err != nil {
		return nil, err
	}

	remaining := p.Limit - int(used)
	if remaining < 0 {
		remaining = 0
	}

	return &Status{
		Authorized: true,
		Used:       int(used),
		Limit:      p.Limit,
		Remaining:  remaining,
		ResetsAt:   p.nextReset(now),
	}, nil
}

// Allow decides whether the user may make one more call. Denials carry
// the limit and reset date.
func (p *Policy) Allow(ctx context.Context, userID uint) (*Status, error) {
	status, err := p.Evaluate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if status.Used >= status.Limit {
		return nil, apperrors.RateLimit(
			"You have reached your monthly API request limit",
			status.Limit,
			status.ResetsAt,
		)
	}

	return status, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// nextReset is the configured reset day of the following month.
// time.Date normalizes month overflow, so December rolls into January.
func (p *Policy) nextReset(t time.Time) time.Time {
	day := p.ResetDay
	if day < 1 {
		day = 1
	}
	return time.Date(t.Year(), t.Month()+1, day, 0, 0, 0, 0, t.Location())
}
