// Package store holds the persistence interfaces and their Postgres and
// in-memory implementations. Components take the interfaces; main wires
// the GORM implementations, tests wire the memory ones.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/smartbrain-app/smartbrain-api/models"
	"gorm.io/datatypes"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore persists user accounts.
type UserStore interface {
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)

	// AddEntry increments the user's entries counter and, when imageURL is
	// set, creates the ImageEntry row in the same transaction. Returns the
	// updated user.
	AddEntry(ctx context.Context, id uint, imageURL string, results datatypes.JSON) (*models.User, error)
}

// UsageLedger is the append-only record of calls to rate-limited
// endpoints.
type UsageLedger interface {
	Record(ctx context.Context, userID uint, endpoint string) error
	CountSince(ctx context.Context, userID uint, since time.Time) (int64, error)
}

// LoginHistoryStore records login attempts, successful or not.
type LoginHistoryStore interface {
	Record(ctx context.Context, userID uint, ip string, success bool) error
}
