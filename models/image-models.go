package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImageEntry stores one successful detection: the submitted URL and the
// raw detection results as an opaque JSON blob. Created in the same
// transaction as the owner's entries increment.
type ImageEntry struct {
	ID               uint           `json:"id" gorm:"primarykey"`
	UserID           uint           `json:"user_id" gorm:"not null;index"`
	ImageURL         string         `json:"image_url" gorm:"not null"`
	DetectionResults datatypes.JSON `json:"detection_results" gorm:"type:jsonb"`
	CreatedAt        time.Time      `json:"created_at"`

	// Relationship
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// ApiRequest is the usage ledger: one append-only row per call to a
// rate-limited endpoint. The monthly quota is a count over RequestedAt.
type ApiRequest struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Endpoint    string    `json:"endpoint" gorm:"not null"`
	RequestedAt time.Time `json:"requested_at" gorm:"not null;index"`
}
