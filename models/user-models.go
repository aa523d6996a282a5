package models

import (
	"time"
)

// User is an account holder. Entries counts successful detections and
// IsAuthorized gates access to the rate-limited detection endpoint
// independently of the monthly quota.
type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Entries      int       `json:"entries" gorm:"not null;default:0"`
	Joined       time.Time `json:"joined" gorm:"autoCreateTime"`
	IsAuthorized bool      `json:"isAuthorized" gorm:"not null;default:false"`
}

// LoginHistory records a single login attempt. Rows are append-only and
// written for failed attempts as well.
type LoginHistory struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	IPAddress string    `json:"ip_address"`
	Success   bool      `json:"success" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	// Relationship
	User User `gorm:"foreignKey:UserID" json:"-"`
}
