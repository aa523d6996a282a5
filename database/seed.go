package database

import (
	"log"

	"github.com/smartbrain-app/smartbrain-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	name       string
	email      string
	password   string
	entries    int
	authorized bool
}

var demoUsers = []seedUser{
	{name: "John Doe", email: "test@email.com", password: "secret", entries: 3, authorized: true},
	{name: "Bob Cat", email: "bob@email.com", password: "secret2", entries: 1, authorized: false},
	{name: "Admin", email: "admin@email.com", password: "admin", entries: 0, authorized: true},
}

// Seed inserts the demo accounts, keyed by email so reruns are no-ops.
func Seed(db *gorm.DB) error {
	for _, su := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), 10)
		if err != nil {
			return err
		}

		user := models.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Entries:      su.entries,
			IsAuthorized: su.authorized,
		}

		result := db.Where(models.User{Email: su.email}).FirstOrCreate(&user)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			log.Printf("Seeded demo user %s", su.email)
		}
	}

	return nil
}
