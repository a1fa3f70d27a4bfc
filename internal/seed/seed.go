// Package seed provides helpers to create development and demo accounts.
// These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"strings"

	"learnhub/internal/auth"
	"learnhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// maxCollisionRetries bounds consecutive duplicate-identity retries before
// Run gives up.
const maxCollisionRetries = 10

// Options controls what the seeder creates.
type Options struct {
	NumUsers      int
	AdminPassword string
}

// Seeder populates the database with demo accounts.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all user records. Development only.
func (s *Seeder) ClearAll() error {
	return s.db.Exec("DELETE FROM users").Error
}

// Run creates one deterministic admin account plus randomized demo users.
func (s *Seeder) Run(opts Options) error {
	if opts.AdminPassword == "" {
		opts.AdminPassword = "admin123"
	}

	if err := s.createAdmin(opts.AdminPassword); err != nil {
		return err
	}

	// Demo accounts share one hash; hashing per user would make large
	// seeds needlessly slow.
	demoHash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	created := 0
	collisions := 0
	for created < opts.NumUsers {
		user := s.buildDemoUser(demoHash)
		if err := s.db.Create(user).Error; err != nil {
			// gofakeit can collide on usernames; skip and retry, but give
			// up if collisions keep coming so the loop cannot spin forever.
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				collisions++
				if collisions >= maxCollisionRetries {
					return fmt.Errorf("seeding aborted after %d consecutive username collisions", collisions)
				}
				continue
			}
			return err
		}
		created++
		collisions = 0
	}

	log.Printf("Seeded %d demo users (+1 admin)", created)
	return nil
}

func (s *Seeder) createAdmin(password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@learnhub.dev",
		Password: hash,
		FullName: "LearnHub Admin",
		Role:     models.RoleAdmin,
		IsActive: true,
	}

	err = s.db.Where("username = ?", admin.Username).FirstOrCreate(admin).Error
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}

func (s *Seeder) buildDemoUser(hash string) *models.User {
	return &models.User{
		Username: strings.ToLower(gofakeit.Username()),
		Email:    strings.ToLower(gofakeit.Email()),
		Password: hash,
		FullName: gofakeit.Name(),
		Role:     models.RoleUser,
		IsActive: true,
	}
}
