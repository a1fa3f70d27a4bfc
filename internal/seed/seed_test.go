package seed

import (
	"strings"
	"testing"

	"learnhub/internal/auth"
	"learnhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestSeeder_Run(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(Options{NumUsers: 5, AdminPassword: "super-secret"}))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 6, count)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.True(t, auth.CheckPassword("super-secret", admin.Password))

	var demo []models.User
	require.NoError(t, db.Where("role = ?", models.RoleUser).Find(&demo).Error)
	require.Len(t, demo, 5)
	for _, u := range demo {
		assert.True(t, auth.CheckPassword("password", u.Password))
	}
}

func TestSeeder_Run_AdminIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(Options{NumUsers: 0}))
	require.NoError(t, seeder.Run(Options{NumUsers: 0}))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeeder_Run_GivesUpOnPersistentCollisions(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	// Pre-insert the exact accounts a replayed faker sequence will produce,
	// so every demo user Run builds collides with an existing row.
	gofakeit.Seed(7)
	hash := "$2a$10$fakehashfakehashfakehash"
	for i := 0; i < maxCollisionRetries+2; i++ {
		if err := db.Create(seeder.buildDemoUser(hash)).Error; err != nil {
			// The sequence itself may repeat a username.
			require.Contains(t, strings.ToLower(err.Error()), "unique")
		}
	}

	gofakeit.Seed(7)
	err := seeder.Run(Options{NumUsers: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collisions")
}

func TestSeeder_ClearAll(t *testing.T) {
	db := setupSeedDB(t)
	seeder := NewSeeder(db)

	require.NoError(t, seeder.Run(Options{NumUsers: 2}))
	require.NoError(t, seeder.ClearAll())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
