package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options holds the connection parameters for the portal database.
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Connect opens a postgres-backed gorm handle. The handle is passed down
// explicitly to every repository; there is no package-level singleton.
func Connect(opts Options) (*gorm.DB, error) {
	if opts.SSLMode == "" {
		opts.SSLMode = "disable"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		opts.Host,
		opts.User,
		opts.Password,
		opts.Name,
		opts.Port,
		opts.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
