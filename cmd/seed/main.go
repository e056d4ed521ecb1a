// seed inserts bootstrap data for local development: an admin account and the
// initial locations. Idempotent: skips inserts if the admin user already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"restaurant-inventory/backend/internal/config"
	"restaurant-inventory/backend/internal/db"
	"restaurant-inventory/backend/internal/security"
	userdomain "restaurant-inventory/backend/internal/user/domain"
	userrepo "restaurant-inventory/backend/internal/user/repository"
)

const (
	adminUsername = "admin"
	adminEmail    = "admin@example.com"
	adminPassword = "ChangeMe123!" // for local development only
)

var seedLocations = []struct {
	name    string
	address string
}{
	{"Central Kitchen", "88 Rama IX Rd, Bangkok"},
	{"Siam Square Branch", "430 Siam Square Soi 5, Bangkok"},
	{"Thonglor Branch", "55 Sukhumvit 55, Bangkok"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)

	existing, err := users.GetByLogin(ctx, adminUsername)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if existing != nil {
		log.Println("seed: admin user already exists, nothing to do")
		return
	}

	hash, err := security.NewHasher(cfg.BcryptCost).Hash([]byte(adminPassword))
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}
	now := time.Now().UTC()
	admin := &userdomain.User{
		ID:           uuid.New().String(),
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: hash,
		FirstName:    "System",
		LastName:     "Admin",
		Role:         userdomain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("seed: create admin: %v", err)
	}

	for _, l := range seedLocations {
		_, err := conn.ExecContext(ctx, `
			INSERT INTO locations (id, name, address, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, $4, $4)`,
			uuid.New().String(), l.name, l.address, now,
		)
		if err != nil {
			log.Fatalf("seed: create location %q: %v", l.name, err)
		}
	}

	log.Printf("seed: created admin user %q and %d locations", adminUsername, len(seedLocations))
}
