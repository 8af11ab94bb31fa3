// Command createadmin bootstraps the first super_admin account so a fresh
// installation can log in.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"crane-backend/internal/auth"
	"crane-backend/internal/authz"
	"crane-backend/internal/config"
	"crane-backend/internal/database"
	"crane-backend/internal/db"
	"crane-backend/internal/models"
	"crane-backend/internal/repositories"
	"crane-backend/migrations"
)

func main() {
	email := flag.String("email", "", "Admin email (required)")
	password := flag.String("password", "", "Admin password (required)")
	name := flag.String("name", "Administrator", "Full name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg := config.Load()
	pool := db.Connect(cfg)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.NewMigrator(pool, migrations.FS, ".").RunMigrations(ctx); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	repo := repositories.NewUserRepository(pool)

	if existing, _ := repo.GetByEmail(ctx, *email); existing != nil {
		log.Fatalf("user %s already exists", *email)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	user := &models.User{
		Email:        *email,
		FullName:     *name,
		PasswordHash: hash,
		Role:         authz.RoleSuperAdmin,
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("creating user: %v", err)
	}

	log.Printf("super_admin %s created (id=%d)", user.Email, user.ID)
}
