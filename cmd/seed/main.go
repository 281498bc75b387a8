package main

import (
	"context"
	"log"
	"os"

	"consigne/internal/auth"
	"consigne/internal/config"
	"consigne/internal/db"
	"consigne/internal/model"
	"consigne/internal/repository"
)

// Seeds the initial admin account and the base materials so a fresh install
// is usable. Existing records are left alone.

var baseMaterials = []string{"Verre", "PET", "Inox"}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Address{}, &model.User{}, &model.Material{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	materialRepo := repository.NewMaterialRepository(gormDB)

	adminEmail := getSeedEnv("SEED_ADMIN_EMAIL", "admin@consigne.local")
	existing, err := userRepo.FindByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("Failed to check admin account: %v", err)
	}
	if existing != nil {
		log.Printf("Admin account %s already present, skipping", adminEmail)
	} else {
		hash, err := auth.HashPassword(getSeedEnv("SEED_ADMIN_PASSWORD", "changeme"))
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin := &model.User{
			Username:     "admin",
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			Status:       model.StatusActive,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create admin account: %v", err)
		}
		log.Printf("Created admin account %s", adminEmail)
	}

	seeded := 0
	for _, name := range baseMaterials {
		found, err := materialRepo.Search(ctx, repository.MaterialQuery{Contains: name, Limit: 1})
		if err != nil {
			log.Fatalf("Failed to check material %q: %v", name, err)
		}
		if len(found) > 0 {
			continue
		}
		if err := materialRepo.Create(ctx, &model.Material{Name: name}); err != nil {
			log.Fatalf("Failed to create material %q: %v", name, err)
		}
		seeded++
	}

	log.Printf("Seed completed: %d materials created", seeded)
}

func getSeedEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
