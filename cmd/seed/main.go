// Seeds a demo account and a starter set of universities for local
// development. Safe to run repeatedly; existing rows are left alone.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/RangiraDave/Test-copilot/config"
	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
	"github.com/RangiraDave/Test-copilot/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword("Changeme1")
	if err != nil {
		log.Fatalf("failed to hash demo password: %v", err)
	}
	if _, err := pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name)
		VALUES ($1, 'demo', 'demo@example.com', $2, 'Demo', 'User')
		ON CONFLICT (username) DO NOTHING
	`, uuid.NewString(), hash); err != nil {
		log.Fatalf("failed to seed demo user: %v", err)
	}
	fmt.Println("demo user ensured (demo@example.com / Changeme1)")

	universities := []entity.University{
		{Name: "University of Rwanda", Location: "Kigali, Rwanda", Website: "https://ur.ac.rw", Status: entity.StatusOpen},
		{Name: "Carnegie Mellon University Africa", Location: "Kigali, Rwanda", Website: "https://www.africa.engineering.cmu.edu", Status: entity.StatusOpen},
		{Name: "African Leadership University", Location: "Kigali, Rwanda", Website: "https://www.alueducation.com", Status: entity.StatusClosed},
		{Name: "Makerere University", Location: "Kampala, Uganda", Website: "https://www.mak.ac.ug", Status: entity.StatusOpen},
		{Name: "University of Nairobi", Location: "Nairobi, Kenya", Website: "https://www.uonbi.ac.ke", Status: entity.StatusClosed},
	}
	seeded := 0
	for _, u := range universities {
		tag, err := pool.Exec(ctx, `
			INSERT INTO universities (id, name, location, website, status)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING
		`, uuid.NewString(), u.Name, u.Location, u.Website, u.Status)
		if err != nil {
			log.Fatalf("failed to seed %q: %v", u.Name, err)
		}
		seeded += int(tag.RowsAffected())
	}
	fmt.Printf("universities seeded: %d new, %d already present\n", seeded, len(universities)-seeded)
}
