// Command initdb wipes the user table and reseeds the default admin and
// test accounts. Destructive; meant for fresh setups only. The running
// server never does this — it only creates the admin if absent.
package main

import (
	"context"
	"log"
	"time"

	"github.com/ananyapurwar/ALGOTRACK/internal/app"
	"github.com/ananyapurwar/ALGOTRACK/internal/config"
	"github.com/ananyapurwar/ALGOTRACK/internal/repo"
	"github.com/ananyapurwar/ALGOTRACK/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := app.RunMigrations(cfg.PG.DSN, "./migrations"); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.PG.DSN)
	if err != nil {
		log.Fatalf("pg connect: %v", err)
	}
	defer pool.Close()

	userSvc := service.NewUserService(repo.NewPGUserRepo(pool))
	if err := userSvc.ResetAndSeed(ctx); err != nil {
		log.Fatalf("reset and seed: %v", err)
	}

	log.Printf("database initialized: default admin and test users created")
}
