package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nidoham/Social-v2/internal/cache"
	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/social"
	"github.com/nidoham/Social-v2/internal/store"
	"github.com/nidoham/Social-v2/pkg/config"
	"github.com/nidoham/Social-v2/pkg/logger"
)

// Seeds a handful of demo accounts and follow edges for local
// development. Run with: go run scripts/seed.go
func main() {
	force := flag.Bool("force", false, "Recreate accounts even if they already exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Env); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx := context.Background()
	mongoStore, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoStore.Close(context.Background())

	repo := social.NewRepository(mongoStore, cache.NewProfileCache(cfg.CacheTTL), nil)

	usernames := []string{"alice", "bob", "carol", "dave"}
	for i, username := range usernames {
		if !*force {
			if available, err := repo.IsUsernameAvailable(ctx, username); err != nil {
				log.Fatal("Availability check failed", zap.Error(err))
			} else if !available {
				log.Info("Account exists, skipping", zap.String("username", username))
				continue
			}
		}

		now := time.Now().UTC()
		u := domain.User{
			ID: username,
			Profile: domain.Profile{
				Name:     "Demo " + username,
				Username: username,
				Email:    username + "@example.com",
				Bio:      "Seeded demo account",
				Verified: i == 0,
				Created:  now,
				Updated:  now,
			},
		}
		if err := repo.CreateUser(ctx, u); err != nil {
			log.Fatal("Failed to create user", zap.String("username", username), zap.Error(err))
		}
		log.Info("Created user", zap.String("username", username))
	}

	// A small follow graph so the list, mutual and suggestion paths
	// have something to chew on.
	edges := [][2]string{
		{"bob", "alice"},
		{"carol", "alice"},
		{"carol", "bob"},
		{"dave", "bob"},
	}
	for _, edge := range edges {
		err := repo.FollowUser(ctx, edge[0], edge[1])
		switch {
		case err == nil:
			log.Info("Created follow edge", zap.String("from", edge[0]), zap.String("to", edge[1]))
		case social.IsInvalidOperation(err):
			// Already following from an earlier run.
		default:
			log.Fatal("Failed to create follow edge", zap.Error(err))
		}
	}

	log.Info("Seeding complete")
}
