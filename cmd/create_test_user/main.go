package main

import (
	"context"
	"log"
	"os"
	"time"

	"crypto_miner/internal/db"
	"crypto_miner/internal/domain"
	"crypto_miner/internal/game"
	"crypto_miner/internal/identity"
	"crypto_miner/internal/repository"
	"crypto_miner/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	profiles := repository.NewProfileRepository(pool)
	states := repository.NewGameStateRepository(pool)
	ctx := context.Background()

	userID := "1234567890"

	p, err := profiles.Get(ctx, userID)
	if err == nil {
		log.Printf("profile already exists user_id=%s referral_code=%s\n", p.UserID, p.ReferralCode)
	} else {
		p = &domain.UserProfile{
			UserID:       userID,
			Username:     "testuser",
			HighestRank:  "Novice",
			ReferralCode: identity.NewReferralCode(userID),
		}
		if err := profiles.Upsert(ctx, p); err != nil {
			log.Fatalf("create profile failed: %v", err)
		}
		log.Printf("profile created user_id=%s\n", p.UserID)
	}

	if _, err := states.Load(ctx, userID); err != nil {
		st := game.NewState(time.Now())
		if err := states.Save(ctx, userID, st); err != nil {
			log.Fatalf("save initial state failed: %v", err)
		}
		log.Printf("initial state saved balance=%.0f rank=%s\n", st.Balance, st.Rank)
	}

	// verify read
	p2, err := profiles.Get(ctx, userID)
	if err != nil {
		log.Fatalf("get profile failed: %v", err)
	}
	log.Printf("fetched profile user_id=%s username=%s created_at=%v\n", p2.UserID, p2.Username, p2.CreatedAt)

	tokens := service.NewTokenIssuer(jwtSecret, 24*time.Hour)
	token, err := tokens.Generate(userID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
