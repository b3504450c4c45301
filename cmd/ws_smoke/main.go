package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"crypto_miner/internal/db"
	"crypto_miner/internal/domain"
	"crypto_miner/internal/game"
	"crypto_miner/internal/identity"
	"crypto_miner/internal/repository"
	"crypto_miner/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	userID := "3001"

	profiles := repository.NewProfileRepository(pool)
	if err := profiles.Upsert(ctx, &domain.UserProfile{
		UserID:       userID,
		Username:     "smoke",
		HighestRank:  "Novice",
		ReferralCode: identity.NewReferralCode(userID),
	}); err != nil {
		log.Fatalf("upsert profile: %v", err)
	}

	// seed a state with one upgrade bought so the ticks show accrual
	states := repository.NewGameStateRepository(pool)
	st := game.NewState(time.Now())
	st.Balance = 100
	if next, _, err := game.Purchase(st, "basic_miner"); err == nil {
		st = next
	}
	if err := states.Save(ctx, userID, st); err != nil {
		log.Fatalf("save state: %v", err)
	}

	tokens := service.NewTokenIssuer(jwtSecret, time.Hour)
	token, err := tokens.Generate(userID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	wsURL := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 5; i++ {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("read: %v", err)
		}
		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		log.Printf("tick %d: %s", i+1, string(msg))
	}

	log.Println("smoke test finished")
}
