package ws

import (
	"encoding/json"
	"testing"
	"time"

	"crypto_miner/internal/game"
)

func TestMarshalTick(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st := game.NewState(start)
	st.Balance = 600
	st.Rank = game.RankSilver
	st.MiningRate = 0.5

	raw, err := marshalTick(st, start.Add(4*time.Second))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var p TickPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Type != "tick" {
		t.Fatalf("type = %q", p.Type)
	}
	if p.AccumulatedCoins != 2 {
		t.Fatalf("accumulated = %v, want 2", p.AccumulatedCoins)
	}
	if p.Balance != 600 || p.Rank != game.RankSilver {
		t.Fatalf("snapshot fields wrong: %+v", p)
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(nil, time.Second)

	a := NewClient("a", nil, hub)
	b := NewClient("b", nil, hub)
	hub.register(a)
	hub.register(b)
	if hub.Count() != 2 {
		t.Fatalf("count = %d, want 2", hub.Count())
	}

	hub.unregister(a)
	if hub.Count() != 1 {
		t.Fatalf("count = %d, want 1", hub.Count())
	}
	hub.unregister(b)
	hub.unregister(b) // double unregister is harmless
	if hub.Count() != 0 {
		t.Fatalf("count = %d, want 0", hub.Count())
	}
}
