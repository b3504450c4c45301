package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

// buildInitData signs fields the same way Telegram does.
func buildInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	var parts []string
	for k, v := range fields {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(parts, "\n")))

	vals := url.Values{}
	for k, v := range fields {
		vals.Add(k, v)
	}
	vals.Add("hash", hex.EncodeToString(mac.Sum(nil)))
	return vals.Encode()
}

func TestValidateInitData(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":42,"username":"miner","first_name":"M"}`,
	}

	initData := buildInitData(t, botToken, fields)

	values, ok := ValidateInitData(initData, botToken)
	if !ok {
		t.Fatalf("expected valid init data")
	}

	user, err := ParseUser(values)
	if err != nil {
		t.Fatalf("parse user: %v", err)
	}
	if user.UserID() != "42" || user.DisplayName() != "miner" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestValidateInitDataTampered(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"user":      `{"id":42,"username":"miner","first_name":"M"}`,
	}
	initData := buildInitData(t, botToken, fields)

	if _, ok := ValidateInitData(initData+"&x=1", botToken); ok {
		t.Fatalf("expected tampered init data to be rejected")
	}
	if _, ok := ValidateInitData(initData, "other-token"); ok {
		t.Fatalf("expected wrong bot token to be rejected")
	}
}

func TestValidateInitDataStale(t *testing.T) {
	botToken := "test-bot-token"
	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Add(-2*time.Hour).Unix(), 10),
		"user":      `{"id":42}`,
	}
	initData := buildInitData(t, botToken, fields)

	if _, ok := ValidateInitData(initData, botToken); ok {
		t.Fatalf("expected stale auth_date to be rejected")
	}
}
