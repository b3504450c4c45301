package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	maxInitDataAge = 3600 // seconds
	maxClockSkew   = 300
)

// ValidateInitData verifies the WebApp init_data signature against the bot
// token and rejects stale payloads. On success it returns the parsed values
// with the hash field removed.
func ValidateInitData(initData, botToken string) (url.Values, bool) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, false
	}

	provided, err := hex.DecodeString(values.Get("hash"))
	if err != nil || len(provided) == 0 {
		return nil, false
	}
	values.Del("hash")

	if !hmac.Equal(computeHash(values, botToken), provided) {
		return nil, false
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, false
	}
	now := time.Now().Unix()
	if now-authDate > maxInitDataAge || authDate-now > maxClockSkew {
		return nil, false
	}

	return values, true
}

// computeHash builds the data-check string (sorted key=value lines joined by
// newlines) and signs it with HMAC-SHA256 keyed on SHA256(botToken).
func computeHash(values url.Values, botToken string) []byte {
	lines := make([]string, 0, len(values))
	for k, v := range values {
		lines = append(lines, k+"="+strings.Join(v, ""))
	}
	sort.Strings(lines)

	secret := sha256.Sum256([]byte(botToken))
	h := hmac.New(sha256.New, secret[:])
	h.Write([]byte(strings.Join(lines, "\n")))
	return h.Sum(nil)
}
