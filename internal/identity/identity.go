// Package identity describes where a session comes from. User ids are opaque
// strings: the Telegram account id when the app runs inside the Telegram
// container, or a locally generated anonymous id otherwise.
package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// HostEnvironment is the capability object handed to request handling at
// startup instead of ambient "are we inside Telegram" checks.
type HostEnvironment struct {
	Embedded bool
	UserID   string
}

// NewAnonymousID mints a fresh anonymous user id.
func NewAnonymousID() string {
	return "anon_" + randomToken(6)
}

// IsAnonymous reports whether id was minted by NewAnonymousID.
func IsAnonymous(id string) bool {
	return strings.HasPrefix(id, "anon_")
}

// NewReferralCode derives a share code from the user id plus a random suffix.
func NewReferralCode(userID string) string {
	prefix := userID
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return prefix + randomToken(3)
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return hex.EncodeToString(buf)
}
