package telegram

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

type WebAppUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}

// ParseUser extracts the user object from validated init_data values.
func ParseUser(values url.Values) (*WebAppUser, error) {
	raw := values.Get("user")
	if raw == "" {
		return nil, errors.New("no user in init data")
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, errors.New("no user id in init data")
	}
	return &user, nil
}

// UserID returns the opaque string identity used as the persistence key.
func (u *WebAppUser) UserID() string {
	return strconv.FormatInt(u.ID, 10)
}

// DisplayName prefers the username and falls back to first/last name.
func (u *WebAppUser) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
