package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	dErrors "domainstore/pkg/domain-errors"
)

// initDataUser mirrors the `user` JSON field inside Telegram WebApp init data.
// The ID arrives as a JSON number; we keep identities opaque strings internally.
type initDataUser struct {
	ID        json.Number `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

// ParseInitData validates and parses the init data blob the mini-app shell
// forwards with each request. The blob is URL-query encoded and carries a
// `user` JSON field plus a `hash` signed by the bot token.
//
// Validation follows the Telegram WebApp scheme: the data-check string is all
// fields except `hash`, sorted by key and joined with newlines; the expected
// hash is HMAC-SHA256 over it, keyed with HMAC-SHA256("WebAppData", botToken).
// skipValidation bypasses the signature check for local development.
func ParseInitData(raw, botToken string, skipValidation bool) (*User, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, dErrors.New(dErrors.CodeIdentityUnavailable, "user information not available")
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeIdentityUnavailable, "malformed init data")
	}

	if !skipValidation {
		if err := validateHash(values, botToken); err != nil {
			return nil, err
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, dErrors.New(dErrors.CodeIdentityUnavailable, "init data carries no user")
	}

	var wire initDataUser
	if err := json.Unmarshal([]byte(userJSON), &wire); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeIdentityUnavailable, "malformed user payload")
	}
	if wire.ID.String() == "" {
		return nil, dErrors.New(dErrors.CodeIdentityUnavailable, "user id missing from init data")
	}

	return &User{
		ID:        wire.ID.String(),
		Username:  wire.Username,
		FirstName: wire.FirstName,
		LastName:  wire.LastName,
	}, nil
}

func validateHash(values url.Values, botToken string) error {
	gotHash := values.Get("hash")
	if gotHash == "" {
		return dErrors.New(dErrors.CodeIdentityUnavailable, "init data is unsigned")
	}

	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	want := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(want), []byte(gotHash)) {
		return dErrors.New(dErrors.CodeIdentityUnavailable, "init data signature mismatch")
	}
	return nil
}
