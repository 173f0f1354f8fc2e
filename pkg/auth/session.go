package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	sessionCookieName = "neighborly_session"
	minSecretLen      = 32
	// SessionTTL is how long an issued session cookie stays valid.
	SessionTTL = 30 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("auth: invalid session token")
	ErrExpiredToken = errors.New("auth: session token expired")
)

// A session token is base64url("<user id>|<unix expiry>") + "." + hex(HMAC-SHA256).

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateSessionToken signs a user ID and expiry into a session cookie value.
func CreateSessionToken(userID string, expires time.Time, secret []byte) string {
	payload := []byte(userID + "|" + strconv.FormatInt(expires.Unix(), 10))
	return base64.RawURLEncoding.EncodeToString(payload) + "." + sign(payload, secret)
}

// VerifySessionToken checks the signature and expiry and returns the user ID.
func VerifySessionToken(token string, secret []byte, now time.Time) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(sig)) {
		return "", ErrInvalidToken
	}

	sep := strings.LastIndexByte(string(payload), '|')
	if sep <= 0 {
		return "", ErrInvalidToken
	}
	exp, err := strconv.ParseInt(string(payload[sep+1:]), 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !now.Before(time.Unix(exp, 0)) {
		return "", ErrExpiredToken
	}
	return string(payload[:sep]), nil
}

// SessionCookieName is the name of the signed session cookie.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes pads the secret to at least 32 bytes.
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
