package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding for session IDs
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken is the signed, browser-facing form of a session.  The Token
// field holds an HS256 JWT carrying the session ID, customer ID and
// username; the server-side session record in Redis stays authoritative, so
// deleting that record revokes the token before Exp.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned when a session token fails to parse or its
// claims are not in the expected shape.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionID returns a cryptographically secure random session identifier
// (32 bytes, hex encoded).
func NewSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// NewSessionToken builds and signs an HS256 JWT binding a session ID to a
// customer identity. Claims: sid (session ID), sub (customer ID), uname
// (username), exp and iat.
func NewSessionToken(secret, sessionID, customerID, username string, ttlHours int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sid":   sessionID,
		"sub":   customerID,
		"uname": username,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature of a session token and extracts
// the session ID, customer ID and username claims.
func ParseSessionToken(secret, raw string) (sessionID, customerID, username string, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", "", "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", "", ErrInvalidToken
	}
	sessionID, _ = claims["sid"].(string)
	customerID, _ = claims["sub"].(string)
	username, _ = claims["uname"].(string)
	if sessionID == "" || customerID == "" {
		return "", "", "", ErrInvalidToken
	}
	return sessionID, customerID, username, nil
}
