package jwt

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultIssuer issues the JWT when no issuer is configured
const DefaultIssuer = "switch-server"

// ErrInvalidRoom is returned when a token was issued for a different room
var ErrInvalidRoom = errors.New("invalid audience")

// ErrInvalidIssuer is returned when a token was issued by someone else
var ErrInvalidIssuer = errors.New("invalid issuer")

// Signer signs and validates reconnection tokens
// A token binds a player name (subject) to a room (audience)
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner returns a signer that uses HS256 with the given secret
// If secret is empty, a random secret is generated, tokens will then not survive a restart
func NewSigner(secret, issuer string) (*Signer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("could not generate a secret: %w", err)
		}

		logrus.Debug("no jwt secret configured, generated a random one")
	}

	if issuer == "" {
		issuer = DefaultIssuer
	}

	return &Signer{
		secret: key,
		issuer: issuer,
		ttl:    time.Hour * 24,
	}, nil
}

// Sign will sign a JWT for the player in the room
func (s *Signer) Sign(roomID, name string) (string, error) {
	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{roomID},
		ExpiresAt: jwtgo.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		Issuer:    s.issuer,
		Subject:   name,
	})

	return token.SignedString(s.secret)
}

// Validate will validate a signed JWT and return the name it was issued to
func (s *Signer) Validate(signedString, roomID string) (string, error) {
	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return s.secret, nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if !containsAudience(claims.Audience, roomID) {
		return "", ErrInvalidRoom
	}

	if claims.Issuer != s.issuer {
		return "", ErrInvalidIssuer
	}

	return claims.Subject, nil
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
