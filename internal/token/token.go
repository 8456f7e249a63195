package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token is invalid or expired")

// Identity is the {userId, email} pair proven by a valid token. It is the one
// identity type shared by the token service, the authenticator middleware and
// the page guards.
type Identity struct {
	UserID string
	Email  string
}

// Service issues and verifies HS256 signed tokens. The secret is injected at
// construction rather than read from the environment on every call.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the identity, valid for the configured TTL.
func (s *Service) Issue(identity Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": identity.UserID,
		"email":  identity.Email,
		"iat":    now.Unix(),
		"exp":    now.Add(s.ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates the signature and expiry and returns the embedded identity.
// Malformed, tampered and expired tokens all come back as ErrInvalidToken.
func (s *Service) Verify(tokenString string) (Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return Identity{UserID: userID, Email: email}, nil
}

// TTL reports the configured token lifetime, used by the login handler to set
// the cookie Max-Age to match.
func (s *Service) TTL() time.Duration {
	return s.ttl
}
