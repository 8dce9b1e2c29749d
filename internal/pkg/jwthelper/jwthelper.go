package jwthelper

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vietanh2810/eventdesk/internal/domain"
)

const issuer = "eventdesk"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	Role      domain.Role `json:"role"`
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	UserAgent string      `json:"ua"`
}

// Session rebuilds the session the token was issued for.
func (c Claims) Session() (domain.Session, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 || !c.Role.Valid() {
		return domain.Session{}, ErrInvalidToken
	}
	return domain.Session{
		UserID:   id,
		Role:     c.Role,
		Username: c.Username,
		Name:     c.Name,
	}, nil
}

func GenerateToken(key []byte, session domain.Session, userAgent string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.Itoa(session.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:      session.Role,
		Username:  session.Username,
		Name:      session.Name,
		UserAgent: userAgent,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

func ParseToken(key []byte, tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("jwt.ParseWithClaims -> %w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
