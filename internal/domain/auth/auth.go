package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// UserContext identifies the requesting user for the duration of one
// request. There is no real authentication in this system; the token only
// carries the employee id and an admin role flag.
type UserContext struct {
	UserID   string
	RoleName string
}

func (u UserContext) IsAdmin() bool {
	return u.RoleName == RoleAdmin
}

type Claims struct {
	UserID   string `json:"uid"`
	RoleName string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
