package token

import (
	"time"

	errprocess "github.com/Saieshwar5/sangam-sub001/pkg/err"

	"github.com/golang-jwt/jwt/v5"
)

// RoleType set user role
type RoleType string

const (
	// RoleAdmin is the admin role
	RoleAdmin RoleType = "admin"
	// RoleUser is the user role
	RoleUser RoleType = "user"
)

// Claims structure for custom claims in JWT
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Secret Key for JWT signing and validation
var (
	JWTSecret       = []byte("secure_secret_key")
	tokenExpiration = 60 * time.Minute
)

// GenerateJWT generates a JWT token
func GenerateJWT(userID, role, issuer string) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

// Verify parses the bearer token and extracts the Claims.
// Both the HTTP middleware and the websocket handshake resolve identity
// through here, so one browser session maps to one identity on both paths.
func Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, errprocess.Auth("missing token")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errprocess.Auth("unexpected signing method")
		}
		return JWTSecret, nil
	})

	if err != nil {
		return nil, errprocess.Wrap(errprocess.KindAuth, "invalid token", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errprocess.Auth("invalid token claims")
	}

	return claims, nil
}
