package server

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("server: invalid credentials")
	ErrTokenExpired       = errors.New("server: token expired")
	ErrInvalidToken       = errors.New("server: invalid token")
)

// adminClaims identifies the single admin role crossgen's protected
// endpoints (rebuild-index, purge-cache) require.
type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// authService issues and validates the admin JWT. Unlike a
// multi-user system there is exactly one role: a deployment is
// configured with one bcrypt-hashed passphrase at startup.
type authService struct {
	jwtSecret     []byte
	passwordHash  string
	tokenDuration time.Duration
}

func newAuthService(jwtSecret, adminPassword string) (*authService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &authService{
		jwtSecret:     []byte(jwtSecret),
		passwordHash:  string(hash),
		tokenDuration: 2 * time.Hour,
	}, nil
}

func (s *authService) checkPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
}

func (s *authService) generateToken() (string, error) {
	claims := &adminClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "crossgen",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *authService) validateToken(tokenString string) (*adminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &adminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid || claims.Role != "admin" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
