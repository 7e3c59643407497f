package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// AuthService issues and validates JWT tokens. Authentication is
// demo-grade on purpose: a login succeeds when the username equals the
// password. The cart and catalog never consume identity; the session id
// is the only correlation key.
type AuthService struct {
	secret   []byte
	issuer   string
	audience string
}

func NewAuthService(secret, issuer, audience string) *AuthService {
	return &AuthService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// LoginResult reports the outcome of a login attempt.
type LoginResult struct {
	Success  bool   `json:"success"`
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message"`
}

type userClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Login authenticates the credentials and issues a signed token on
// success.
func (s *AuthService) Login(username, password string) (LoginResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return LoginResult{Success: false, Message: "Username and password are required."}, nil
	}

	if username != password {
		return LoginResult{Success: false, Message: "Invalid username or password."}, nil
	}

	token, err := s.generateToken(username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return LoginResult{
		Success:  true,
		Token:    token,
		Username: username,
		Message:  "Login successful.",
	}, nil
}

// ValidateToken reports whether the token is well-formed, correctly
// signed, unexpired and issued by this service. No clock skew is
// tolerated.
func (s *AuthService) ValidateToken(token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}

	parsed, err := jwt.ParseWithClaims(token, &userClaims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	return err == nil && parsed.Valid
}

// UsernameFromToken extracts the username claim without validating the
// signature or expiry. Returns an empty string when the token cannot be
// parsed.
func (s *AuthService) UsernameFromToken(token string) string {
	claims := &userClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	return claims.Name
}

func (s *AuthService) generateToken(username string) (string, error) {
	now := time.Now().UTC()
	claims := userClaims{
		Name: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
