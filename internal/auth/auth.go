// Package auth checks operator credentials and issues access tokens.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prodexa/internal/model"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "prodexa"

// ErrInvalidToken is returned for malformed, expired or foreign tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Authenticator verifies logins and access tokens.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Token, error)
	ParseToken(token string) (string, error)
}

type authenticator struct {
	usersFile string
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthenticator creates an authenticator backed by a users file mapping
// usernames to bcrypt hashes. The file is re-read on every login.
func NewAuthenticator(usersFile, secret string, tokenTTL time.Duration, logger zerolog.Logger) Authenticator {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &authenticator{
		usersFile: usersFile,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// Login checks the credentials and issues a signed token.
func (a *authenticator) Login(ctx context.Context, username, password string) (Token, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Token{}, model.Validation("username and password cannot be empty")
	}

	users := a.loadUsers()
	hash, ok := users[username]
	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		a.logger.Warn().Str("username", username).Msg("login rejected")
		return Token{}, model.ErrInvalidCredentials
	}

	expiresAt := time.Now().UTC().Add(a.tokenTTL)
	claims := jwtlib.RegisteredClaims{
		Subject:   username,
		Issuer:    issuer,
		IssuedAt:  jwtlib.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	a.logger.Info().Str("username", username).Msg("login succeeded")
	return Token{AccessToken: signed, Username: username, ExpiresAt: expiresAt}, nil
}

// ParseToken validates the token and returns its subject.
func (a *authenticator) ParseToken(token string) (string, error) {
	claims := &jwtlib.RegisteredClaims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, func(t *jwtlib.Token) (interface{}, error) {
		return a.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}), jwtlib.WithIssuer(issuer))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// loadUsers reads the users file. A missing or unreadable file means nobody
// can log in.
func (a *authenticator) loadUsers() map[string]string {
	users, err := LoadUsers(a.usersFile)
	if err != nil {
		a.logger.Warn().Err(err).Str("file", a.usersFile).Msg("users file unreadable, treating as empty")
		return map[string]string{}
	}
	return users
}

// LoadUsers reads a JSON object of username to bcrypt hash. A missing file
// yields an empty map.
func LoadUsers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read users file %s: %w", path, err)
	}

	users := map[string]string{}
	if strings.TrimSpace(string(data)) == "" {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse users file %s: %w", path, err)
	}
	return users, nil
}

// SaveUsers writes the users file with 4-space indentation.
func SaveUsers(path string, users map[string]string) error {
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create users directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write users file %s: %w", path, err)
	}
	return nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
