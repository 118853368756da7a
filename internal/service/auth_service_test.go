package service

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pathfinder/internal/config"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}
	return NewAuthService(config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		JWTSecret:         "test-secret",
	})
}

func TestLoginAndValidate(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Login() returned empty token")
	}
	if resp.AdminID == "" {
		t.Fatal("Login() returned empty admin id")
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.AdminID != resp.AdminID {
		t.Errorf("claims.AdminID = %q, want %q", claims.AdminID, resp.AdminID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong username", "root", "correct-horse"},
		{"wrong password", "admin", "wrong"},
		{"empty password", "admin", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "garbage"},
		{"wrong signature", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJhZG1pbklkIjoieCJ9.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	svc := newTestAuthService(t)

	other := NewAuthService(config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: svc.adminPasswordHash,
		JWTSecret:         "different-secret",
	})

	resp, err := other.Login("admin", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := svc.ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}
