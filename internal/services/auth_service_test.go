package services

import (
	"errors"
	"testing"

	"github.com/brainlink-app/brainlink-backend/internal/dto"
	"github.com/brainlink-app/brainlink-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestRegisterCreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
		Role:     models.RoleMentor,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("token pair missing")
	}
	if resp.User.Role != models.RoleMentor {
		t.Errorf("role = %q, want mentor", resp.User.Role)
	}

	var profile models.Profile
	if err := db.First(&profile, "user_id = ?", resp.User.ID).Error; err != nil {
		t.Errorf("profile not created alongside user: %v", err)
	}
}

func TestRegisterInvalidRoleFallsBackToStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
		Role:     "warlord",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.Role != models.RoleStudent {
		t.Errorf("role = %q, want student", resp.User.Role)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	first := &dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct horse battery"}
	if _, err := svc.Register(first); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "correct horse battery"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("got %v, want ErrUsernameTaken", err)
	}
	_, err = svc.Register(&dto.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "correct horse battery"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("got %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	if _, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct horse battery"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	resp, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["username"] != "alice" {
		t.Errorf("username claim = %v, want alice", claims["username"])
	}

	if _, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Username: "nobody", Password: "irrelevant"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user got %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("refresh must rotate the token")
	}

	// The consumed token is revoked.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("reused token got %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	registered, err := svc.Register(&dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "correct horse battery"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: registered.RefreshToken}); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("post-logout refresh got %v, want ErrInvalidToken", err)
	}
}
