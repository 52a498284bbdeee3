package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wordmart/internal/config"
	"github.com/wordmart/internal/models"
	"github.com/wordmart/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "user-auth-test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}
	svc := NewUserAuthService(cfg, repository.NewUserRepository(db))
	return svc, db
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, _, err := svc.Register("Writer@Example.com", "sturdy-pass-1", "", "en-US")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "writer@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.DisplayName != "writer" {
		t.Fatalf("display name should default from email, got %q", user.DisplayName)
	}
	if token == "" {
		t.Fatalf("register should issue a token")
	}

	logged, loginToken, _, err := svc.Login("writer@example.com", "sturdy-pass-1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login user id want %d, got %d", user.ID, logged.ID)
	}
	claims, err := svc.ParseUserJWT(loginToken)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterRejectsDuplicateAndWeakPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("dup@example.com", "sturdy-pass-1", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register("dup@example.com", "sturdy-pass-1", "", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got: %v", err)
	}
	if _, _, _, err := svc.Register("weak@example.com", "short1", "", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for short password, got: %v", err)
	}
	if _, _, _, err := svc.Register("weak@example.com", "no-digits-here", "", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword for missing digit, got: %v", err)
	}
	if _, _, _, err := svc.Register("not an email", "sturdy-pass-1", "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad email, got: %v", err)
	}
}

func TestLoginWrongPasswordAndDisabledUser(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("client@example.com", "sturdy-pass-1", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Login("client@example.com", "wrong-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "sturdy-pass-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", "banned").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login("client@example.com", "sturdy-pass-1"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got: %v", err)
	}
}

func TestLogoutInvalidatesEarlierTokens(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, _, err := svc.Register("leaver@example.com", "sturdy-pass-1", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}

	// 登出把失效水位推进到当前时刻，之前签发的 token 都被拒绝
	time.Sleep(10 * time.Millisecond)
	if err := svc.Logout(user.ID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	state, err := svc.ResolveAuthState(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resolve auth state failed: %v", err)
	}
	if state.TokenInvalidBefore == 0 {
		t.Fatalf("token invalid watermark should be set")
	}
	if claims.IssuedAt.Unix() > state.TokenInvalidBefore {
		t.Fatalf("old token issued_at %d should not pass watermark %d", claims.IssuedAt.Unix(), state.TokenInvalidBefore)
	}
}

func TestChangePasswordBumpsTokenVersion(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, _, err := svc.Register("rotator@example.com", "sturdy-pass-1", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-pass-1", "stronger-pass-2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if err := svc.ChangePassword(user.ID, "sturdy-pass-1", "stronger-pass-2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	state, err := svc.ResolveAuthState(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resolve auth state failed: %v", err)
	}
	if state.TokenVersion != claims.TokenVersion+1 {
		t.Fatalf("token version want %d, got %d", claims.TokenVersion+1, state.TokenVersion)
	}

	if _, _, _, err := svc.Login("rotator@example.com", "stronger-pass-2"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}
