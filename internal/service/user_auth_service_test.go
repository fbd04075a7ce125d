package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT:        config.JWTConfig{SecretKey: "access-test-secret", ExpireHours: 1},
		RefreshJWT: config.JWTConfig{SecretKey: "refresh-test-secret", ExpireHours: 720},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
			ResetToken:         config.ResetTokenConfig{ExpireMinutes: 60},
			TokenRetentionDays: 30,
		},
	}
}

func setupAuthServiceTest(t *testing.T) (*UserAuthService, *SessionService, repository.TokenRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Token{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := testAuthConfig()
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	sessions, err := NewSessionService(cfg, userRepo, tokenRepo)
	if err != nil {
		t.Fatalf("new session service failed: %v", err)
	}
	return NewUserAuthService(cfg, userRepo, sessions), sessions, tokenRepo, db
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Nickname:         "ayse_demir",
		Email:            "Ayse@Example.com",
		Password:         "Sifre1234",
		SecurityQuestion: constants.SecurityQuestionFirstPet,
		SecurityAnswer:   "Boncuk",
	}
}

func TestRegisterIssuesSessionAndRecordsRefreshToken(t *testing.T) {
	auth, _, tokenRepo, _ := setupAuthServiceTest(t)

	user, session, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "ayse@example.com" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.SecurityAnswer != "boncuk" {
		t.Fatalf("security answer should be lowercased, got %s", user.SecurityAnswer)
	}
	if user.SubscriptionPlan != constants.SubscriptionPlanFree {
		t.Fatalf("new user should be on free plan, got %s", user.SubscriptionPlan)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", session)
	}
	if session.ExpiresIn != 3600 {
		t.Fatalf("expected 3600s access ttl, got %d", session.ExpiresIn)
	}

	record, err := tokenRepo.Find(session.RefreshToken, constants.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("find refresh token failed: %v", err)
	}
	if record == nil || record.UserID != user.ID {
		t.Fatalf("refresh token should be recorded for user %d, got %+v", user.ID, record)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	auth, _, _, _ := setupAuthServiceTest(t)
	if _, _, err := auth.Register(validRegisterInput()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	input := validRegisterInput()
	input.Nickname = "other_nickname"
	if _, _, err := auth.Register(input); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	input = validRegisterInput()
	input.Email = "other@example.com"
	if _, _, err := auth.Register(input); !errors.Is(err, ErrNicknameExists) {
		t.Fatalf("expected ErrNicknameExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	auth, _, _, _ := setupAuthServiceTest(t)

	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{"short nickname", func(in *RegisterInput) { in.Nickname = "ab" }, ErrNicknameInvalid},
		{"nickname with space", func(in *RegisterInput) { in.Nickname = "ayse demir" }, ErrNicknameInvalid},
		{"reserved nickname", func(in *RegisterInput) { in.Nickname = "Admin" }, ErrNicknameReserved},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"weak password", func(in *RegisterInput) { in.Password = "kisa" }, ErrWeakPassword},
		{"unknown question", func(in *RegisterInput) { in.SecurityQuestion = "favorite_planet" }, ErrSecurityQuestionInvalid},
		{"empty answer", func(in *RegisterInput) { in.SecurityAnswer = "  " }, ErrSecurityAnswerInvalid},
		{"bad country code", func(in *RegisterInput) { in.CountryCode = "TR"; in.Phone = "5551234567" }, ErrInvalidCountryCode},
		{"bad phone", func(in *RegisterInput) { in.CountryCode = "+90"; in.Phone = "555-1234" }, ErrInvalidPhone},
	}
	for _, tc := range cases {
		input := validRegisterInput()
		tc.mutate(&input)
		if _, _, err := auth.Register(input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestLogin(t *testing.T) {
	auth, _, _, db := setupAuthServiceTest(t)
	if _, _, err := auth.Register(validRegisterInput()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := auth.Login("ayse@example.com", "YanlisSifre1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := auth.Login("yok@example.com", "Sifre1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	user, session, err := auth.Login("AYSE@example.com", "Sifre1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatalf("expected token pair")
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last login time should be set")
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, err := auth.Login("ayse@example.com", "Sifre1234"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestRefreshDoesNotRotateRefreshToken(t *testing.T) {
	auth, sessions, _, _ := setupAuthServiceTest(t)
	_, session, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	refreshed, err := sessions.Refresh(session.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatalf("expected new access token")
	}
	if refreshed.RefreshToken != session.RefreshToken {
		t.Fatalf("refresh token must not rotate")
	}

	// 同一个刷新令牌可以继续使用
	if _, err := sessions.Refresh(session.RefreshToken); err != nil {
		t.Fatalf("second refresh failed: %v", err)
	}
}

func TestRefreshRejectsRevokedAndGarbageTokens(t *testing.T) {
	auth, sessions, _, _ := setupAuthServiceTest(t)
	_, session, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := sessions.Refresh("garbage-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
	// 访问令牌不能当刷新令牌用
	if _, err := sessions.Refresh(session.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}

	sessions.EndSession(session.RefreshToken, false)
	if _, err := sessions.Refresh(session.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestRevokedTokenStaysDeadAfterNewIssuance(t *testing.T) {
	auth, sessions, _, _ := setupAuthServiceTest(t)
	user, oldSession, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := sessions.RevokeUserSessions(user.ID); err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}
	// 同一秒内立即签发新会话，旧令牌也不能复活
	newSession, err := sessions.IssueSession(user)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	if newSession.RefreshToken == oldSession.RefreshToken {
		t.Fatalf("new refresh token must differ from the revoked one")
	}

	if _, err := sessions.Refresh(oldSession.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked refresh token should stay invalid, got %v", err)
	}
	if _, err := sessions.Refresh(newSession.RefreshToken); err != nil {
		t.Fatalf("new refresh token should work: %v", err)
	}
}

func TestEndSessionIsIdempotent(t *testing.T) {
	auth, sessions, _, _ := setupAuthServiceTest(t)
	_, session, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// 重复登出与未知令牌都不报错
	sessions.EndSession(session.RefreshToken, false)
	sessions.EndSession(session.RefreshToken, false)
	sessions.EndSession("", false)
	sessions.EndSession("unknown-token", true)

	if _, err := sessions.Refresh(session.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after repeated logout, got %v", err)
	}
}

func TestEndSessionEverywhereRevokesAllUserTokens(t *testing.T) {
	auth, sessions, _, _ := setupAuthServiceTest(t)
	user, first, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	second, err := sessions.IssueSession(user)
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}

	sessions.EndSession(first.RefreshToken, true)

	if _, err := sessions.Refresh(first.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("first refresh token should be revoked, got %v", err)
	}
	if _, err := sessions.Refresh(second.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second refresh token should be revoked, got %v", err)
	}
}

func TestChangePasswordRevokesOldSessions(t *testing.T) {
	auth, sessions, _, _ := setupAuthServiceTest(t)
	user, oldSession, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := auth.ChangePassword(user.ID, "YanlisSifre1", "YeniSifre123"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := auth.ChangePassword(user.ID, "Sifre1234", "kisa"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	newSession, err := auth.ChangePassword(user.ID, "Sifre1234", "YeniSifre123")
	if err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if newSession.RefreshToken == oldSession.RefreshToken {
		t.Fatalf("expected fresh session after password change")
	}

	if _, err := sessions.Refresh(oldSession.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("old refresh token should be revoked, got %v", err)
	}
	if _, err := sessions.Refresh(newSession.RefreshToken); err != nil {
		t.Fatalf("new refresh token should work: %v", err)
	}
	if _, _, err := auth.Login("ayse@example.com", "YeniSifre123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	auth, _, _, _ := setupAuthServiceTest(t)
	user, _, err := auth.Register(validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := auth.UpdateProfile(user.ID, ProfileUpdate{}); !errors.Is(err, ErrProfileEmpty) {
		t.Fatalf("expected ErrProfileEmpty, got %v", err)
	}

	nickname := "yeni_isim"
	countryCode := "+90"
	phone := "5551234567"
	updated, err := auth.UpdateProfile(user.ID, ProfileUpdate{
		Nickname:    &nickname,
		CountryCode: &countryCode,
		Phone:       &phone,
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Nickname != "yeni_isim" || updated.CountryCode != "+90" || updated.Phone != "5551234567" {
		t.Fatalf("profile mismatch: %+v", updated)
	}

	input := validRegisterInput()
	input.Nickname = "baska_kisi"
	input.Email = "baska@example.com"
	other, _, err := auth.Register(input)
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	taken := "yeni_isim"
	if _, err := auth.UpdateProfile(other.ID, ProfileUpdate{Nickname: &taken}); !errors.Is(err, ErrNicknameExists) {
		t.Fatalf("expected ErrNicknameExists, got %v", err)
	}
}
