package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/provider"
	"github.com/octaverum/octaverum-api/internal/repository"
	"github.com/octaverum/octaverum-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func testHandlerConfig() *config.Config {
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

func setupProfileHandlerTest(t *testing.T) (*Handler, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:profile_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Token{}, &models.ActivityLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := testHandlerConfig()
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	sessions, err := service.NewSessionService(cfg, userRepo, tokenRepo)
	if err != nil {
		t.Fatalf("new session service failed: %v", err)
	}
	container := &provider.Container{
		Config:             cfg,
		UserRepo:           userRepo,
		TokenRepo:          tokenRepo,
		ActivityLogRepo:    activityRepo,
		SessionService:     sessions,
		UserAuthService:    service.NewUserAuthService(cfg, userRepo, sessions),
		ActivityLogService: service.NewActivityLogService(activityRepo),
	}
	handler := New(container)

	user, _, err := container.UserAuthService.Register(service.RegisterInput{
		Nickname:         "ayse_demir",
		Email:            "ayse@example.com",
		Password:         "Sifre1234",
		SecurityQuestion: constants.SecurityQuestionFirstPet,
		SecurityAnswer:   "Boncuk",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return handler, user
}

func performChangePassword(t *testing.T, handler *Handler, userID uint, body gin.H) map[string]interface{} {
	t.Helper()
	r := gin.New()
	r.PUT("/me/password", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, handler.ChangeUserPassword)

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/me/password", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected HTTP 200 envelope, got %d", recorder.Code)
	}
	var envelope map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	return envelope
}

func TestChangeUserPasswordWrongOldPassword(t *testing.T) {
	handler, user := setupProfileHandlerTest(t)

	envelope := performChangePassword(t, handler, user.ID, gin.H{
		"old_password": "YanlisSifre1",
		"new_password": "YeniSifre123",
	})
	// 原密码错误按未授权处理
	if code := int(envelope["status_code"].(float64)); code != response.CodeUnauthorized {
		t.Fatalf("expected status_code %d, got %d", response.CodeUnauthorized, code)
	}
}

func TestChangeUserPasswordSuccess(t *testing.T) {
	handler, user := setupProfileHandlerTest(t)

	envelope := performChangePassword(t, handler, user.ID, gin.H{
		"old_password": "Sifre1234",
		"new_password": "YeniSifre123",
	})
	if code := int(envelope["status_code"].(float64)); code != response.CodeOK {
		t.Fatalf("expected status_code %d, got %d", response.CodeOK, code)
	}
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %T", envelope["data"])
	}
	session, ok := data["session"].(map[string]interface{})
	if !ok || session["access_token"] == "" {
		t.Fatalf("expected fresh session in response: %v", data)
	}
}

func TestChangeUserPasswordWeakNewPassword(t *testing.T) {
	handler, user := setupProfileHandlerTest(t)

	envelope := performChangePassword(t, handler, user.ID, gin.H{
		"old_password": "Sifre1234",
		"new_password": "kisa",
	})
	if code := int(envelope["status_code"].(float64)); code != response.CodeBadRequest {
		t.Fatalf("expected status_code %d, got %d", response.CodeBadRequest, code)
	}
}
