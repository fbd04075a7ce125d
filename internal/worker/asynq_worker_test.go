package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/provider"
	"github.com/octaverum/octaverum-api/internal/queue"
	"github.com/octaverum/octaverum-api/internal/repository"
	"github.com/octaverum/octaverum-api/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Token{}, &models.ActivityLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	container := &provider.Container{
		UserRepo:  repository.NewUserRepository(db),
		TokenRepo: repository.NewTokenRepository(db),
	}
	container.ActivityLogRepo = repository.NewActivityLogRepository(db)
	container.ActivityLogService = service.NewActivityLogService(container.ActivityLogRepo)
	return NewConsumer(container), db
}

func mustTask(t *testing.T, taskType string, payload interface{}) *asynq.Task {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(taskType, body)
}

func TestHandleTokenSweepRemovesStaleRows(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	now := time.Now()

	stale := models.Token{Token: "stale", UserID: 1, Type: constants.TokenTypeRefresh, ExpiresAt: now.AddDate(0, 0, -40)}
	fresh := models.Token{Token: "fresh", UserID: 1, Type: constants.TokenTypeRefresh, ExpiresAt: now.Add(time.Hour)}
	for _, record := range []models.Token{stale, fresh} {
		entry := record
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("seed token failed: %v", err)
		}
	}

	task := mustTask(t, queue.TaskAuthTokenSweep, queue.TokenSweepPayload{RetentionDays: 30})
	if err := consumer.handleTokenSweep(context.Background(), task); err != nil {
		t.Fatalf("handle token sweep failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Token{}).Count(&count).Error; err != nil {
		t.Fatalf("count tokens failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("token count want 1 got %d", count)
	}
}

func TestHandleActivityLogPurge(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	old := models.ActivityLog{UserID: 1, Action: constants.ActivityActionLoginSuccess}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed log failed: %v", err)
	}
	if err := db.Model(&models.ActivityLog{}).Where("id = ?", old.ID).
		Update("created_at", time.Now().AddDate(0, 0, -120)).Error; err != nil {
		t.Fatalf("backdate log failed: %v", err)
	}
	recent := models.ActivityLog{UserID: 1, Action: constants.ActivityActionLoginSuccess}
	if err := db.Create(&recent).Error; err != nil {
		t.Fatalf("seed log failed: %v", err)
	}

	task := mustTask(t, queue.TaskActivityLogPurge, queue.ActivityLogPurgePayload{RetentionDays: 90})
	if err := consumer.handleActivityLogPurge(context.Background(), task); err != nil {
		t.Fatalf("handle activity log purge failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.ActivityLog{}).Count(&count).Error; err != nil {
		t.Fatalf("count logs failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("log count want 1 got %d", count)
	}
}

func TestHandlePasswordResetEmailSkipsInvalidPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := mustTask(t, queue.TaskPasswordResetEmail, queue.PasswordResetEmailPayload{})
	if err := consumer.handlePasswordResetEmail(context.Background(), task); err != nil {
		t.Fatalf("empty payload should be skipped, got %v", err)
	}

	task = mustTask(t, queue.TaskPasswordResetEmail, queue.PasswordResetEmailPayload{UserID: 42, Email: "gone@example.com"})
	if err := consumer.handlePasswordResetEmail(context.Background(), task); err != nil {
		t.Fatalf("missing user should be skipped, got %v", err)
	}
}
