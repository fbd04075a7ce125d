//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.ActivityLog{},
		&models.Token{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Token{},
		&models.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresUserKeywordSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewUserRepository(db)

	users := []models.User{
		{Nickname: "ayse_demir", Email: "ayse@example.com", PasswordHash: "x", Role: constants.UserRoleUser, Status: constants.UserStatusActive, SubscriptionPlan: constants.SubscriptionPlanFree},
		{Nickname: "mehmet_kaya", Email: "mehmet@example.com", PasswordHash: "x", Role: constants.UserRoleUser, Status: constants.UserStatusActive, SubscriptionPlan: constants.SubscriptionPlanPro},
	}
	for i := range users {
		if err := repo.Create(&users[i]); err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	// postgres 走 ILIKE，大小写不敏感
	rows, total, err := repo.List(UserListFilter{Page: 1, PageSize: 10, Keyword: "AYSE"})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("keyword search want 1 got total=%d len=%d", total, len(rows))
	}
	if rows[0].Email != "ayse@example.com" {
		t.Fatalf("keyword search matched wrong user: %s", rows[0].Email)
	}

	rows, total, err = repo.List(UserListFilter{Page: 1, PageSize: 10, Plan: constants.SubscriptionPlanPro})
	if err != nil {
		t.Fatalf("list users by plan failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("plan filter want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresTokenLedgerLifecycle(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewTokenRepository(db)
	now := time.Now()

	record := models.Token{Token: "pg-refresh-token", UserID: 7, Type: constants.TokenTypeRefresh, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Record(&record); err != nil {
		t.Fatalf("record token failed: %v", err)
	}

	found, err := repo.Find("pg-refresh-token", constants.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("find token failed: %v", err)
	}
	if found == nil || found.UserID != 7 {
		t.Fatalf("token lookup mismatch: %+v", found)
	}

	if err := repo.RevokeAllByUser(7, constants.TokenTypeRefresh); err != nil {
		t.Fatalf("revoke all failed: %v", err)
	}
	found, err = repo.Find("pg-refresh-token", constants.TokenTypeRefresh)
	if err != nil {
		t.Fatalf("find after revoke failed: %v", err)
	}
	if found != nil {
		t.Fatalf("revoked token should not be found")
	}
}
