package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewUserRepository(db), db
}

func TestUserRepositoryGetByEmailMissingReturnsNil(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	user, err := repo.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil for missing user, got %+v", user)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	user := models.User{
		Nickname:     "mehmet_42",
		Email:        "mehmet@example.com",
		PasswordHash: "hash",
		Role:         constants.UserRoleUser,
		Status:       constants.UserStatusActive,
	}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byEmail, err := repo.GetByEmail("mehmet@example.com")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Fatalf("unexpected user by email: %+v", byEmail)
	}

	byNickname, err := repo.GetByNickname("mehmet_42")
	if err != nil {
		t.Fatalf("get by nickname failed: %v", err)
	}
	if byNickname == nil || byNickname.ID != user.ID {
		t.Fatalf("unexpected user by nickname: %+v", byNickname)
	}

	byID, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if byID == nil || byID.Email != "mehmet@example.com" {
		t.Fatalf("unexpected user by id: %+v", byID)
	}
}

func TestUserRepositoryDeleteIsSoft(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := models.User{
		Nickname:     "to_delete",
		Email:        "delete@example.com",
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	found, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if found != nil {
		t.Fatalf("deleted user should not be visible")
	}

	var total int64
	if err := db.Unscoped().Model(&models.User{}).Count(&total).Error; err != nil {
		t.Fatalf("unscoped count failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("soft deleted row should remain, got %d rows", total)
	}
}

func TestUserRepositoryListFilters(t *testing.T) {
	repo, _ := setupUserRepositoryTest(t)
	users := []models.User{
		{Nickname: "alpha", Email: "alpha@example.com", PasswordHash: "h", Status: constants.UserStatusActive, SubscriptionPlan: constants.SubscriptionPlanFree},
		{Nickname: "beta", Email: "beta@example.com", PasswordHash: "h", Status: constants.UserStatusDisabled, SubscriptionPlan: constants.SubscriptionPlanPro},
		{Nickname: "gamma", Email: "gamma@example.com", PasswordHash: "h", Status: constants.UserStatusActive, SubscriptionPlan: constants.SubscriptionPlanPro},
	}
	for i := range users {
		if err := repo.Create(&users[i]); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	list, total, err := repo.List(UserListFilter{Keyword: "beta"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Nickname != "beta" {
		t.Fatalf("keyword filter mismatch: total=%d list=%+v", total, list)
	}

	list, total, err = repo.List(UserListFilter{Status: constants.UserStatusActive, Plan: constants.SubscriptionPlanPro})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Nickname != "gamma" {
		t.Fatalf("status+plan filter mismatch: total=%d list=%+v", total, list)
	}

	list, total, err = repo.List(UserListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(list) != 1 {
		t.Fatalf("pagination mismatch: total=%d len=%d", total, len(list))
	}
}
