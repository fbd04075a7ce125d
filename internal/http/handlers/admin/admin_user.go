package admin

import (
	"context"
	"strconv"
	"strings"

	"github.com/octaverum/octaverum-api/internal/cache"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/repository"
	"github.com/octaverum/octaverum-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 获取用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	keyword := strings.TrimSpace(c.Query("keyword"))
	status := strings.TrimSpace(c.Query("status"))
	plan := strings.TrimSpace(c.Query("plan"))
	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:        page,
		PageSize:    pageSize,
		Keyword:     keyword,
		Status:      status,
		Plan:        plan,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, users, pagination)
}

// GetAdminUser 获取用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}

	user, err := h.UserRepo.GetByID(uint(rawID))
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	response.Success(c, user)
}

// DeleteAdminUser 删除用户（软删除），不允许删除自己。
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	operatorID, ok := getAdminUserID(c)
	if !ok {
		return
	}

	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	targetID := uint(rawID)
	if targetID == operatorID {
		respondError(c, response.CodeBadRequest, "error.admin_self_delete", nil)
		return
	}

	user, err := h.UserRepo.GetByID(targetID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	if err := h.UserRepo.Delete(targetID); err != nil {
		respondError(c, response.CodeInternal, "error.user_delete_failed", err)
		return
	}
	// 删除后令其会话立即失效
	if err := h.SessionService.RevokeUserSessions(targetID); err != nil {
		requestLog(c).Warnw("admin_user_delete_revoke_sessions_failed",
			"user_id", targetID,
			"error", err,
		)
	}
	_ = cache.DelUserAuthState(context.Background(), targetID)

	requestID := ""
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			requestID = id
		}
	}
	h.ActivityLogService.Record(service.ActivityEntry{
		UserID:      operatorID,
		Action:      constants.ActivityActionAdminUserDelete,
		Description: "admin deleted user",
		ClientIP:    c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		RequestID:   requestID,
		Metadata:    gin.H{"target_user_id": targetID},
	})

	response.Success(c, gin.H{"deleted": true})
}
