package admin

import (
	"strconv"
	"strings"

	"github.com/octaverum/octaverum-api/internal/http/response"
	"github.com/octaverum/octaverum-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetActivityLogs 管理端查询活动日志
func (h *Handler) GetActivityLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
			return
		}
		userID = uint(parsed)
	}
	action := strings.TrimSpace(c.Query("action"))
	clientIP := strings.TrimSpace(c.Query("client_ip"))
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

	logs, total, err := h.ActivityLogService.ListAdmin(repository.ActivityLogListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Action:      action,
		ClientIP:    clientIP,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, logs, pagination)
}
