package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/queue"
	"github.com/octaverum/octaverum-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const resetTokenByteLength = 32

// PasswordResetService 密码重置服务。
// 邮件链路：明文令牌只出现在重置链接中，台账保存 SHA-256 摘要，命中一次即作废。
type PasswordResetService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	sessions    *SessionService
	queueClient *queue.Client
}

// NewPasswordResetService 创建密码重置服务
func NewPasswordResetService(cfg *config.Config, userRepo repository.UserRepository, tokenRepo repository.TokenRepository, sessions *SessionService, queueClient *queue.Client) *PasswordResetService {
	return &PasswordResetService{
		cfg:         cfg,
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		sessions:    sessions,
		queueClient: queueClient,
	}
}

// RequestReset 发起邮件重置。
// 邮箱未注册时静默成功，调用方对任何结果返回同一提示，避免探测注册邮箱。
func (s *PasswordResetService) RequestReset(email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Infow("password_reset_requested_unknown_email", "email", normalized)
		return nil
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(time.Duration(resolveResetExpireMinutes(s.cfg.Security.ResetToken)) * time.Minute)
	if err := s.tokenRepo.Record(&models.Token{
		Token:     hashResetToken(rawToken),
		UserID:    user.ID,
		Type:      constants.TokenTypeReset,
		ExpiresAt: expiresAt,
	}); err != nil {
		return err
	}

	resetURL := buildResetURL(s.cfg.App.FrontendBaseURL, rawToken)
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{
			UserID:   user.ID,
			Email:    user.Email,
			ResetURL: resetURL,
			Locale:   locale,
		}); err != nil {
			return err
		}
	} else {
		logger.Warnw("password_reset_email_queue_disabled",
			"user_id", user.ID,
			"reset_url", resetURL,
		)
	}
	logger.Infow("password_reset_requested", "user_id", user.ID)
	return nil
}

// ConsumeReset 用邮件令牌完成重置。
// 令牌单次有效，成功后撤销用户全部刷新令牌。
func (s *PasswordResetService) ConsumeReset(rawToken, newPassword string) error {
	trimmed := strings.TrimSpace(rawToken)
	if trimmed == "" {
		return ErrResetTokenInvalid
	}
	hashed := hashResetToken(trimmed)
	record, err := s.tokenRepo.Find(hashed, constants.TokenTypeReset)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrResetTokenInvalid
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(record.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrResetTokenInvalid
	}

	if err := s.applyNewPassword(user, newPassword); err != nil {
		return err
	}
	if err := s.tokenRepo.Revoke(hashed, constants.TokenTypeReset); err != nil {
		return err
	}
	logger.Infow("password_reset_completed", "user_id", user.ID, "via", "email_token")
	return nil
}

// ResetBySecurityQuestion 用安全问题完成重置。
// 邮箱、问题、答案任一不匹配都返回同一个错误。
func (s *PasswordResetService) ResetBySecurityQuestion(email, question, answer, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrSecurityAnswerInvalid
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrSecurityAnswerInvalid
	}
	if user.SecurityQuestion == "" || user.SecurityAnswer == "" {
		return ErrSecurityAnswerInvalid
	}
	if strings.ToLower(strings.TrimSpace(question)) != user.SecurityQuestion {
		return ErrSecurityAnswerInvalid
	}
	if strings.ToLower(strings.TrimSpace(answer)) != user.SecurityAnswer {
		return ErrSecurityAnswerInvalid
	}

	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	if err := s.applyNewPassword(user, newPassword); err != nil {
		return err
	}
	logger.Infow("password_reset_completed", "user_id", user.ID, "via", "security_question")
	return nil
}

func (s *PasswordResetService) applyNewPassword(user *models.User, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	return s.sessions.RevokeUserSessions(user.ID)
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenByteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

func buildResetURL(frontendBaseURL, rawToken string) string {
	base := strings.TrimRight(strings.TrimSpace(frontendBaseURL), "/")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/reset-password/%s", base, rawToken)
}

func resolveResetExpireMinutes(cfg config.ResetTokenConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 60
	}
	return cfg.ExpireMinutes
}
