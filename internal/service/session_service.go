package service

import (
	"context"
	"time"

	"github.com/octaverum/octaverum-api/internal/cache"
	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/logger"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/repository"
	"github.com/octaverum/octaverum-api/internal/token"
)

const tokenIssuer = "octaverum-api"

// Session 一次签发的令牌对
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // 访问令牌有效期（秒）
}

// SessionService 会话签发与续期服务。
// 访问令牌与刷新令牌使用独立密钥，刷新令牌以明文登记到令牌台账。
type SessionService struct {
	accessCodec  *token.Codec
	refreshCodec *token.Codec
	userRepo     repository.UserRepository
	tokenRepo    repository.TokenRepository
}

// NewSessionService 创建会话服务
func NewSessionService(cfg *config.Config, userRepo repository.UserRepository, tokenRepo repository.TokenRepository) (*SessionService, error) {
	accessCodec, err := token.NewCodec(cfg.JWT.SecretKey, resolveExpireHours(cfg.JWT, 24), tokenIssuer)
	if err != nil {
		return nil, err
	}
	refreshCodec, err := token.NewCodec(cfg.RefreshJWT.SecretKey, resolveExpireHours(cfg.RefreshJWT, 720), tokenIssuer)
	if err != nil {
		return nil, err
	}
	return &SessionService{
		accessCodec:  accessCodec,
		refreshCodec: refreshCodec,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
	}, nil
}

// AccessCodec 返回访问令牌编解码器，供鉴权中间件使用。
func (s *SessionService) AccessCodec() *token.Codec {
	return s.accessCodec
}

// IssueSession 为用户签发访问令牌与刷新令牌，并登记刷新令牌。
func (s *SessionService) IssueSession(user *models.User) (*Session, error) {
	if user == nil || user.ID == 0 {
		return nil, ErrNotFound
	}
	accessToken, _, err := s.accessCodec.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := s.refreshCodec.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Record(&models.Token{
		Token:     refreshToken,
		UserID:    user.ID,
		Type:      constants.TokenTypeRefresh,
		ExpiresAt: refreshExpiresAt,
	}); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessCodec.TTL().Seconds()),
	}, nil
}

// Refresh 用刷新令牌换取新的访问令牌，不轮换刷新令牌。
// 签名、过期、台账缺失与用户归属不符统一返回 ErrInvalidToken。
func (s *SessionService) Refresh(refreshToken string) (*Session, error) {
	claims, err := s.refreshCodec.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	record, err := s.tokenRepo.Find(refreshToken, constants.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if record == nil || record.UserID != claims.UserID {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if user.Status != constants.UserStatusActive {
		return nil, ErrUserDisabled
	}

	accessToken, _, err := s.accessCodec.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessCodec.TTL().Seconds()),
	}, nil
}

// EndSession 撤销刷新令牌。失败只记日志，登出总是成功。
// everywhere 为 true 时按令牌归属撤销该用户的全部刷新令牌。
func (s *SessionService) EndSession(refreshToken string, everywhere bool) {
	if refreshToken == "" {
		return
	}
	if everywhere {
		record, err := s.tokenRepo.Find(refreshToken, constants.TokenTypeRefresh)
		if err != nil {
			logger.Warnw("session_end_lookup_failed", "error", err)
		}
		if record != nil {
			if err := s.RevokeUserSessions(record.UserID); err != nil {
				logger.Warnw("session_end_revoke_all_failed", "user_id", record.UserID, "error", err)
			}
			return
		}
	}
	if err := s.tokenRepo.Revoke(refreshToken, constants.TokenTypeRefresh); err != nil {
		logger.Warnw("session_end_revoke_failed", "error", err)
	}
}

// RevokeUserSessions 撤销用户名下所有刷新令牌并清理鉴权缓存。
func (s *SessionService) RevokeUserSessions(userID uint) error {
	if userID == 0 {
		return nil
	}
	if err := s.tokenRepo.RevokeAllByUser(userID, constants.TokenTypeRefresh); err != nil {
		return err
	}
	return cache.DelUserAuthState(context.Background(), userID)
}

func resolveExpireHours(cfg config.JWTConfig, fallbackHours int) time.Duration {
	hours := cfg.ExpireHours
	if hours <= 0 {
		hours = fallbackHours
	}
	return time.Duration(hours) * time.Hour
}
