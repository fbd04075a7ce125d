package service

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/octaverum/octaverum-api/internal/cache"
	"github.com/octaverum/octaverum-api/internal/config"
	"github.com/octaverum/octaverum-api/internal/constants"
	"github.com/octaverum/octaverum-api/internal/models"
	"github.com/octaverum/octaverum-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	nicknamePattern    = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	countryCodePattern = regexp.MustCompile(`^\+?[0-9]{1,4}$`)
	phonePattern       = regexp.MustCompile(`^[0-9]{5,15}$`)
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	sessions *SessionService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, sessions *SessionService) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		sessions: sessions,
	}
}

// RegisterInput 注册参数
type RegisterInput struct {
	Nickname         string
	Email            string
	Password         string
	SecurityQuestion string
	SecurityAnswer   string
	CountryCode      string
	Phone            string
}

// Register 用户注册，成功后直接签发会话。
func (s *UserAuthService) Register(input RegisterInput) (*models.User, *Session, error) {
	nickname, err := normalizeNickname(input.Nickname)
	if err != nil {
		return nil, nil, err
	}
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, nil, err
	}
	question, answer, err := normalizeSecurityPair(input.SecurityQuestion, input.SecurityAnswer)
	if err != nil {
		return nil, nil, err
	}
	countryCode, phone, err := normalizePhonePair(input.CountryCode, input.Phone)
	if err != nil {
		return nil, nil, err
	}

	if exist, err := s.userRepo.GetByEmail(normalized); err != nil {
		return nil, nil, err
	} else if exist != nil {
		return nil, nil, ErrEmailExists
	}
	if exist, err := s.userRepo.GetByNickname(nickname); err != nil {
		return nil, nil, err
	} else if exist != nil {
		return nil, nil, ErrNicknameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user := &models.User{
		Nickname:         nickname,
		Email:            normalized,
		PasswordHash:     string(hashedPassword),
		SecurityQuestion: question,
		SecurityAnswer:   answer,
		CountryCode:      countryCode,
		Phone:            phone,
		Role:             constants.UserRoleUser,
		Status:           constants.UserStatusActive,
		SubscriptionPlan: constants.SubscriptionPlanFree,
		LastLoginAt:      &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.IssueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login 用户登录
func (s *UserAuthService) Login(email, password string) (*models.User, *Session, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, nil, ErrUserDisabled
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.IssueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// ChangePassword 登录态修改密码。
// 成功后撤销该用户的全部刷新令牌并签发新会话。
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) (*Session, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return nil, ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if err := s.sessions.RevokeUserSessions(user.ID); err != nil {
		return nil, err
	}
	return s.sessions.IssueSession(user)
}

// ProfileUpdate 资料更新参数，nil 表示不修改。
type ProfileUpdate struct {
	Nickname         *string
	SecurityQuestion *string
	SecurityAnswer   *string
	CountryCode      *string
	Phone            *string
}

// UpdateProfile 更新用户资料
func (s *UserAuthService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	updated := false
	if update.Nickname != nil {
		nickname, err := normalizeNickname(*update.Nickname)
		if err != nil {
			return nil, err
		}
		if nickname != user.Nickname {
			if exist, err := s.userRepo.GetByNickname(nickname); err != nil {
				return nil, err
			} else if exist != nil && exist.ID != user.ID {
				return nil, ErrNicknameExists
			}
			user.Nickname = nickname
			updated = true
		}
	}
	if update.SecurityQuestion != nil || update.SecurityAnswer != nil {
		question := user.SecurityQuestion
		answer := user.SecurityAnswer
		if update.SecurityQuestion != nil {
			question = *update.SecurityQuestion
		}
		if update.SecurityAnswer != nil {
			answer = *update.SecurityAnswer
		}
		normalizedQuestion, normalizedAnswer, err := normalizeSecurityPair(question, answer)
		if err != nil {
			return nil, err
		}
		user.SecurityQuestion = normalizedQuestion
		user.SecurityAnswer = normalizedAnswer
		updated = true
	}
	if update.CountryCode != nil || update.Phone != nil {
		countryCode := user.CountryCode
		phone := user.Phone
		if update.CountryCode != nil {
			countryCode = *update.CountryCode
		}
		if update.Phone != nil {
			phone = *update.Phone
		}
		normalizedCountry, normalizedPhone, err := normalizePhonePair(countryCode, phone)
		if err != nil {
			return nil, err
		}
		user.CountryCode = normalizedCountry
		user.Phone = normalizedPhone
		updated = true
	}

	if !updated {
		return nil, ErrProfileEmpty
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	return s.userRepo.GetByID(id)
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func normalizeNickname(nickname string) (string, error) {
	trimmed := strings.TrimSpace(nickname)
	length := len([]rune(trimmed))
	if length < constants.NicknameMinLength || length > constants.NicknameMaxLength {
		return "", ErrNicknameInvalid
	}
	if !nicknamePattern.MatchString(trimmed) {
		return "", ErrNicknameInvalid
	}
	lowered := strings.ToLower(trimmed)
	for _, reserved := range constants.ReservedNicknames {
		if lowered == reserved {
			return "", ErrNicknameReserved
		}
	}
	return trimmed, nil
}

func normalizeSecurityPair(question, answer string) (string, string, error) {
	normalizedQuestion := strings.ToLower(strings.TrimSpace(question))
	supported := false
	for _, candidate := range constants.SupportedSecurityQuestions {
		if normalizedQuestion == candidate {
			supported = true
			break
		}
	}
	if !supported {
		return "", "", ErrSecurityQuestionInvalid
	}
	// 答案统一小写保存，校验时不区分大小写
	normalizedAnswer := strings.ToLower(strings.TrimSpace(answer))
	if normalizedAnswer == "" {
		return "", "", ErrSecurityAnswerInvalid
	}
	return normalizedQuestion, normalizedAnswer, nil
}

func normalizePhonePair(countryCode, phone string) (string, string, error) {
	trimmedCountry := strings.TrimSpace(countryCode)
	trimmedPhone := strings.TrimSpace(phone)
	if trimmedCountry == "" && trimmedPhone == "" {
		return "", "", nil
	}
	if trimmedCountry != "" && !countryCodePattern.MatchString(trimmedCountry) {
		return "", "", ErrInvalidCountryCode
	}
	if trimmedPhone != "" && !phonePattern.MatchString(trimmedPhone) {
		return "", "", ErrInvalidPhone
	}
	return trimmedCountry, trimmedPhone, nil
}
