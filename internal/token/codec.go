package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired 令牌已过期
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid 令牌无效（签名错误、格式错误或声明缺失）
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims JWT 负载
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec 负责单一密钥下的 JWT 签发与校验。
// 访问令牌与刷新令牌各持有一个 Codec 实例，密钥彼此独立。
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewCodec 创建编解码器
func NewCodec(secret string, ttl time.Duration, issuer string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token ttl: %s", ttl)
	}
	return &Codec{secret: []byte(secret), ttl: ttl, issuer: issuer}, nil
}

// TTL 返回令牌有效期
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue 为用户签发令牌，返回令牌与过期时间。
// jti 取随机 UUID，同一秒内重复签发也不会产生相同令牌。
func (c *Codec) Issue(userID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify 校验令牌并返回声明。
// 过期返回 ErrTokenExpired，其余失败统一返回 ErrTokenInvalid。
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
