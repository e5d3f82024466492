package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"shop/internal/entity/db"

	"github.com/golang-jwt/jwt/v5"
)

// 令牌受众：后台员工与店铺顾客分开签发
const (
	AudienceBackOffice = "shop-admin"
	AudienceStorefront = "shop-web"
)

var (
	// ErrUserDisabled 账号已被停用，不再签发令牌
	ErrUserDisabled = errors.New("user is disabled")
	// ErrInvalidToken 令牌签名、受众或声明不合法
	ErrInvalidToken = errors.New("invalid token")
)

// Claims 顾客或员工的登录态
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsStaffRole 管理员与超级管理员可进入后台
func IsStaffRole(role string) bool {
	return role == db.UserRoleAdmin || role == db.UserRoleSuperAdmin
}

// IsSuperAdminRole 仅超级管理员可管理员工账号
func IsSuperAdminRole(role string) bool {
	return role == db.UserRoleSuperAdmin
}

func audienceFor(role string) string {
	if IsStaffRole(role) {
		return AudienceBackOffice
	}
	return AudienceStorefront
}

func (c *Claims) IsAdmin() bool {
	return c != nil && IsStaffRole(c.Role)
}

func (c *Claims) IsSuperAdmin() bool {
	return c != nil && IsSuperAdminRole(c.Role)
}

// Manager 签发并校验 HS256 令牌
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager secret 不能为空；ttl 缺省 24 小时，issuer 缺省 shop
func NewManager(secret, issuer string, ttl time.Duration) (*Manager, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if issuer = strings.TrimSpace(issuer); issuer == "" {
		issuer = "shop"
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// GenerateToken 为启用中的账号签发令牌，受众由角色决定
func (m *Manager) GenerateToken(user *db.User) (string, time.Time, error) {
	if user == nil || user.ID == 0 {
		return "", time.Time{}, errors.New("invalid user for token generation")
	}
	if !user.IsActive {
		return "", time.Time{}, ErrUserDisabled
	}
	issuedAt := m.now().UTC()
	expiresAt := issuedAt.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{audienceFor(user.Role)},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken 校验签名、签发方与过期时间，并确认受众与角色一致
func (m *Manager) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	audience, _ := claims.GetAudience()
	if len(audience) != 1 || audience[0] != audienceFor(claims.Role) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
