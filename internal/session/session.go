// File: internal/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"medisecure/internal/apperr"
	"medisecure/internal/cache"
	"medisecure/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CookieName 存放 session token 的 cookie
const CookieName = "medisecure_session"

// ContextKey is the echo context key holding the resolved Identity.
const ContextKey = "session.identity"

// Identity is the authenticated caller, passed explicitly into handlers and
// lifecycle operations.
type Identity struct {
	UserID    int
	UserType  model.UserType
	Name      string
	SessionID string
}

// Room is the realtime room scoped to this identity.
func (i Identity) Room() string { return strconv.Itoa(i.UserID) }

// Claims 定義 session token 負載內容
type Claims struct {
	UserID   int            `json:"uid"`
	UserType model.UserType `json:"utype"`
	Name     string         `json:"name"`
	jwt.RegisteredClaims
}

var (
	parseWithClaims = jwt.ParseWithClaims
	newSessionID    = func() string { return uuid.NewString() }
	timeNow         = time.Now
)

// Manager issues, resolves and revokes sessions. A session is valid only while
// its id is registered in the cache, so logout takes effect immediately.
type Manager struct {
	secret []byte
	ttl    time.Duration
	cache  cache.Cache
}

func NewManager(secret string, ttl time.Duration, c cache.Cache) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, cache: c}
}

// TTL 回傳 session 存活時間，cookie MaxAge 使用
func (m *Manager) TTL() time.Duration { return m.ttl }

func sessionKey(id string) string { return "session:" + id }

// Issue 登入成功後產生 token 並註冊 session
func (m *Manager) Issue(ctx context.Context, user model.User) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not set")
	}
	now := timeNow()
	sid := newSessionID()
	claims := Claims{
		UserID:   user.ID,
		UserType: user.UserType,
		Name:     user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sid,
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	if err := m.cache.Set(ctx, sessionKey(sid), user.ID, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("register session: %w", err)
	}
	return token, nil
}

// Resolve 驗證 token 並確認 session 仍有效
func (m *Manager) Resolve(ctx context.Context, token string) (Identity, error) {
	claims, err := m.verify(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", apperr.ErrAuthenticationRequired, err)
	}
	n, err := m.cache.Exists(ctx, sessionKey(claims.ID)).Result()
	if err != nil {
		return Identity{}, fmt.Errorf("lookup session: %w", err)
	}
	if n == 0 {
		return Identity{}, fmt.Errorf("%w: session revoked", apperr.ErrAuthenticationRequired)
	}
	return Identity{
		UserID:    claims.UserID,
		UserType:  claims.UserType,
		Name:      claims.Name,
		SessionID: claims.ID,
	}, nil
}

// Revoke 登出時移除 session；token 無效時視為已登出
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.verify(token)
	if err != nil {
		return nil
	}
	if err := m.cache.Del(ctx, sessionKey(claims.ID)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (m *Manager) verify(tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ID == "" || claims.UserID == 0 {
		return nil, errors.New("incomplete session claims")
	}
	return claims, nil
}

// FromContext 取得 middleware 放入的 Identity
func FromContext(c echo.Context) (Identity, bool) {
	id, ok := c.Get(ContextKey).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, false
	}
	return id, true
}

// WithIdentity stores id on the echo context.
func WithIdentity(c echo.Context, id Identity) {
	c.Set(ContextKey, id)
}
