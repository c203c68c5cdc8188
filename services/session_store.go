package services

import (
	"context"
	"time"

	"accounts/errors"
	"accounts/models"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Bốn key phẳng của phiên đăng nhập
const (
	sessionFieldToken  = "token"
	sessionFieldUserID = "userId"
	sessionFieldRole   = "role"
	sessionFieldUser   = "user"
)

// SessionRepository là các thao tác trên kho phiên đăng nhập
type SessionRepository interface {
	Set(ctx context.Context, sid string, session models.Session) error
	Get(ctx context.Context, sid string) (*models.Session, error)
	Clear(ctx context.Context, sid string) error
}

type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		rdb: rdb,
		ttl: ttl,
		now: time.Now,
	}
}

func sessionKey(sid string) string {
	return "session:" + sid
}

// Set ghi cả bốn trường trong một transaction
func (s *SessionStore) Set(ctx context.Context, sid string, session models.Session) error {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Cannot encode session user", err)
	}

	key := sessionKey(sid)
	ttl := SessionTTL(session.Token, s.ttl, s.now())
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			sessionFieldToken, session.Token,
			sessionFieldUserID, session.UserID,
			sessionFieldRole, session.Role,
			sessionFieldUser, string(userJSON),
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Cannot save session", err)
	}
	return nil
}

// Get trả về phiên hiện tại hoặc ErrNoSession
func (s *SessionStore) Get(ctx context.Context, sid string) (*models.Session, error) {
	if sid == "" {
		return nil, errors.ErrNoSession
	}

	fields, err := s.rdb.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeStorage, "Cannot read session", err)
	}
	if fields[sessionFieldToken] == "" {
		return nil, errors.ErrNoSession
	}

	session := &models.Session{
		Token:  fields[sessionFieldToken],
		UserID: fields[sessionFieldUserID],
		Role:   fields[sessionFieldRole],
	}
	if raw := fields[sessionFieldUser]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &session.User); err != nil {
			return nil, errors.NewAppError(errors.ErrCodeStorage, "Cannot decode session user", err)
		}
	}
	return session, nil
}

// Clear xoá cả bốn trường của phiên
func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := DeleteFromRedis(ctx, s.rdb, sessionKey(sid)); err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Cannot clear session", err)
	}
	return nil
}
