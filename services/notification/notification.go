package notification

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast là một thông báo tạm hiển thị ở góc trên bên phải
type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

func Success(message string) Toast { return Toast{Level: LevelSuccess, Message: message} }
func Info(message string) Toast    { return Toast{Level: LevelInfo, Message: message} }
func Warning(message string) Toast { return Toast{Level: LevelWarning, Message: message} }
func Error(message string) Toast   { return Toast{Level: LevelError, Message: message} }

type Service interface {
	Push(ctx context.Context, sid string, toast Toast) error
	Drain(ctx context.Context, sid string) ([]Toast, error)
}

// RedisService xếp hàng toast theo phiên, trang render kế tiếp sẽ lấy ra
type RedisService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisService(rdb *redis.Client, ttl time.Duration) *RedisService {
	return &RedisService{rdb: rdb, ttl: ttl}
}

func toastKey(sid string) string {
	return "toasts:" + sid
}

func (s *RedisService) Push(ctx context.Context, sid string, toast Toast) error {
	data, err := json.Marshal(toast)
	if err != nil {
		return err
	}
	key := toastKey(sid)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

// Drain lấy toàn bộ toast theo thứ tự đã push và xoá hàng đợi
func (s *RedisService) Drain(ctx context.Context, sid string) ([]Toast, error) {
	key := toastKey(sid)
	var items *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	toasts := make([]Toast, 0, len(items.Val()))
	for _, item := range items.Val() {
		var t Toast
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			continue
		}
		toasts = append(toasts, t)
	}
	return toasts, nil
}
