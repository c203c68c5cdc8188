package services

import (
	"context"
	"time"

	"accounts/errors"
	"accounts/models"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	ScreenEmployees = "employees"
	ScreenSalary    = "accounts"

	// số lần thử lại khi hai tab cùng sửa một màn hình
	maxUpdateRetries = 5
)

// SalaryScreen là bản sao cục bộ của màn hình phiếu lương
type SalaryScreen struct {
	Employees []models.Employee   `json:"employees"`
	Slips     []models.SalarySlip `json:"slips"`
}

// ScreenStateStore giữ dữ liệu đã tải của từng màn hình theo phiên, sống trong TTL
type ScreenStateStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewScreenStateStore(rdb *redis.Client, ttl time.Duration) *ScreenStateStore {
	return &ScreenStateStore{rdb: rdb, ttl: ttl}
}

func screenKey(screen, sid string) string {
	return "screen:" + screen + ":" + sid
}

func (s *ScreenStateStore) SaveEmployees(ctx context.Context, sid string, employees []models.Employee) error {
	if employees == nil {
		employees = []models.Employee{}
	}
	if err := SetToRedis(ctx, s.rdb, screenKey(ScreenEmployees, sid), employees, s.ttl); err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Cannot save employees screen", err)
	}
	return nil
}

// LoadEmployees trả về found = false khi màn hình chưa được mount hoặc đã hết hạn
func (s *ScreenStateStore) LoadEmployees(ctx context.Context, sid string) ([]models.Employee, bool, error) {
	var employees []models.Employee
	found, err := GetFromRedis(ctx, s.rdb, screenKey(ScreenEmployees, sid), &employees)
	if err != nil {
		return nil, false, errors.NewAppError(errors.ErrCodeStorage, "Cannot load employees screen", err)
	}
	return employees, found, nil
}

func (s *ScreenStateStore) SaveSalary(ctx context.Context, sid string, screen *SalaryScreen) error {
	if err := SetToRedis(ctx, s.rdb, screenKey(ScreenSalary, sid), screen, s.ttl); err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Cannot save salary screen", err)
	}
	return nil
}

func (s *ScreenStateStore) LoadSalary(ctx context.Context, sid string) (*SalaryScreen, bool, error) {
	screen := &SalaryScreen{}
	found, err := GetFromRedis(ctx, s.rdb, screenKey(ScreenSalary, sid), screen)
	if err != nil {
		return nil, false, errors.NewAppError(errors.ErrCodeStorage, "Cannot load salary screen", err)
	}
	if !found {
		return nil, false, nil
	}
	return screen, true, nil
}

// UpdateSalary đọc, sửa và ghi lại màn hình phiếu lương trong một giao dịch WATCH/MULTI.
// Nếu key bị ghi bởi request khác giữa chừng thì đọc lại và áp dụng update lần nữa.
// found = false khi màn hình không còn, khi đó không ghi gì.
func (s *ScreenStateStore) UpdateSalary(ctx context.Context, sid string, update func(*SalaryScreen)) (bool, error) {
	key := screenKey(ScreenSalary, sid)

	var found bool
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			found = false
			return nil
		}
		if err != nil {
			return err
		}

		screen := &SalaryScreen{}
		if err := json.Unmarshal(data, screen); err != nil {
			return err
		}
		update(screen)
		out, err := json.Marshal(screen)
		if err != nil {
			return err
		}

		found = true
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return false, errors.NewAppError(errors.ErrCodeStorage, "Cannot update salary screen", err)
		}
		return found, nil
	}
	return false, errors.NewAppError(errors.ErrCodeStorage, "Salary screen is busy, please try again", redis.TxFailedErr)
}

// Clear xoá dữ liệu của mọi màn hình thuộc phiên
func (s *ScreenStateStore) Clear(ctx context.Context, sid string) error {
	if err := DeleteFromRedis(ctx, s.rdb, screenKey(ScreenEmployees, sid), screenKey(ScreenSalary, sid)); err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Cannot clear screen state", err)
	}
	return nil
}

// ClearScreen xoá dữ liệu của một màn hình, lần hiển thị sau sẽ mount lại
func (s *ScreenStateStore) ClearScreen(ctx context.Context, screen, sid string) error {
	if err := DeleteFromRedis(ctx, s.rdb, screenKey(screen, sid)); err != nil {
		return errors.NewAppError(errors.ErrCodeStorage, "Cannot clear screen state", err)
	}
	return nil
}
