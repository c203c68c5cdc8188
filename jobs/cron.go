package jobs

import (
	"context"
	"time"

	"accounts/services/logger"

	"github.com/robfig/cron/v3"
)

const pingTimeout = 30 * time.Second

// Pinger là backend cần được giữ thức
type Pinger interface {
	Ping(ctx context.Context) error
}

// InitCronJobs đăng ký job ping backend theo lịch rồi khởi động cron.
// schedule rỗng thì không đăng ký job nào.
func InitCronJobs(c *cron.Cron, pinger Pinger, schedule string, log logger.Logger) error {
	if schedule != "" {
		_, err := c.AddFunc(schedule, func() {
			KeepAlive(pinger, log)
		})
		if err != nil {
			return err
		}
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}

// KeepAlive ping backend một lần
func KeepAlive(pinger Pinger, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := pinger.Ping(ctx); err != nil {
		log.Warn("Error pinging backend: %v", err)
		return
	}
	log.Debug("Backend ping ok")
}
