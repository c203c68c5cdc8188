package config

import (
	"context"
	"fmt"
	"log"

	"accounts/templates"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

var RedisClient *redis.Client

func InitApp(ctx context.Context, cfg *Config) (*gin.Engine, *cron.Cron, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	if corsHandler := corsMiddleware(cfg.CorsOrigins); corsHandler != nil {
		router.Use(corsHandler)
	}

	router.SetTrustedProxies(nil)

	tmpl, err := templates.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse templates: %v", err)
	}
	router.SetHTMLTemplate(tmpl)

	if err := initComponents(ctx, cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	c := cron.New()

	return router, c, nil
}

// corsMiddleware chỉ mở CORS cho các origin trong CORS_ORIGINS; không cấu hình thì chỉ phục vụ cùng origin
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowOrigins = origins
	return cors.New(configCors)
}

func initComponents(ctx context.Context, cfg *Config) error {
	var err error
	RedisClient, err = ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("All components initialized successfully")
	return nil
}
