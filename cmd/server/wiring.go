package main

import (
	"context"
	"time"

	"github.com/anonto42/oomool/backend/internal/push"
	"github.com/anonto42/oomool/backend/internal/services"
	"github.com/anonto42/oomool/backend/pkg/config"
	"github.com/anonto42/oomool/backend/pkg/firebase"
	"github.com/anonto42/oomool/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func newGateway(cfg config.PushConfig, app *firebase.App) push.Gateway {
	switch cfg.Mode() {
	case config.PushWebhook:
		logger.Info("push delivery via webhook", "url", cfg.GatewayURL)
		return push.NewWebhookGateway(cfg)
	case config.PushFCM:
		logger.Info("push delivery via FCM")
		return push.NewFCMGateway(app.Messaging, cfg.Timeout)
	default:
		logger.Warn("push delivery disabled")
		return push.NoopGateway{}
	}
}

// newQueue uses Kafka when brokers are configured, otherwise an in-process worker pool.
func newQueue(ctx context.Context, cfg config.QueueConfig, gateway push.Gateway) push.Queue {
	if len(cfg.Brokers) == 0 {
		return push.NewMemoryQueue(gateway, cfg.Workers, cfg.Buffer)
	}

	queue := push.NewKafkaQueue(cfg, gateway)
	go func() {
		if err := queue.Start(ctx); err != nil {
			logger.Error("push consumer stopped", "error", err)
		}
	}()
	return queue
}

func newRateLimiter(ctx context.Context, cfg config.RedisConfig) (services.RateLimiter, func()) {
	if cfg.Addr == "" {
		return services.NewMemoryRateLimiter(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-process rate limiter", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return services.NewMemoryRateLimiter(), func() {}
	}

	logger.Info("connected to Redis", "addr", cfg.Addr)
	return services.NewRedisRateLimiter(client), func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis", "error", err)
		}
	}
}

// newMailer returns nil when SMTP is not configured, which makes send-code fail
// with a configuration error.
func newMailer(cfg *config.Config) services.Mailer {
	if !cfg.Mail.Enabled() {
		logger.Warn("SMTP not configured; verification emails disabled")
		return nil
	}
	mailer, err := services.NewSMTPMailer(cfg.Mail, int(cfg.Verification.CodeTTL/time.Minute))
	if err != nil {
		logger.Fatal("failed to build mailer", "error", err)
	}
	return mailer
}
