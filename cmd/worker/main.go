// Worker deletes expired refresh sessions on a schedule. Set CLEANUP_SCHEDULE
// to a cron spec (default @hourly).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"restaurant-inventory/backend/internal/auth/service"
	"restaurant-inventory/backend/internal/config"
	"restaurant-inventory/backend/internal/db"
	"restaurant-inventory/backend/internal/security"
	sessionrepo "restaurant-inventory/backend/internal/session/repository"
	userrepo "restaurant-inventory/backend/internal/user/repository"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("worker: DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	codec := security.NewTokenCodec(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	svc := service.NewAuthService(
		userrepo.NewPostgresRepository(conn),
		sessionrepo.NewPostgresRepository(conn),
		security.NewHasher(cfg.BcryptCost),
		codec,
		cfg.JWTExpiresIn,
		cfg.RefreshTTL(),
	)

	c := cron.New()
	_, err = c.AddFunc(cfg.CleanupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := svc.CleanupExpired(ctx, time.Now().UTC())
		if err != nil {
			log.WithError(err).Error("session cleanup failed")
			return
		}
		log.WithField("deleted", n).Info("expired sessions cleaned up")
	})
	if err != nil {
		log.Fatalf("worker: invalid CLEANUP_SCHEDULE %q: %v", cfg.CleanupSchedule, err)
	}

	log.Infof("worker: cleaning up expired sessions on schedule %q", cfg.CleanupSchedule)
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("worker: shutting down...")
	<-c.Stop().Done()
	log.Info("worker: stopped")
}
