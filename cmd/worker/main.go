// Command worker runs the scheduled review-queue sweeper. Every run walks the
// pending_review queue, auto-approves expired articles that pass the quality
// gate and flags the rest for a human.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"copydesk/internal/domain/blueprint"
	"copydesk/internal/infra/adapter/persistence/postgres"
	"copydesk/internal/infra/db"
	"copydesk/internal/infra/notifier"
	"copydesk/internal/infra/publisher"
	"copydesk/internal/infra/worker"
	"copydesk/internal/observability/logging"
	"copydesk/internal/usecase/lifecycle"
	"copydesk/internal/usecase/notify"
	"copydesk/internal/usecase/review"
	"copydesk/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := worker.LoadConfig()

	database := db.Open()
	defer database.Close()

	repo := postgres.NewArticleRepo(database)
	notifications := notify.NewService(logger, buildNotifiers(logger))

	siteHost := config.GetEnvString("SITE_HOST", "example.com")
	slaHours := config.GetEnvFloat("REVIEW_SLA_HOURS", lifecycle.DefaultSLAHours)

	// The sweeper never publishes; the publisher is only part of the review
	// service surface.
	rev := review.NewService(logger, repo, publisher.NewNoOp(), notifications, blueprint.DefaultSet(), siteHost, slaHours)

	metrics := worker.NewMetrics()
	health := worker.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := health.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.String("error", err.Error()))
		}
	}()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone", slog.String("timezone", cfg.Timezone))
		os.Exit(1)
	}

	sweep := func() {
		runCtx, cancel := context.WithTimeout(ctx, cfg.SweepTimeout)
		defer cancel()

		start := time.Now()
		summary, err := rev.SweepExpired(runCtx, time.Now())
		elapsed := time.Since(start).Seconds()
		if err != nil {
			logger.Error("sweep run failed", slog.String("error", err.Error()))
			metrics.RecordRun(false, elapsed, 0)
			return
		}
		metrics.RecordRun(true, elapsed, summary.AutoApproved+summary.Flagged)
	}

	scheduler := cron.New(cron.WithLocation(location))
	if _, err := scheduler.AddFunc(cfg.CronSchedule, sweep); err != nil {
		logger.Error("invalid cron schedule", slog.String("schedule", cfg.CronSchedule))
		os.Exit(1)
	}

	logger.Info("sweeper starting",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Float64("sla_hours", slaHours),
	)
	scheduler.Start()
	health.SetReady(true)

	// One sweep at startup so a restart never delays an overdue queue by a
	// full schedule interval.
	sweep()

	<-ctx.Done()
	logger.Info("shutdown signal received")
	health.SetReady(false)

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(cfg.SweepTimeout):
		logger.Warn("sweep still running at shutdown deadline")
	}

	notifications.Wait()
	logger.Info("sweeper stopped")
}

func buildNotifiers(logger *slog.Logger) []notifier.Notifier {
	slackCfg := notifier.LoadSlackConfig()
	if !slackCfg.Enabled {
		logger.Info("no notification webhook configured, events will be discarded")
		return []notifier.Notifier{notifier.NewNoOp()}
	}
	return []notifier.Notifier{notifier.NewSlack(slackCfg)}
}
