// Command api runs the article generation and review HTTP service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"copydesk/internal/domain/blueprint"
	handler "copydesk/internal/handler/http"
	"copydesk/internal/handler/http/article"
	"copydesk/internal/infra/adapter/persistence/postgres"
	"copydesk/internal/infra/db"
	"copydesk/internal/infra/generation"
	"copydesk/internal/infra/notifier"
	"copydesk/internal/infra/publisher"
	"copydesk/internal/observability/logging"
	"copydesk/internal/usecase/lifecycle"
	"copydesk/internal/usecase/notify"
	"copydesk/internal/usecase/pipeline"
	"copydesk/internal/usecase/review"
	"copydesk/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer database.Close()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := postgres.NewArticleRepo(database)
	blueprints := loadBlueprints(logger)
	gen := newGenerationClient(logger)

	notifications := notify.NewService(logger, buildNotifiers(logger))
	pub := newPublisher(logger)

	siteHost := config.GetEnvString("SITE_HOST", "example.com")
	slaHours := config.GetEnvFloat("REVIEW_SLA_HOURS", lifecycle.DefaultSLAHours)

	pipe := pipeline.NewService(logger, repo, gen, repo, blueprints, titleStrategy(), notifications, siteHost)
	rev := review.NewService(logger, repo, pub, notifications, blueprints, siteHost, slaHours)

	router := handler.NewRouter(logger, database, article.NewHandler(logger, pipe, rev, repo))

	addr := fmt.Sprintf(":%d", config.GetEnvInt("PORT", 8080))
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
	}

	// Flush in-flight notification deliveries before exiting.
	notifications.Wait()
	logger.Info("api server stopped")
}

// loadBlueprints reads the blueprint table from BLUEPRINT_PATH when set,
// falling back to the built-in defaults.
func loadBlueprints(logger *slog.Logger) *blueprint.Set {
	path := config.GetEnvString("BLUEPRINT_PATH", "")
	if path == "" {
		return blueprint.DefaultSet()
	}
	set, err := blueprint.LoadSet(path)
	if err != nil {
		logger.Warn("blueprint file unusable, using defaults",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return blueprint.DefaultSet()
	}
	return set
}

// newGenerationClient selects the model provider from GENERATION_PROVIDER.
func newGenerationClient(logger *slog.Logger) generation.Client {
	provider := config.GetEnvString("GENERATION_PROVIDER", "claude")
	switch provider {
	case "claude":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			logger.Error("ANTHROPIC_API_KEY is not set")
			os.Exit(1)
		}
		return generation.NewClaude(key)
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			logger.Error("OPENAI_API_KEY is not set")
			os.Exit(1)
		}
		return generation.NewOpenAI(key)
	default:
		logger.Error("unknown generation provider", slog.String("provider", provider))
		os.Exit(1)
		return nil
	}
}

// titleStrategy selects how working titles are chosen. The default asks the
// model for candidates when the operator left the title blank.
func titleStrategy() pipeline.TitleStrategy {
	if config.GetEnvString("TITLE_STRATEGY", "best_of_three") == "human" {
		return pipeline.HumanChoice{}
	}
	return pipeline.BestOfThree{}
}

func buildNotifiers(logger *slog.Logger) []notifier.Notifier {
	slackCfg := notifier.LoadSlackConfig()
	if !slackCfg.Enabled {
		logger.Info("no notification webhook configured, events will be discarded")
		return []notifier.Notifier{notifier.NewNoOp()}
	}
	return []notifier.Notifier{notifier.NewSlack(slackCfg)}
}

func newPublisher(logger *slog.Logger) publisher.Publisher {
	cfg := publisher.LoadWordPressConfig()
	if cfg.BaseURL == "" {
		logger.Info("no publishing target configured, posts will be recorded locally")
		return publisher.NewNoOp()
	}
	wp, err := publisher.NewWordPress(cfg)
	if err != nil {
		logger.Error("publisher configuration invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return wp
}
