package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/sitehub-api/internal/config"
	"github.com/jwalitptl/sitehub-api/internal/fixture"
	"github.com/jwalitptl/sitehub-api/internal/handler"
	activityHandler "github.com/jwalitptl/sitehub-api/internal/handler/activity"
	chatHandler "github.com/jwalitptl/sitehub-api/internal/handler/chat"
	formHandler "github.com/jwalitptl/sitehub-api/internal/handler/form"
	"github.com/jwalitptl/sitehub-api/internal/handler/health"
	notificationHandler "github.com/jwalitptl/sitehub-api/internal/handler/notification"
	projectHandler "github.com/jwalitptl/sitehub-api/internal/handler/project"
	sessionHandler "github.com/jwalitptl/sitehub-api/internal/handler/session"
	"github.com/jwalitptl/sitehub-api/internal/middleware"
	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository/memory"
	"github.com/jwalitptl/sitehub-api/internal/router"
	"github.com/jwalitptl/sitehub-api/internal/service/activity"
	"github.com/jwalitptl/sitehub-api/internal/service/chat"
	"github.com/jwalitptl/sitehub-api/internal/service/dashboard"
	"github.com/jwalitptl/sitehub-api/internal/service/notification"
	"github.com/jwalitptl/sitehub-api/internal/service/submission"
	"github.com/jwalitptl/sitehub-api/internal/session"
	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/messaging"
	memoryBroker "github.com/jwalitptl/sitehub-api/pkg/messaging/memory"
	"github.com/jwalitptl/sitehub-api/pkg/messaging/redis"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
	"github.com/jwalitptl/sitehub-api/pkg/scheduler"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Logging.Level),
		Output:  os.Stdout,
		Console: cfg.Logging.Console,
	})
	log.Logger = appLogger.ZL

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(cfg.Monitoring.Namespace, reg)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Message broker
	broker, err := newBroker(rootCtx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize message broker", "driver", cfg.Messaging.Driver)
	}
	publisher := activity.NewPublisher(broker, appLogger, m)
	feed := activity.NewFeed(broker, activity.DefaultFeedConfig(), appLogger, m)
	go feed.Start(rootCtx)

	// Repositories
	ds := fixture.Dataset()
	projects := memory.NewProjectRepository(ds)

	// Sessions
	boards := chat.BoardBuilder{
		Reply: chat.ReplyConfig{
			Enabled:    cfg.Chat.AutoReply,
			Delay:      cfg.Chat.ReplyDelay,
			SenderName: cfg.Chat.ReplyName,
			Content:    cfg.Chat.ReplyText,
		},
		Seed:      fixture.ChatMessages,
		Publisher: publisher,
		Logger:    appLogger,
		Metrics:   m,
	}
	registry := session.NewRegistry(session.Config{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
	}, func(viewer model.Viewer, tasks *scheduler.Scheduler) (*notification.Store, *chat.Board) {
		return notification.NewStore(fixture.Notifications()), boards.Build(viewer, tasks)
	}, appLogger, m)

	// Services
	notificationSvc := notification.NewService(registry, publisher, appLogger, m)
	chatSvc := chat.NewService(registry, projects, publisher, appLogger, m)
	dashboardSvc := dashboard.NewService(dashboard.Repositories{
		Projects:  projects,
		Expenses:  memory.NewExpenseRepository(ds),
		Contracts: memory.NewContractRepository(ds),
		Minutes:   memory.NewMeetingMinuteRepository(ds),
	})
	submissionSvc := submission.NewService(submission.Config{Delay: cfg.Forms.Delay}, projects, publisher, appLogger, m)

	// Handlers
	h := handler.NewHandler(reg)
	healthH := health.NewHandler(map[string]health.Check{
		"broker": broker.Ping,
	})

	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	routerCfg := router.RouterConfig{
		Mode:       cfg.Server.Mode,
		Timeout:    cfg.Server.RequestTimeout,
		SizeLimit:  middleware.SizeLimitConfig{MaxBodySize: cfg.Server.MaxBodyBytes, MaxHeaderSize: 1 << 14},
		CORSConfig: cors,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerCfg.RateBurst = cfg.RateLimit.Burst
	}

	// Setup router
	r := router.NewRouter(h, healthH, []router.Handler{
		notificationHandler.NewHandler(notificationSvc),
		projectHandler.NewHandler(dashboardSvc),
		chatHandler.NewHandler(chatSvc),
		formHandler.NewHandler(submissionSvc),
		sessionHandler.NewHandler(registry, publisher),
		activityHandler.NewHandler(feed),
	}, m, routerCfg)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		appLogger.Info("starting server", "addr", srv.Addr, "broker", cfg.Messaging.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error(err, "server forced to shutdown")
	}

	// Sessions first so their pending replies are cancelled before the
	// broker goes away.
	registry.Close()
	stop()
	if err := broker.Close(); err != nil {
		appLogger.Error(err, "failed to close broker")
	}

	appLogger.Info("server exited properly")
}

func newBroker(ctx context.Context, cfg *config.Config, log *logger.Logger) (messaging.Broker, error) {
	switch cfg.Messaging.Driver {
	case "redis":
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return redis.NewRedisBroker(connectCtx, redis.Config{
			URL:          cfg.Messaging.Redis.URL,
			MaxRetries:   cfg.Messaging.Redis.MaxRetries,
			RetryBackoff: cfg.Messaging.Redis.RetryBackoff,
			PoolSize:     cfg.Messaging.Redis.PoolSize,
			MinIdleConns: cfg.Messaging.Redis.MinIdleConns,
		}, log)
	default:
		return memoryBroker.NewBroker(cfg.Messaging.Buffer, log), nil
	}
}
