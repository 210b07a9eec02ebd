package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/tutor_dashboard/internal/app"
	"github.com/Freeeeeet/tutor_dashboard/internal/cache"
	"github.com/Freeeeeet/tutor_dashboard/internal/config"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/httpapi"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v (fields: %v)", err, config.ValidationErrors(err))
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	logger.Info("Starting tutor dashboard",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("timezone", cfg.Location().String()),
		zap.Bool("bot_enabled", cfg.BotEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = pool.Ping(pingCtx)
	cancel()
	if err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("Database connection established")

	if cfg.MigrationsEnabled {
		runMigrations(ctx, pool, logger)
	}

	redisClient, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Репозитории
	teacherRepo := repository.NewTeacherRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	// Сервисы
	metrics := service.NewMetricsService()
	dashboardService := service.NewDashboardService(teacherRepo, bookingRepo, metrics, cfg.Location(), logger)
	teacherService := service.NewTeacherService(teacherRepo, logger)
	authService := service.NewAuthService(service.AuthConfig{
		Secret:     cfg.JWTSecret,
		LoginTTL:   cfg.LoginTokenTTL,
		SessionTTL: cfg.SessionTTL,
	}, cache.NewTokenStore(redisClient), logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := httpapi.NewHandler(dashboardService, authService, cfg.SecureCookies, logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, authService, metrics, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	var scheduler *app.Scheduler
	if cfg.BotEnabled() {
		scheduler = startBot(ctx, cfg, teacherService, dashboardService, authService, bookingRepo, teacherRepo, metrics, logger)
	} else {
		logger.Warn("TELEGRAM_TOKEN is empty, bot and reminders are disabled")
	}

	<-ctx.Done()
	logger.Info("Shutting down...")

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown HTTP server gracefully", zap.Error(err))
	}

	logger.Info("Tutor dashboard stopped")
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) {
	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
}

// startBot запускает Telegram бота и планировщик напоминаний
func startBot(
	ctx context.Context,
	cfg *config.Config,
	teacherService *service.TeacherService,
	dashboardService *service.DashboardService,
	authService *service.AuthService,
	bookingRepo *repository.BookingRepository,
	teacherRepo *repository.TeacherRepository,
	metrics *service.MetricsService,
	logger *zap.Logger,
) *app.Scheduler {
	botLogger := logger.Named("bot")

	b, err := bot.New(cfg.TelegramToken, bot.WithErrorsHandler(func(err error) {
		botLogger.Error("Telegram API error", zap.Error(err))
	}))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, teacherService, dashboardService, authService, cfg.PublicURL, botLogger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// Меню команд не критично для работы бота
		botLogger.Warn("Bot commands menu not set", zap.Error(err))
	}
	go botController.Start(ctx)

	reminders := service.NewReminderService(
		bookingRepo,
		teacherRepo,
		controller.NewReminderNotifier(b),
		metrics,
		cfg.Location(),
		logger.Named("reminders"),
	)

	scheduler := app.NewScheduler(reminders, cfg.ReminderInterval, logger)
	scheduler.Start(ctx)
	return scheduler
}
