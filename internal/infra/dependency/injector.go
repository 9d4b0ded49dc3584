// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/backoffice/backend/config"
	"github.com/backoffice/backend/internal/application/adapter"
	"github.com/backoffice/backend/internal/application/usecase/auth"
	"github.com/backoffice/backend/internal/application/usecase/dashboard"
	"github.com/backoffice/backend/internal/application/usecase/finance"
	"github.com/backoffice/backend/internal/application/usecase/quarter"
	"github.com/backoffice/backend/internal/application/usecase/record"
	domainerror "github.com/backoffice/backend/internal/domain/error"
	"github.com/backoffice/backend/internal/infra/server/router"
	"github.com/backoffice/backend/internal/integration/adapters"
	"github.com/backoffice/backend/internal/integration/email"
	"github.com/backoffice/backend/internal/integration/email/templates"
	"github.com/backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/backoffice/backend/internal/integration/events"
	"github.com/backoffice/backend/internal/integration/persistence"
)

// UseCases exposes the quarterly engine operations to entrypoints other than HTTP.
type UseCases struct {
	DashboardStats *dashboard.GetDashboardStatsUseCase
	DashboardKPIs  *dashboard.GetDashboardKPIsUseCase
	TargetProgress *dashboard.GetTargetProgressUseCase
	GetQuarter     *quarter.GetOrCreateQuarterUseCase
	QuarterStatus  *quarter.IsQuarterClosedUseCase
	SetTarget      *quarter.SetTargetUseCase
	CloseQuarter   *quarter.CloseQuarterUseCase
	ArchiveQuarter *quarter.ArchiveQuarterUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Clock    adapter.Clock
	UseCases UseCases
	Router   *router.Router

	amqp         *events.AMQPPublisher
	rateLimiters []*middleware.RateLimiter
}

// Option customizes the injector.
type Option func(*options)

type options struct {
	clock    adapter.Clock
	dbHealth controller.HealthCheck
}

// WithClock replaces the system clock.
func WithClock(clock adapter.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithDatabaseHealthCheck replaces the default database ping.
func WithDatabaseHealthCheck(check controller.HealthCheck) Option {
	return func(o *options) { o.dbHealth = check }
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil; rate limits then stay in process memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...Option) (*Injector, error) {
	o := options{clock: adapters.NewSystemClock()}
	for _, opt := range opts {
		opt(&o)
	}
	clock := o.clock

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	quarterRepo := persistence.NewQuarterRepository(db)
	recordReader := persistence.NewRecordReader(db)
	recordWriter := persistence.NewRecordWriter(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, clock)

	injector := &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Clock:  clock,
	}

	publisher, err := injector.buildPublisher(cfg)
	if err != nil {
		return nil, err
	}

	// Create finance engine
	aggregator := finance.NewAggregator(recordReader, cfg.Finance.RecordFetchLimit)
	getOrCreateQuarter := quarter.NewGetOrCreateQuarterUseCase(quarterRepo)
	kpiEngine := finance.NewKPIEngine(aggregator, getOrCreateQuarter)
	targetTracker := finance.NewTargetTracker(aggregator, getOrCreateQuarter, cfg.Finance.HighValueRetainer)
	periodGuard := quarter.NewPeriodGuard(quarterRepo)

	injector.UseCases = UseCases{
		DashboardStats: dashboard.NewGetDashboardStatsUseCase(aggregator, getOrCreateQuarter),
		DashboardKPIs:  dashboard.NewGetDashboardKPIsUseCase(kpiEngine),
		TargetProgress: dashboard.NewGetTargetProgressUseCase(targetTracker),
		GetQuarter:     getOrCreateQuarter,
		QuarterStatus:  quarter.NewIsQuarterClosedUseCase(quarterRepo),
		SetTarget:      quarter.NewSetTargetUseCase(quarterRepo),
		CloseQuarter:   quarter.NewCloseQuarterUseCase(quarterRepo, aggregator, publisher, clock),
		ArchiveQuarter: quarter.NewArchiveQuarterUseCase(quarterRepo, clock),
	}
	uc := injector.UseCases

	// Create controllers
	dbHealth := o.dbHealth
	if dbHealth == nil {
		dbHealth = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	var redisHealth controller.HealthCheck
	if redisClient != nil {
		redisHealth = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(dbHealth, redisHealth, clock),
		Auth: controller.NewAuthController(
			auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
			auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
		),
		Dashboard: controller.NewDashboardController(uc.DashboardStats, uc.DashboardKPIs, uc.TargetProgress, clock),
		Quarter: controller.NewQuarterController(
			uc.GetQuarter,
			uc.QuarterStatus,
			uc.SetTarget,
			uc.CloseQuarter,
			uc.ArchiveQuarter,
		),
		Record: controller.NewRecordController(controller.RecordUseCases{
			CreateInvoice: record.NewCreateInvoiceUseCase(recordWriter, periodGuard, cfg.Finance.ReportingCurrency),
			UpdateInvoice: record.NewUpdateInvoiceUseCase(recordWriter, periodGuard),
			DeleteInvoice: record.NewDeleteInvoiceUseCase(recordWriter, periodGuard),
			CreateExpense: record.NewCreateExpenseUseCase(recordWriter, periodGuard),
			UpdateExpense: record.NewUpdateExpenseUseCase(recordWriter, periodGuard),
			DeleteExpense: record.NewDeleteExpenseUseCase(recordWriter, periodGuard),
		}),
	}

	// Create middleware
	var loginRateLimit, closeRateLimit gin.HandlerFunc
	if cfg.Server.RateLimiting {
		login := middleware.NewRateLimiter(
			redisClient, "login",
			cfg.Finance.LoginRateLimit, cfg.Finance.LoginRateWindow,
			string(domainerror.ErrCodeRateLimited),
		)
		closing := middleware.NewRateLimiter(
			redisClient, "close",
			cfg.Finance.CloseRateLimit, cfg.Finance.CloseRateWindow,
			string(domainerror.ErrCodeCloseRateLimited),
		)
		injector.rateLimiters = []*middleware.RateLimiter{login, closing}
		loginRateLimit = login.Middleware(middleware.ClientIPKey)
		closeRateLimit = closing.Middleware(middleware.UserKey)
	} else {
		slog.Warn("Rate limiting disabled")
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	injector.Router = router.NewRouter(controllers, authMiddleware, loginRateLimit, closeRateLimit)

	return injector, nil
}

// buildPublisher assembles the quarter-closed listeners that are configured.
func (i *Injector) buildPublisher(cfg *config.Config) (adapter.QuarterEventPublisher, error) {
	var fanout events.Fanout

	if cfg.Email.ResendAPIKey != "" && len(cfg.Email.ClosingRecipients) > 0 {
		sender, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ResendBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create email client: %w", err)
		}
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to create email renderer: %w", err)
		}
		fanout = append(fanout, email.NewQuarterClosedNotifier(sender, renderer, email.NotifierConfig{
			Recipients:  cfg.Email.ClosingRecipients,
			Currency:    cfg.Finance.ReportingCurrency,
			MaxAttempts: cfg.Email.MaxAttempts,
			RetryDelay:  cfg.Email.RetryDelay,
		}))
		slog.Info("Quarter-closed emails enabled", "recipients", len(cfg.Email.ClosingRecipients))
	}

	if cfg.Events.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			return nil, fmt.Errorf("failed to create event publisher: %w", err)
		}
		i.amqp = publisher
		fanout = append(fanout, publisher)
		slog.Info("Quarter events enabled", "exchange", cfg.Events.Exchange)
	}

	if len(fanout) == 0 {
		return nil, nil
	}
	return fanout, nil
}

// StartMaintenance runs background housekeeping until ctx is cancelled.
func (i *Injector) StartMaintenance(ctx context.Context, interval time.Duration) {
	for _, rl := range i.rateLimiters {
		go rl.StartCleanup(ctx, interval)
	}
}

// Close releases connections opened by the injector.
func (i *Injector) Close() error {
	if i.amqp != nil {
		if err := i.amqp.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}
	return nil
}
