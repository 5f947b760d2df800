// Command bizdash runs a headless dashboard session: the tenant-scoped API
// client over a mock or live gateway, the cached data hub, the settings
// store and the follow-up scheduler, held together until shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bizdash/bizdash/internal/client"
	"github.com/bizdash/bizdash/internal/data"
	"github.com/bizdash/bizdash/internal/fixtures"
	"github.com/bizdash/bizdash/internal/gateway"
	"github.com/bizdash/bizdash/internal/infrastructure/auth"
	"github.com/bizdash/bizdash/internal/infrastructure/config"
	"github.com/bizdash/bizdash/internal/infrastructure/logger"
	"github.com/bizdash/bizdash/internal/infrastructure/telemetry"
	"github.com/bizdash/bizdash/internal/query"
	"github.com/bizdash/bizdash/internal/scheduler"
	"github.com/bizdash/bizdash/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting dashboard session",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("tenant", cfg.App.TenantID),
		zap.Bool("mock_mode", cfg.MockMode()))

	provider, err := telemetry.NewMeterProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		ExportInterval:    cfg.Telemetry.ExportInterval,
	}, log)
	if err != nil {
		log.Warn("Telemetry unavailable", zap.Error(err))
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(ctx); err != nil {
				log.Warn("Telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	api := client.New(buildGateway(cfg, log), cfg.App.TenantID, client.WithLogger(log))

	if cfg.API.Token != "" {
		if claims, err := auth.Introspect(cfg.API.Token); err == nil {
			log.Info("Session token",
				zap.String("email", claims.Email),
				zap.String("tenant", claims.TenantID),
				zap.Time("expires_at", claims.ExpiresAt()))
		}
	}

	store := settings.NewStore(buildSettingsStorage(cfg, log), settings.WithStoreLogger(log))
	for _, violation := range store.Validate() {
		log.Warn("Settings violation", zap.String("violation", violation))
	}

	hub := data.NewHub(api,
		data.WithNotifier(query.NewZapNotifier(log)),
		data.WithHubLogger(log))
	defer func() {
		_ = hub.Close()
	}()

	if cfg.Scheduler.Enabled {
		followups := scheduler.NewFollowupScheduler(api, cfg.Scheduler.CronSchedule,
			scheduler.WithFollowupLogger(log))
		if err := followups.Start(); err != nil {
			log.Fatal("Failed to start followup scheduler", zap.Error(err))
		}
		defer followups.Stop()
	}

	logStartupSummary(hub, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down session...")

	hits, misses := hub.CacheStats()
	log.Info("Session cache stats",
		zap.Int64("hits", hits),
		zap.Int64("misses", misses))
	log.Info("Session exited gracefully")
}

// buildGateway selects the backend per configuration: a seeded in-memory
// mock, or real HTTP against the configured base URL.
func buildGateway(cfg *config.Config, log *zap.Logger) gateway.BackendGateway {
	if cfg.MockMode() {
		store := fixtures.NewStore(cfg.App.TenantID)
		fixtures.NewGenerator(cfg.App.TenantID, uint64(cfg.Mock.Seed)).
			Seed(store, fixtures.DefaultCounts())
		return gateway.NewMockGateway(store,
			gateway.WithMockDelay(cfg.Mock.DelayMin, cfg.Mock.DelayMax),
			gateway.WithMockLogger(log))
	}

	return gateway.NewHTTPGateway(cfg.API.BaseURL,
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		gateway.WithTokenSource(auth.Bearer{Source: auth.StaticToken(cfg.API.Token)}),
		gateway.WithRateLimit(cfg.API.RateLimit, 1),
		gateway.WithHTTPLogger(log))
}

// buildSettingsStorage wires the configured settings backend, degrading to
// memory when redis is unreachable.
func buildSettingsStorage(cfg *config.Config, log *zap.Logger) settings.Storage {
	switch cfg.Settings.Backend {
	case "file":
		return settings.NewFileStorage(cfg.Settings.Path)
	case "redis":
		storage, err := settings.NewRedisStorage(settings.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis settings storage unavailable, falling back to memory",
				zap.Error(err))
			return settings.NewMemoryStorage()
		}
		return storage
	default:
		return settings.NewMemoryStorage()
	}
}

func logStartupSummary(hub *data.Hub, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := hub.DashboardStats(ctx)
	if err != nil {
		log.Warn("Dashboard stats unavailable", zap.Error(err))
		return
	}
	log.Info("Dashboard",
		zap.Int("clients", stats.TotalClients),
		zap.Int("active_clients", stats.ActiveClients),
		zap.Int("orders", stats.TotalOrders),
		zap.Int("pending_orders", stats.PendingOrders),
		zap.Int("new_leads", stats.NewLeads),
		zap.String("revenue", stats.TotalRevenue.String()),
		zap.String("outstanding", stats.OutstandingBalance.String()))
}
