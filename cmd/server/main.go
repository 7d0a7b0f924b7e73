package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/cafepos/internal/config"
	"github.com/mamadbah2/cafepos/internal/domain/models"
	kitchenmq "github.com/mamadbah2/cafepos/internal/messaging/kitchen"
	"github.com/mamadbah2/cafepos/internal/repository/mongodb"
	"github.com/mamadbah2/cafepos/internal/repository/postgres"
	"github.com/mamadbah2/cafepos/internal/repository/redisstore"
	"github.com/mamadbah2/cafepos/internal/repository/sheets"
	"github.com/mamadbah2/cafepos/internal/scheduler"
	"github.com/mamadbah2/cafepos/internal/server/handlers"
	"github.com/mamadbah2/cafepos/internal/server/router"
	"github.com/mamadbah2/cafepos/internal/service/businessdate"
	catalogsvc "github.com/mamadbah2/cafepos/internal/service/catalog"
	inventorysvc "github.com/mamadbah2/cafepos/internal/service/inventory"
	kitchensvc "github.com/mamadbah2/cafepos/internal/service/kitchen"
	"github.com/mamadbah2/cafepos/internal/service/ordering"
	reportingsvc "github.com/mamadbah2/cafepos/internal/service/reporting"
	"github.com/mamadbah2/cafepos/pkg/clients/weather"
	whatsappclient "github.com/mamadbah2/cafepos/pkg/clients/whatsapp"
	"github.com/mamadbah2/cafepos/pkg/logger"
	"github.com/mamadbah2/cafepos/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc := cfg.Reporting.Location()

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.Telemetry, cfg.Store.Location)
	if err != nil {
		baseLogger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			baseLogger.Error("failed to flush traces", zap.Error(err))
		}
	}()

	pool, err := postgres.Connect(context.Background(), cfg.Database.URL)
	if err != nil {
		baseLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	repo := postgres.New(pool, baseLogger.Named("repo.postgres"), postgres.WithLocation(loc))

	var initial models.EffectiveDate
	if cfg.Store.BusinessDate != "" {
		if initial, err = models.ParseEffectiveDate(cfg.Store.BusinessDate); err != nil {
			baseLogger.Fatal("invalid BUSINESS_DATE", zap.Error(err))
		}
	}
	var dateOpts []businessdate.Option
	if cfg.Redis.URL != "" {
		redisClient, err := redisstore.Connect(context.Background(), cfg.Redis.URL)
		if err != nil {
			baseLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()

		dateStore := redisstore.NewBusinessDateStore(redisClient, cfg.Redis.KeyPrefix)
		if initial.IsZero() {
			saved, err := dateStore.LoadBusinessDate(context.Background())
			switch {
			case err == nil:
				initial = saved
				baseLogger.Info("resuming saved business date", zap.Stringer("date", saved))
			case !errors.Is(err, models.ErrNotFound):
				baseLogger.Warn("failed to read saved business date", zap.Error(err))
			}
		}
		dateOpts = append(dateOpts, businessdate.WithPersister(dateStore))
	}
	dates := businessdate.NewHolder(initial, loc, baseLogger.Named("svc.businessdate"), dateOpts...)

	catalogSvc := catalogsvc.NewService(repo, baseLogger.Named("svc.catalog"))
	inventorySvc := inventorysvc.NewService(repo, baseLogger.Named("svc.inventory"))
	if _, err := inventorySvc.Refresh(context.Background()); err != nil {
		baseLogger.Warn("initial inventory load failed", zap.Error(err))
	}
	reportingSvc := reportingsvc.NewService(repo, loc, baseLogger.Named("svc.reporting"))
	kitchenSvc := kitchensvc.NewService(repo, loc, baseLogger.Named("svc.kitchen"))

	options := ordering.DefaultOptions(cfg.Store.ExtraSurcharge)
	if cfg.Store.CustomizationFile != "" {
		custom, err := config.LoadCustomization(cfg.Store.CustomizationFile, cfg.Store.ExtraSurcharge)
		if err != nil {
			baseLogger.Fatal("failed to load customization options", zap.Error(err))
		}
		options = ordering.Options{BaseIngredients: custom.BaseIngredients, Extras: custom.Extras}
	}
	composer := ordering.NewComposer(options)

	sessionOpts := []ordering.SessionOption{ordering.WithLocation(loc)}
	if cfg.Kitchen.URL != "" {
		publisher, err := kitchenmq.Dial(cfg.Kitchen.URL, cfg.Kitchen.Exchange, baseLogger.Named("mq.kitchen"))
		if err != nil {
			baseLogger.Fatal("failed to connect to kitchen broker", zap.Error(err))
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				baseLogger.Error("failed to close kitchen broker connection", zap.Error(err))
			}
		}()
		sessionOpts = append(sessionOpts, ordering.WithPublisher(publisher))
		baseLogger.Info("kitchen tickets enabled", zap.String("exchange", cfg.Kitchen.Exchange))
	} else {
		baseLogger.Warn("RABBITMQ_URL missing, kitchen tickets disabled")
	}

	sessionLogger := baseLogger.Named("svc.ordering")
	sessions := ordering.NewSessionManager(func(employeeID int) *ordering.Session {
		return ordering.NewSession(employeeID, cfg.Store.Location, repo, sessionLogger, sessionOpts...)
	})

	if cfg.Weather.APIKey == "" {
		baseLogger.Warn("OW_API_KEY missing, weather widget disabled")
	}
	weatherClient := weather.NewClient(cfg.Weather)

	var sinks scheduler.Sinks
	var reportOpts []handlers.ReportOption
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks.Snapshots = mongoRepo
		reportOpts = append(reportOpts, handlers.WithSnapshots(mongoRepo, loc))
	}

	engine := router.New(router.Handlers{
		Menu:      handlers.NewMenuHandler(catalogSvc, dates.Get, baseLogger.Named("handlers.menu")),
		Orders:    handlers.NewOrderHandler(sessions, composer, catalogSvc, dates.Get, cfg.Store.DefaultEmployeeID, baseLogger.Named("handlers.orders")),
		Inventory: handlers.NewInventoryHandler(inventorySvc, baseLogger.Named("handlers.inventory")),
		Reports:   handlers.NewReportHandler(reportingSvc, dates.Get, baseLogger.Named("handlers.reports"), reportOpts...),
		Kitchen:   handlers.NewKitchenHandler(kitchenSvc, dates.Get, baseLogger.Named("handlers.kitchen")),
		System:    handlers.NewSystemHandler(dates, weatherClient, baseLogger.Named("handlers.system")),
	}, baseLogger.Named("router"))

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks.Exporter = sheetsRepo
	}
	if cfg.Notify.Enabled() {
		sinks.Notifier = whatsappclient.NewClient(cfg.Notify)
	}

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, dates.Get, sinks, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      otelhttp.NewHandler(engine, cfg.Telemetry.ServiceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("location", cfg.Store.Location),
			zap.Stringer("business_date", dates.Get()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
