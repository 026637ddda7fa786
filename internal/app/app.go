package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/smerle/marque/internal/config"
	"github.com/smerle/marque/internal/httpserver"
	"github.com/smerle/marque/internal/httpserver/deps"
	"github.com/smerle/marque/internal/index"
	"github.com/smerle/marque/internal/logger"
	"github.com/smerle/marque/internal/metadata"
	"github.com/smerle/marque/internal/redis"
	"github.com/smerle/marque/internal/scheduler"
	"github.com/smerle/marque/internal/selection"
	"github.com/smerle/marque/internal/service"
	"github.com/smerle/marque/internal/sources/export"
	"github.com/smerle/marque/internal/store"
	"github.com/smerle/marque/internal/store/memory"
	redisstore "github.com/smerle/marque/internal/store/redis"
	"github.com/smerle/marque/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	store       store.Store
	memIndex    *index.MemoryIndex
	refresher   *scheduler.SnapshotRefresher
	collector   *scheduler.TrashCollector
	importer    *export.Importer
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	var (
		st          store.Store
		redisClient *goredis.Client
	)
	switch cfg.Store {
	case config.StoreMemory:
		loggerClient.Info("using in-memory store")
		st = memory.NewStore()
	default:
		// Fail fast if Redis is unavailable.
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		st = redisstore.NewStore(client)
	}

	memIndex := index.NewMemoryIndex()

	// Services fire the trigger after each commit so the index catches
	// up without waiting for the next tick.
	refreshTrigger := make(chan struct{}, 1)
	notify := func() {
		select {
		case refreshTrigger <- struct{}{}:
		default:
		}
	}

	bookmarks := service.NewBookmarks(st, loggerClient, nil, notify)
	folders := service.NewFolders(st, loggerClient, nil, notify)
	tags := service.NewTags(st, loggerClient, nil, notify)

	refresher := scheduler.NewSnapshotRefresher(st, memIndex, loggerClient, cfg.RefreshInterval, refreshTrigger)
	collector := scheduler.NewTrashCollector(st, loggerClient, cfg.TrashSweepInterval, cfg.TrashTTL)

	var importer *export.Importer
	if cfg.ImportFile != "" {
		importer = export.NewImporter(cfg.ImportFile, cfg.ImportUser, st, loggerClient)
	}

	fetcher := metadata.NewFetcher(metadata.Options{
		Timeout:      cfg.FetchTimeout,
		MaxRedirects: cfg.FetchMaxRedirects,
		UserAgent:    cfg.FetchUserAgent,
	})

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Store:          st,
		MemoryIndex:    memIndex,
		Bookmarks:      bookmarks,
		Folders:        folders,
		Tags:           tags,
		Selections:     selection.NewRegistry(bookmarks),
		Fetcher:        fetcher,
		RefreshTrigger: refreshTrigger,
		AllowedHosts:   cfg.AllowedHosts,
		CORSOrigins:    cfg.CORSOrigins,
		TrustProxy:     cfg.TrustProxy,
		MetadataRPM:    cfg.MetadataRPM,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		store:       st,
		memIndex:    memIndex,
		refresher:   refresher,
		collector:   collector,
		importer:    importer,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One-shot import before anything reads the store.
	if a.importer != nil {
		a.logger.Info("importing bookmark export", logger.String("file", a.cfg.ImportFile))
		if err := a.importer.Run(ctx); err != nil {
			return fmt.Errorf("failed to import bookmark export: %w", err)
		}
	}

	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start snapshot refresher: %w", err)
	}
	a.logger.Info("snapshot refresher started",
		logger.Duration("interval", a.cfg.RefreshInterval))

	if a.cfg.TrashSweepInterval > 0 {
		if err := a.collector.Start(ctx); err != nil {
			return fmt.Errorf("failed to start trash collector: %w", err)
		}
		a.logger.Info("trash collector started",
			logger.Duration("interval", a.cfg.TrashSweepInterval),
			logger.Duration("ttl", a.cfg.TrashTTL))
	} else {
		a.logger.Info("trash collection disabled")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.refresher.Stop()
	if a.cfg.TrashSweepInterval > 0 {
		a.collector.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("Marque stopped cleanly")
	return nil
}
