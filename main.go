package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wildmark/server/catalog"
	"wildmark/server/internal/archive"
	"wildmark/server/internal/world"
	"wildmark/server/logging"
	"wildmark/server/logging/sinks"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("logger", zap.Error(err))
	}
	defer logger.Sync()

	router, err := buildRouter(cfg, logger)
	if err != nil {
		logger.Fatal("logging router", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		router.Close(ctx)
	}()

	species, err := catalog.Load(cfg.SpeciesPath)
	if err != nil {
		logger.Fatal("species catalog", zap.Error(err))
	}
	logger.Info("species catalog loaded",
		zap.Int("version", species.Version()),
		zap.Strings("species", species.SpeciesTags()),
	)

	var archiver *archive.Writer
	if cfg.ArchiveDir != "" {
		archiver, err = archive.NewWriter(cfg.ArchiveDir, cfg.ArchiveKeep)
		if err != nil {
			logger.Fatal("snapshot archive", zap.Error(err))
		}
	}

	// The hub and the world reference each other through the sound emitter;
	// construct the hub shell first, then the world, then bind.
	hub := newHub(nil, archiver, logger)
	w, err := world.New(cfg.World, world.Deps{
		Publisher: router,
		Terrain:   world.NoWater(),
		Sounds:    hub.SoundEmitter(),
		Species:   species,
	})
	if err != nil {
		logger.Fatal("world", zap.Error(err))
	}
	hub.world = w

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/join", hub.handleJoin)
	mux.HandleFunc("/ws", hub.handleWS)
	mux.HandleFunc("/diagnostics", func(rw http.ResponseWriter, r *http.Request) {
		tick, players, animals := hub.diagnostics()
		rw.Header().Set("Content-Type", "application/json")
		json.NewEncoder(rw).Encode(diagnosticsResponse{
			Tick:        tick,
			Players:     players,
			Animals:     animals,
			Subscribers: hub.subscriberCount(),
			Logging:     router.Stats(),
		})
	})

	server := &http.Server{Addr: cfg.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("seed", w.Seed()))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("serve", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	switch level {
	case "debug":
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn", "warning":
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zcfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zcfg.Build()
}

func buildRouter(cfg serverConfig, logger *zap.Logger) (*logging.Router, error) {
	logCfg := cfg.loggingConfig()
	var named []logging.NamedSink
	if logCfg.HasSink("console") {
		named = append(named, logging.NamedSink{Name: "console", Sink: sinks.NewConsole(logger)})
	}
	if logCfg.HasSink("memory") {
		named = append(named, logging.NamedSink{Name: "memory", Sink: sinks.NewMemory()})
	}
	if logCfg.HasSink("sqlite") {
		sqliteSink, err := sinks.NewSQLite(logCfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		named = append(named, logging.NamedSink{Name: "sqlite", Sink: sqliteSink})
	}
	return logging.NewRouter(nil, logCfg, named), nil
}
