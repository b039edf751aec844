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

	"github.com/bangfree/bang-client-go/internal/config"
	"github.com/bangfree/bang-client-go/internal/gamelog"
	"github.com/bangfree/bang-client-go/internal/locale"
	"github.com/bangfree/bang-client-go/internal/metrics"
	"github.com/bangfree/bang-client-go/internal/netclient"
	"github.com/bangfree/bang-client-go/internal/protocol"
	"github.com/bangfree/bang-client-go/internal/replay"
	"github.com/bangfree/bang-client-go/internal/repository"
	"github.com/bangfree/bang-client-go/internal/selector"
	"github.com/bangfree/bang-client-go/internal/sequencer"
	"github.com/bangfree/bang-client-go/internal/table"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting bang client",
		zap.String("version", version),
		zap.String("server", cfg.Server.URL),
		zap.Int("user_id", cfg.Server.UserID),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Optional game-history database.
	var history *repository.GameHistoryRepository
	if cfg.Database.DSN != "" {
		pool, err := repository.NewDB(ctx, cfg.Database.DSN, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		history = repository.NewGameHistoryRepository(pool)

		recent, err := history.Recent(ctx, 5)
		if err != nil {
			logger.Warn("failed to load game history", zap.Error(err))
		} else {
			logger.Info("game history loaded", zap.Int("recent_games", len(recent)))
			for _, rec := range recent {
				logger.Debug("past game",
					zap.String("game_id", rec.GameID.String()),
					zap.Time("finished_at", rec.FinishedAt),
					zap.String("winner_role", rec.WinnerRole),
				)
			}
		}
	}

	// Optional metrics endpoint.
	var engineMetrics *metrics.Metrics
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		engineMetrics = metrics.New(registry)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsSrv := &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			logger.Info("metrics endpoint listening", zap.String("address", cfg.Metrics.Address))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer metricsSrv.Shutdown(context.Background())
	}

	logStore := gamelog.NewStore(locale.Default(), logger)
	tbl := table.New(cfg.Server.UserID)

	gameID := uuid.New()
	var recorder *replay.Recorder
	if cfg.Replay.Enabled {
		recorder = replay.NewRecorder(gameID.String())
	}

	// The selector needs a sender before the connection exists, so the
	// sender is bound after dialing.
	var conn *netclient.Client
	sender := selector.ActionSenderFunc(func(a protocol.GameAction) {
		if engineMetrics != nil {
			engineMetrics.ObserveActionSent()
		}
		conn.SendAction(a)
	})
	sel := selector.New(sender, logger)

	opts := []sequencer.Option{
		sequencer.WithLogger(logger),
		sequencer.WithSelector(sel),
		sequencer.WithStatusConsumer(logStore),
	}
	if recorder != nil {
		opts = append(opts, sequencer.WithRecorder(recorder))
	}
	if engineMetrics != nil {
		opts = append(opts, sequencer.WithMetrics(engineMetrics))
	}
	seq := sequencer.New(tbl, opts...)

	conn, err = netclient.Dial(ctx, cfg.Server.URL, seq.Enqueue, logger)
	if err != nil {
		logger.Fatal("failed to connect to game server", zap.Error(err))
	}
	defer conn.Close()

	tickInterval := time.Second / time.Duration(cfg.Server.TickRate)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	startedAt := time.Now()
	gameOverHandled := false
	last := time.Now()

	logger.Info("entering game loop", zap.Duration("tick_interval", tickInterval))

	for {
		select {
		case now := <-ticker.C:
			elapsed := protocol.Milliseconds(now.Sub(last).Milliseconds())
			last = now
			seq.Tick(elapsed)

			if !gameOverHandled && seq.Table().IsGameOver() && seq.QueueLen() == 0 && !seq.Animating() {
				gameOverHandled = true
				finishGame(ctx, cfg, logger, seq, recorder, history, gameID, startedAt)
				conn.ReturnLobby()
			}
		case sig := <-sigChan:
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
			return
		case <-conn.Done():
			logger.Info("connection closed, shutting down")
			return
		}
	}
}

// finishGame persists the replay and the history record once the final
// update has fully animated.
func finishGame(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	seq *sequencer.Sequencer,
	recorder *replay.Recorder,
	history *repository.GameHistoryRepository,
	gameID uuid.UUID,
	startedAt time.Time,
) {
	logger.Info("game over", zap.String("game_id", gameID.String()))

	updateCount := 0
	if recorder != nil {
		updateCount = recorder.Size()
		path, err := recorder.SaveToFile(cfg.Replay.Directory)
		if err != nil {
			logger.Error("failed to save replay", zap.Error(err))
		} else {
			logger.Info("replay saved", zap.String("path", path))
		}
	}

	if history != nil {
		winnerRole := ""
		tbl := seq.Table()
		for _, id := range tbl.Players() {
			p, ok := tbl.Player(id)
			if ok && p.HasFlag("winner") {
				winnerRole = string(p.Role)
				break
			}
		}
		rec := &repository.GameRecord{
			GameID:      gameID,
			StartedAt:   startedAt,
			FinishedAt:  time.Now(),
			UpdateCount: updateCount,
			Players:     len(tbl.Players()),
			WinnerRole:  winnerRole,
		}
		saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := history.Create(saveCtx, rec); err != nil {
			logger.Error("failed to save game record", zap.Error(err))
		} else {
			logger.Info("game record saved", zap.Int64("id", rec.ID))
		}
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
