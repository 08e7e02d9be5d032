package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/agnivade/pitchtrack"
	"github.com/agnivade/pitchtrack/capture"
	"github.com/agnivade/pitchtrack/capture/portaudio"
	"github.com/agnivade/pitchtrack/capture/synth"
	"github.com/agnivade/pitchtrack/estimator/yin"
	"github.com/agnivade/pitchtrack/healthcheck"
	"github.com/agnivade/pitchtrack/observe"
)

var version = "0.1.0"

// CLI defines the command-line interface. Flags override the config file
// and PITCHTRACK_* environment variables.
type CLI struct {
	Config       string  `short:"c" type:"path" help:"Path to YAML config file (optional)"`
	Device       string  `short:"d" help:"Input device name, or a substring of it"`
	Synthetic    float64 `placeholder:"HZ" help:"Track a generated sine of this frequency instead of the microphone"`
	Float        bool    `help:"Request float32 samples from the device"`
	Tuning       string  `short:"t" help:"Target tuning as six note letters, e.g. DADGBE"`
	Listen       string  `help:"Websocket and metrics listen address"`
	HealthListen string  `help:"gRPC health listen address"`
	LogLevel     string  `help:"Log level: debug, info, warn or error"`
	Version      bool    `short:"v" help:"Show version information"`
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("pitchtrack"),
		kong.Description("Real-time pitch tracker streaming notes over websocket"),
		kong.UsageOnError(),
	)

	if cli.Version {
		fmt.Println("pitchtrack", version)
		return
	}

	cfg, err := cli.config(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, cli.Synthetic, logger); err != nil {
		logger.Error("pitchtrack stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("pitchtrack stopped")
}

// config layers the file, the environment and the flags, in that order.
func (c *CLI) config(lookup func(string) (string, bool)) (pitchtrack.Config, error) {
	cfg := pitchtrack.DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = pitchtrack.LoadConfig(c.Config); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	if c.Device != "" {
		cfg.Device = c.Device
	}
	if c.Float {
		cfg.PreferFloat = true
	}
	if c.Tuning != "" {
		cfg.Tuning = c.Tuning
	}
	if c.Listen != "" {
		cfg.Server.Listen = c.Listen
	}
	if c.HealthListen != "" {
		cfg.Server.HealthListen = c.HealthListen
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.Synthetic < 0 {
		return cfg, errors.New("synthetic frequency must be positive")
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg pitchtrack.Config, synthetic float64, logger *slog.Logger) error {
	mp, shutdownMetrics, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceVersion: version})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() {
		if err := shutdownMetrics(context.Background()); err != nil {
			logger.Warn("metrics shutdown", "error", err)
		}
	}()
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		return fmt.Errorf("create instruments: %w", err)
	}

	source, closeSource, err := newSource(cfg, synthetic, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	tuning, err := pitchtrack.ParseTuning(cfg.Tuning)
	if err != nil {
		return err
	}
	broadcaster := pitchtrack.NewBroadcaster(logger,
		pitchtrack.WithTuning(tuning),
		pitchtrack.WithBroadcastMetrics(metrics),
	)
	defer broadcaster.Close()

	health := healthcheck.New(logger)
	engine, err := pitchtrack.New(cfg, source, yin.Factory,
		pitchtrack.OnResult(broadcaster.Publish),
		pitchtrack.OnStateChange(health.SetEngineState),
		pitchtrack.OnError(func(err error) {
			logger.Error("pitch tracking failed", "error", err)
		}),
		pitchtrack.WithLogger(logger),
		pitchtrack.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	server := pitchtrack.NewServer(cfg.Server.Listen, broadcaster, pitchtrack.WithServerLogger(logger))

	lis, err := net.Listen("tcp", cfg.Server.HealthListen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.HealthListen, err)
	}
	grpcServer := grpc.NewServer()
	health.Register(grpcServer)

	logger.Info("pitchtrack starting",
		"version", version,
		"listen", cfg.Server.Listen,
		"health_listen", lis.Addr().String(),
		"tuning", tuning.String(),
		"synthetic_hz", synthetic,
	)

	if err := engine.Start(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-engine.Done():
		}

		engine.Stop()
		health.Shutdown()
		grpcServer.Stop()
		if err := server.Stop(); err != nil {
			logger.Warn("server shutdown", "error", err)
		}

		stats := engine.Stats()
		logger.Info("engine totals",
			"frames", stats.Frames,
			"active_frames", stats.ActiveFrames,
			"results", stats.Results,
			"restarts", stats.Restarts,
			"read_errors", stats.ReadErrors,
		)
		return engine.Err()
	})
	return g.Wait()
}

// newSource returns the capture source and a function releasing it.
func newSource(cfg pitchtrack.Config, synthetic float64, logger *slog.Logger) (capture.Source, func(), error) {
	if synthetic > 0 {
		logger.Info("using synthetic input", "hz", synthetic)
		return &synth.Source{
			Signal:    synth.Sine(synthetic, 0.5),
			ChunkSize: cfg.HopSize(),
			Realtime:  true,
		}, func() {}, nil
	}

	src, err := portaudio.NewSource(cfg.Device, logger)
	if err != nil {
		return nil, nil, err
	}
	return src, func() {
		if err := src.Close(); err != nil {
			logger.Warn("portaudio terminate", "error", err)
		}
	}, nil
}

func newLogger(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

func parseLevel(value string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
