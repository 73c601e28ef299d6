package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/henvic/geostore"
	"github.com/henvic/geostore/internal/api"
	"github.com/henvic/geostore/internal/config"
	"github.com/henvic/geostore/internal/ipstack"
	"github.com/henvic/geostore/internal/maxmind"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
)

var envFile = flag.String("env-file", ".env", "File with environment variables to load, if it exists")

func main() {
	flag.Parse()
	p := program{
		log: slog.Default(),
	}

	if err := p.run(); err != nil {
		p.log.Error("application terminated", slog.Any("error", err))
		os.Exit(1)
	}
}

type program struct {
	log *slog.Logger
}

func (p *program) run() error {
	conf, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	p.log = newLogger(os.Stderr, conf.LoggerLevel, conf.LogFormat)

	pgconf, err := pgxpool.ParseConfig(conf.DatabaseURL.Reveal())
	if err != nil {
		return fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	pgconf.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   pgxLogger{log: p.log},
		LogLevel: tracelog.LogLevelError,
	}

	db, err := pgxpool.NewWithConfig(context.Background(), pgconf)
	if err != nil {
		return fmt.Errorf("pgx pool connection error: %w", err)
	}

	defer db.Close()

	provider, closeProvider, err := p.provider(conf)
	if err != nil {
		return err
	}
	defer closeProvider()

	service := geostore.NewService(
		geostore.NewPostgres(db, p.log),
		geostore.NewDNSResolver(nil),
		provider,
		p.log,
	)
	s := api.NewServer(conf.Address(), service, p.log)
	ec := make(chan error, 1)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		ec <- s.Run(context.Background())
	}()

	// Waits for an internal error that shutdowns the server.
	// Otherwise, wait for a SIGINT or SIGTERM and tries to shutdown the server gracefully.
	// After a shutdown signal, HTTP requests taking longer than the specified grace period are forcibly closed.
	select {
	case err = <-ec:
	case <-ctx.Done():
		fmt.Println()
		haltCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		s.Shutdown(haltCtx)
		stop()
		err = <-ec
	}
	if err != nil {
		return err
	}
	return nil
}

// provider of geolocation data, as configured.
func (p *program) provider(conf config.Config) (geostore.Provider, func(), error) {
	switch conf.Provider {
	case config.ProviderMaxMind:
		r, err := maxmind.Open(conf.MaxMindDB)
		if err != nil {
			return nil, nil, err
		}
		p.log.Info("using MaxMind database", slog.String("path", conf.MaxMindDB))
		return r, func() { r.Close() }, nil
	default:
		p.log.Info("using ipstack API",
			slog.String("base_url", conf.BaseURL),
			slog.Any("access_key", conf.IPStackAPIKey),
			slog.Duration("timeout", conf.ProviderTimeout),
		)
		return ipstack.New(conf.BaseURL, conf.IPStackAPIKey.Reveal(), conf.ProviderTimeout, p.log), func() {}, nil
	}
}

// newLogger for the application.
// An unknown level is replaced by INFO.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	lvl, ok := config.ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	log := slog.New(handler)
	if !ok {
		log.Warn("invalid LOGGER_LEVEL, defaulting to INFO", slog.String("level", level))
	}
	return log
}

// pgxLogger prints pgx logs to the standard logger.
// os.Stderr by default.
type pgxLogger struct {
	log *slog.Logger
}

func (l pgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data)+1)
	attrs = append(attrs, slog.String("pgx_level", level.String()))
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}
	l.log.LogAttrs(ctx, slogLevel(level), msg, attrs...)
}

// slogLevel translates pgx log level to slog log level.
func slogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return slog.LevelDebug
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	default:
		// If tracelog.LogLevelError, tracelog.LogLevelNone, or any other unknown level, use slog.LevelError.
		return slog.LevelError
	}
}
