package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/iliyamo/cinema-showtimes/internal/catalog"
	"github.com/iliyamo/cinema-showtimes/internal/config"
	"github.com/iliyamo/cinema-showtimes/internal/logger"
	"github.com/iliyamo/cinema-showtimes/internal/queue"
	"github.com/iliyamo/cinema-showtimes/internal/router"
	"github.com/iliyamo/cinema-showtimes/internal/service"
)

type ServeCmd struct {
	Port string `help:"Listen port; overrides APP_PORT."`
}

// Run starts the HTTP API.  A catalog that fails to load is logged and the
// server starts with no catalog; an admin reload can install one later.
func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Port != "" {
		cfg.App.Port = c.Port
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := openSource(cfg, ctx.Now)
	if err != nil {
		return err
	}
	defer closeSrc()

	store := catalog.NewStore(src)
	loadCtx, cancel := context.WithTimeout(sigCtx, 10*time.Second)
	if cat, err := store.Reload(loadCtx); err != nil {
		logger.Warn("catalog: initial load failed, serving without a catalog", "err", err)
	} else {
		logger.Info("catalog loaded", "source", cfg.Catalog.Source, "movies", cat.Len())
	}
	cancel()

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	var pub service.BookingPublisher = service.NopPublisher{}
	if cfg.Broker.Enabled {
		pub = service.AMQPPublisher{URL: cfg.Broker.URL, Queue: cfg.Broker.Queue}
		startConsumer(sigCtx, cfg)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				logger.Error("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "err", v.Error)
				return nil
			}
			logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	router.RegisterRoutes(e, router.Deps{Cfg: cfg, Store: store, Redis: rdb, Publisher: pub})

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}()

	addr := ":" + cfg.App.Port
	logger.Info("listening", "addr", addr, "env", cfg.App.Env)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// startConsumer runs the confirmation consumer until ctx ends, writing its
// notices to a rotated booking.log next to the service log.
func startConsumer(ctx context.Context, cfg *config.Config) {
	dir := cfg.App.LogDir
	if dir == "" {
		dir = "logs"
	}
	out := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "booking.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	}
	cons := &queue.Consumer{URL: cfg.Broker.URL, Queue: cfg.Broker.Queue, Out: out}
	go func() {
		defer out.Close()
		if err := cons.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("booking consumer stopped", "err", err)
		}
	}()
}
