package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/justinas/alice"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/vereinskasse/internal/cart"
	"github.com/mmynk/vereinskasse/internal/catalog"
	"github.com/mmynk/vereinskasse/internal/config"
	"github.com/mmynk/vereinskasse/internal/export"
	"github.com/mmynk/vereinskasse/internal/ledger"
	"github.com/mmynk/vereinskasse/internal/metrics"
	"github.com/mmynk/vereinskasse/internal/middleware"
	"github.com/mmynk/vereinskasse/internal/printer"
	"github.com/mmynk/vereinskasse/internal/service"
	"github.com/mmynk/vereinskasse/internal/storage/sqlite"
	"github.com/mmynk/vereinskasse/pkg/logging"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.App.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	sqliteStore, err := sqlite.New(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer sqliteStore.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.DBPath)

	m := metrics.New()
	store := m.InstrumentStore(sqliteStore)

	products := catalog.New(ctx, store)
	sales := ledger.New(ctx, store, ledger.WithLocation(loc))
	register := cart.New()

	p, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		return err
	}
	defer p.Close()
	slog.Info("Printer configured", "type", cfg.Printer.Type, "connected", p.IsConnected())

	settings := service.PrintSettings{ShopName: cfg.Shop.Name, Width: cfg.Printer.Width}
	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(slog.Default().With("component", "rpc")))

	services := map[string]http.Handler{}
	path, h := service.NewCatalogServiceHandler(service.NewCatalogService(products), interceptors)
	services[path] = h
	path, h = service.NewRegisterServiceHandler(
		service.NewRegisterService(products, register, sales, p, settings).WithSink(m.Sink(sales)),
		interceptors,
	)
	services[path] = h
	path, h = service.NewSalesServiceHandler(service.NewSalesService(sales, p, settings), interceptors)
	services[path] = h

	staticPath := cfg.Server.StaticPath
	if staticPath != "" {
		if staticPath, err = filepath.Abs(staticPath); err != nil {
			return err
		}
		slog.Info("Serving static files", "path", staticPath)
	}

	router := service.NewRouter(service.RouterConfig{
		Pages:      service.NewPages(sales, register, settings, export.Options{Locale: cfg.Shop.Locale}),
		Services:   services,
		Metrics:    m.Handler(),
		StaticPath: staticPath,
	})

	chain := alice.New(middleware.Recover, middleware.RequestLogger, middleware.CORS)

	// h2c serves HTTP/2 without TLS for Connect clients.
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(chain.Then(router), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Vereinskasse starting", "address", cfg.Server.Addr, "url", "http://"+cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
