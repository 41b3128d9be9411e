package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/justinas/alice"

	"github.com/mmynk/vereinskasse/internal/cart"
	"github.com/mmynk/vereinskasse/internal/catalog"
	"github.com/mmynk/vereinskasse/internal/export"
	"github.com/mmynk/vereinskasse/internal/ledger"
	"github.com/mmynk/vereinskasse/internal/metrics"
	"github.com/mmynk/vereinskasse/internal/middleware"
	"github.com/mmynk/vereinskasse/internal/printer"
	"github.com/mmynk/vereinskasse/internal/storage/sqlite"
)

// recordingPrinter stands in for a thermal printer.
type recordingPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *recordingPrinter) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return true }

func (p *recordingPrinter) Jobs() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jobs
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type testEnv struct {
	URL      string
	Catalog  *CatalogServiceClient
	Register *RegisterServiceClient
	Sales    *SalesServiceClient
	Ledger   *ledger.Ledger
	Printer  *recordingPrinter
	Metrics  *metrics.Metrics
	Clock    *testClock
}

type envOption func(*envConfig)

type envConfig struct {
	printer printer.Printer
}

func withNullPrinter() envOption {
	return func(c *envConfig) { c.printer = printer.NewNullPrinter() }
}

// setupTestServer wires the full HTTP stack on a temp database.
func setupTestServer(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rec := &recordingPrinter{}
	cfg := envConfig{printer: rec}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := t.Context()
	clock := &testClock{t: time.Date(2026, 10, 17, 14, 5, 0, 0, time.UTC)}
	m := metrics.New()
	products := catalog.New(ctx, m.InstrumentStore(store))
	sales := ledger.New(ctx, m.InstrumentStore(store), ledger.WithClock(clock.Now), ledger.WithLocation(time.UTC))
	register := cart.New()
	settings := PrintSettings{ShopName: "VEREINSKASSE", Width: printer.Width80mm}

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(nil))
	services := map[string]http.Handler{}
	path, h := NewCatalogServiceHandler(NewCatalogService(products), interceptors)
	services[path] = h
	path, h = NewRegisterServiceHandler(NewRegisterService(products, register, sales, cfg.printer, settings).WithSink(m.Sink(sales)), interceptors)
	services[path] = h
	path, h = NewSalesServiceHandler(NewSalesService(sales, cfg.printer, settings), interceptors)
	services[path] = h

	router := NewRouter(RouterConfig{
		Pages:    NewPages(sales, register, settings, export.DefaultOptions()),
		Services: services,
		Metrics:  m.Handler(),
	})
	server := httptest.NewServer(alice.New(middleware.Recover, middleware.CORS).Then(router))
	t.Cleanup(server.Close)

	return &testEnv{
		URL:      server.URL,
		Catalog:  NewCatalogServiceClient(server.Client(), server.URL),
		Register: NewRegisterServiceClient(server.Client(), server.URL),
		Sales:    NewSalesServiceClient(server.Client(), server.URL),
		Ledger:   sales,
		Printer:  rec,
		Metrics:  m,
		Clock:    clock,
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v", want, connectErr.Code())
	}
}
