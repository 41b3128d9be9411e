package service

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/mmynk/vereinskasse/internal/cart"
	"github.com/mmynk/vereinskasse/internal/export"
	"github.com/mmynk/vereinskasse/internal/ledger"
	"github.com/mmynk/vereinskasse/internal/printer"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Pages serves the downloads and print documents that are not RPCs.
type Pages struct {
	ledger   *ledger.Ledger
	cart     *cart.Cart
	settings PrintSettings
	export   export.Options
}

func NewPages(l *ledger.Ledger, c *cart.Cart, settings PrintSettings, opts export.Options) *Pages {
	opts.Location = l.Location()
	return &Pages{ledger: l, cart: c, settings: settings, export: opts}
}

// ExportCSV serves the whole sales history as a CSV attachment.
func (p *Pages) ExportCSV(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, p.ledger.DailySales(), p.export); err != nil {
		slog.Error("CSV export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	p.attach(w, "csv", "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX serves the whole sales history as an Excel attachment.
func (p *Pages) ExportXLSX(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, p.ledger.DailySales(), p.export); err != nil {
		slog.Error("XLSX export failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	p.attach(w, "xlsx", xlsxContentType, buf.Bytes())
}

func (p *Pages) attach(w http.ResponseWriter, ext, contentType string, data []byte) {
	name := export.Filename(p.ledger.Now(), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := w.Write(data); err != nil {
		slog.Warn("Export download aborted", "file", name, "error", err)
		return
	}
	slog.Info("Sales exported", "file", name, "bytes", len(data))
}

// PrintReceipt renders a stored receipt as a print page.
func (p *Pages) PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	receipt, number, ok := p.ledger.Find(ps.ByName("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	p.render(w, printer.FromCompleted(p.settings.ShopName, receipt, number, p.ledger.Location()))
}

// PrintCart renders the open cart as a print page.
func (p *Pages) PrintCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state := p.cart.State()
	if len(state.Items) == 0 {
		http.Error(w, "cart is empty", http.StatusConflict)
		return
	}
	p.render(w, printer.FromCart(p.settings.ShopName, state.Items, state.Total, p.ledger.Now()))
}

func (p *Pages) render(w http.ResponseWriter, receipt printer.Receipt) {
	var buf bytes.Buffer
	if err := printer.RenderHTML(&buf, receipt); err != nil {
		slog.Error("Receipt rendering failed", "error", err)
		http.Error(w, "rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func healthz(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// RouterConfig lists everything NewRouter mounts. Metrics and StaticPath are optional.
type RouterConfig struct {
	Pages      *Pages
	Services   map[string]http.Handler
	Metrics    http.Handler
	StaticPath string
}

// NewRouter mounts the Connect services under their path prefixes and the
// plain HTTP routes next to them. Unknown paths fall through to the static
// directory when one is configured.
func NewRouter(cfg RouterConfig) *httprouter.Router {
	router := httprouter.New()

	for path, h := range cfg.Services {
		router.Handler(http.MethodPost, path+"*procedure", h)
	}

	router.GET("/export/sales.csv", cfg.Pages.ExportCSV)
	router.GET("/export/sales.xlsx", cfg.Pages.ExportXLSX)
	router.GET("/receipts/:id/print", cfg.Pages.PrintReceipt)
	router.GET("/cart/print", cfg.Pages.PrintCart)
	router.GET("/healthz", healthz)

	if cfg.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.StaticPath != "" {
		router.NotFound = http.FileServer(http.Dir(cfg.StaticPath))
	}
	return router
}
