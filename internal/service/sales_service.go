package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/vereinskasse/internal/ledger"
	"github.com/mmynk/vereinskasse/internal/models"
	"github.com/mmynk/vereinskasse/internal/printer"
)

// SalesService implements vereinskasse.v1.SalesService on top of the ledger.
type SalesService struct {
	ledger   *ledger.Ledger
	printer  printer.Printer
	settings PrintSettings
}

func NewSalesService(l *ledger.Ledger, p printer.Printer, settings PrintSettings) *SalesService {
	return &SalesService{ledger: l, printer: p, settings: settings}
}

// ListDailySales returns all receipts grouped by day, most recent day first.
func (s *SalesService) ListDailySales(ctx context.Context, req *connect.Request[ListDailySalesRequest]) (*connect.Response[ListDailySalesResponse], error) {
	days := s.ledger.DailySales()
	if days == nil {
		days = []models.DailySales{}
	}
	return connect.NewResponse(&ListDailySalesResponse{Days: days}), nil
}

func (s *SalesService) GetTodaysSales(ctx context.Context, req *connect.Request[GetTodaysSalesRequest]) (*connect.Response[GetTodaysSalesResponse], error) {
	return connect.NewResponse(&GetTodaysSalesResponse{Day: s.ledger.TodaysSales()}), nil
}

func (s *SalesService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return connect.NewResponse(&GetSummaryResponse{Summary: s.ledger.Summary()}), nil
}

// PrintReceipt reprints a stored receipt with its number within its day.
func (s *SalesService) PrintReceipt(ctx context.Context, req *connect.Request[PrintReceiptRequest]) (*connect.Response[PrintResponse], error) {
	receipt, number, ok := s.ledger.Find(req.Msg.ReceiptID)
	if !ok {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("receipt %q not found", req.Msg.ReceiptID))
	}

	view := printer.FromCompleted(s.settings.ShopName, receipt, number, s.ledger.Location())
	return send(s.printer, printer.FormatESCPOS(view, s.settings.Width))
}

// ClearAllReceipts irreversibly empties the ledger. The caller must confirm.
func (s *SalesService) ClearAllReceipts(ctx context.Context, req *connect.Request[ClearAllReceiptsRequest]) (*connect.Response[ClearAllReceiptsResponse], error) {
	if !req.Msg.Confirm {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("clearing all receipts must be confirmed"))
	}
	cleared := s.ledger.ClearAll(ctx)
	return connect.NewResponse(&ClearAllReceiptsResponse{Cleared: cleared}), nil
}
