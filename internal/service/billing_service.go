package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"prodexa/internal/archive"
	"prodexa/internal/billing"
	"prodexa/internal/export"
	"prodexa/internal/metrics"
	"prodexa/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// InvoiceSettings controls where and how invoices are produced.
type InvoiceSettings struct {
	Shop export.Shop
	Dir  string
}

// billingService implements BillingService. Bills live in memory only and are
// guarded by a single mutex.
type billingService struct {
	catalog  Catalog
	archiver archive.Archiver
	settings InvoiceSettings
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time

	mu    sync.Mutex
	bills map[uuid.UUID]*billing.Bill
}

// NewBillingService creates a new billing service.
func NewBillingService(
	cat Catalog,
	archiver archive.Archiver,
	settings InvoiceSettings,
	m *metrics.Metrics,
	logger zerolog.Logger,
) BillingService {
	return &billingService{
		catalog:  cat,
		archiver: archiver,
		settings: settings,
		metrics:  m,
		logger:   logger.With().Str("service", "billing").Logger(),
		now:      time.Now,
		bills:    make(map[uuid.UUID]*billing.Bill),
	}
}

// Open starts an empty bill for a customer.
func (s *billingService) Open(ctx context.Context, req model.OpenBillRequest) (*billing.View, error) {
	bill := billing.NewBill(strings.TrimSpace(req.CustomerName), strings.TrimSpace(req.CustomerContact))

	s.mu.Lock()
	s.bills[bill.ID] = bill
	open := len(s.bills)
	view := bill.View()
	s.mu.Unlock()

	s.metrics.SetOpenBills(open)
	s.logger.Info().Str("bill_id", bill.ID.String()).Str("customer", bill.CustomerName).Msg("bill opened")
	return &view, nil
}

// Get returns the bill with its current totals.
func (s *billingService) Get(ctx context.Context, id uuid.UUID) (*billing.View, error) {
	return s.withBill(id, func(b *billing.Bill) error { return nil })
}

// AddItem appends a product to the bill at the current catalogue price.
func (s *billingService) AddItem(ctx context.Context, id uuid.UUID, req model.AddItemRequest) (*billing.View, error) {
	snap := s.catalog.Current()

	view, err := s.withBill(id, func(b *billing.Bill) error {
		item, err := b.AddLineItem(snap, strings.TrimSpace(req.ProductName), string(req.Quantity))
		if err != nil {
			return err
		}
		s.logger.Debug().
			Str("bill_id", id.String()).
			Str("product", item.ProductName).
			Int("quantity", item.Quantity).
			Msg("line item added")
		return nil
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("bill_id", id.String()).Str("product", req.ProductName).Msg("failed to add line item")
		return nil, err
	}

	s.metrics.LineItemAdded()
	return view, nil
}

// SetRates sets the GST and discount percentages.
func (s *billingService) SetRates(ctx context.Context, id uuid.UUID, req model.RatesRequest) (*billing.View, error) {
	gst, err := billing.ParsePercent(string(req.GSTPercent))
	if err != nil {
		return nil, fmt.Errorf("invalid GST: %w", err)
	}
	discount, err := billing.ParsePercent(string(req.DiscountPercent))
	if err != nil {
		return nil, fmt.Errorf("invalid discount: %w", err)
	}

	return s.withBill(id, func(b *billing.Bill) error {
		b.SetRates(gst, discount)
		return nil
	})
}

// Totals returns the rounded bill totals.
func (s *billingService) Totals(ctx context.Context, id uuid.UUID) (*model.Totals, error) {
	view, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &view.Totals, nil
}

// Clear removes every item from the bill.
func (s *billingService) Clear(ctx context.Context, id uuid.UUID) (*billing.View, error) {
	return s.withBill(id, func(b *billing.Bill) error {
		b.Clear()
		return nil
	})
}

// Finalize writes the PDF invoice, archives it and returns its details.
func (s *billingService) Finalize(ctx context.Context, id uuid.UUID) (*model.InvoiceResult, error) {
	var (
		inv      export.Invoice
		previous billing.State
	)
	_, err := s.withBill(id, func(b *billing.Bill) error {
		previous = b.State
		if _, err := b.Finalize(); err != nil {
			return err
		}
		inv = export.InvoiceFromBill(b, s.settings.Shop, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	path, err := export.WriteInvoiceFile(s.settings.Dir, inv)
	if err != nil {
		s.metrics.InvoiceGenerated("error")
		s.logger.Error().Err(err).Str("bill_id", id.String()).Msg("failed to write invoice")
		s.restoreState(id, previous)
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}
	s.metrics.InvoiceGenerated("ok")

	location := path
	if s.archiver != nil {
		location, err = s.archiver.Archive(ctx, path)
		if err != nil {
			s.logger.Error().Err(err).Str("file", path).Msg("failed to archive invoice")
			s.restoreState(id, previous)
			return nil, fmt.Errorf("%w: %v", model.IO("failed to archive invoice"), err)
		}
	}

	result := &model.InvoiceResult{
		BillID:   id.String(),
		Number:   inv.Number,
		Path:     path,
		Location: location,
		Totals:   inv.Totals(),
	}
	if link, err := export.ShareLink(inv); err == nil {
		result.ShareLink = link
	}

	s.logger.Info().
		Str("bill_id", id.String()).
		Str("invoice", inv.Number).
		Str("location", location).
		Str("final_amount", model.Money(result.Totals.FinalAmount)).
		Msg("invoice generated")
	return result, nil
}

// Share returns a WhatsApp link with the bill summary.
func (s *billingService) Share(ctx context.Context, id uuid.UUID) (string, error) {
	var inv export.Invoice
	if _, err := s.withBill(id, func(b *billing.Bill) error {
		inv = export.InvoiceFromBill(b, s.settings.Shop, s.now())
		return nil
	}); err != nil {
		return "", err
	}

	return export.ShareLink(inv)
}

// Discard drops the bill.
func (s *billingService) Discard(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.bills[id]
	delete(s.bills, id)
	open := len(s.bills)
	s.mu.Unlock()

	if !ok {
		return billNotFound(id)
	}
	s.metrics.SetOpenBills(open)
	s.logger.Info().Str("bill_id", id.String()).Msg("bill discarded")
	return nil
}

// withBill runs fn on the bill under the registry lock and returns the
// resulting view. fn must leave the bill unchanged when it fails.
// restoreState undoes Finalize after the invoice could not be produced.
func (s *billingService) restoreState(id uuid.UUID, state billing.State) {
	_, _ = s.withBill(id, func(b *billing.Bill) error {
		b.State = state
		return nil
	})
}

func (s *billingService) withBill(id uuid.UUID, fn func(b *billing.Bill) error) (*billing.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, ok := s.bills[id]
	if !ok {
		return nil, billNotFound(id)
	}
	if err := fn(bill); err != nil {
		return nil, err
	}

	view := bill.View()
	return &view, nil
}

func billNotFound(id uuid.UUID) error {
	return model.NotFound("bill %s not found", id)
}
