package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vtc/internal/model"
	"vtc/internal/pricing"
	"vtc/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateInvoiceRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Note      string `json:"note"`
}

// --- Interface ---

type InvoiceService interface {
	CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (*model.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*model.Invoice, error)
	ListInvoices(ctx context.Context, clientID, status string, page, limit int) ([]model.Invoice, int64, error)
	MarkPaid(ctx context.Context, userID, id string) (*model.Invoice, error)
}

type invoiceService struct {
	db            *gorm.DB
	invoices      repository.InvoiceRepository
	bookings      repository.BookingRepository
	vehicles      repository.VehicleRepository
	txm           repository.TransactionManager
	notifications NotificationService
}

func NewInvoiceService(db *gorm.DB, invoices repository.InvoiceRepository, bookings repository.BookingRepository, vehicles repository.VehicleRepository, txm repository.TransactionManager, notifications NotificationService) InvoiceService {
	return &invoiceService{db: db, invoices: invoices, bookings: bookings, vehicles: vehicles, txm: txm, notifications: notifications}
}

// --- Implementation ---

// CreateInvoice issues the billing document for a completed booking. The
// booking's final cost is VAT-inclusive; the invoice splits it back into
// subtotal and VAT using the estimate type's configured rate.
func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, req CreateInvoiceRequest) (*model.Invoice, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id: %w", err)
	}

	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking.Status != model.BookingCompleted {
		return nil, fmt.Errorf("only completed bookings can be invoiced")
	}

	if _, err := s.invoices.FindByBooking(ctx, bookingID); err == nil {
		return nil, fmt.Errorf("booking already has an invoice")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing invoices: %w", err)
	}

	vatRate := pricing.DefaultVATRate
	if rate, err := s.vehicles.FindVATRate(ctx, booking.EstimateType); err == nil {
		vatRate = rate.Rate
	}

	// total = subtotal * (1 + rate), so subtotal = total / (1 + rate).
	total := booking.FinalCost
	subtotal := total.Div(decimal.NewFromInt(1).Add(vatRate)).Round(2)
	vatAmount := total.Sub(subtotal)

	now := time.Now()
	invoice := model.Invoice{
		BookingID: booking.ID,
		ClientID:  booking.ClientID,
		Subtotal:  subtotal,
		VATAmount: vatAmount,
		Total:     total,
		Status:    model.InvoiceIssued,
		IssuedAt:  &now,
		Note:      req.Note,
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		no, err := s.invoices.NextInvoiceNo(txCtx)
		if err != nil {
			return err
		}
		invoice.InvoiceNo = no
		return s.invoices.Create(txCtx, &invoice)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionCreateInvoice, invoice.ID.String(), invoice.InvoiceNo, req)
	s.notifications.Notify(ctx, booking.ClientID, model.NotifyInvoiceIssued,
		"Invoice "+invoice.InvoiceNo,
		fmt.Sprintf("An invoice of %s has been issued for your trip.", total.StringFixed(2)),
		map[string]string{"invoice_id": invoice.ID.String(), "invoice_no": invoice.InvoiceNo})

	return &invoice, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice id: %w", err)
	}
	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice not found")
		}
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, clientID, status string, page, limit int) ([]model.Invoice, int64, error) {
	var filter *uuid.UUID
	if clientID != "" {
		id, err := uuid.Parse(clientID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid client id: %w", err)
		}
		filter = &id
	}
	return s.invoices.List(ctx, filter, status, page, limit)
}

func (s *invoiceService) MarkPaid(ctx context.Context, userID, id string) (*model.Invoice, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice id: %w", err)
	}
	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invoice not found")
		}
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	if invoice.Status != model.InvoiceIssued {
		return nil, fmt.Errorf("only issued invoices can be marked paid")
	}

	invoice.Status = model.InvoicePaid
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	writeAudit(ctx, s.db, userID, model.ActionPayInvoice, invoice.ID.String(), invoice.InvoiceNo, nil)
	return invoice, nil
}
