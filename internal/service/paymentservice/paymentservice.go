package paymentservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/oracle"
)

type PaymentRepo interface {
	CreatePending(ctx context.Context, paymentID string, payment domain.Payment) error
	Get(ctx context.Context, paymentID string) (*domain.Payment, error)
	SetStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, invoiceID int64) error
	ListPending(ctx context.Context) (map[string]domain.Payment, error)
}

type Granter interface {
	Grant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error)
}

type Oracle interface {
	CreateInvoice(ctx context.Context, amount float64, asset, description, payload string) (*oracle.Invoice, error)
	GetInvoiceStatus(ctx context.Context, invoiceID int64) (string, error)
}

type Service struct {
	payments PaymentRepo
	rentals  Granter
	oracle   Oracle
	asset    string
}

func New(payments PaymentRepo, rentals Granter, orc Oracle, asset string) *Service {
	return &Service{
		payments: payments,
		rentals:  rentals,
		oracle:   orc,
		asset:    asset,
	}
}

var (
	ErrInvoiceUnpaid = errors.New("invoice is not paid yet")
	ErrAlreadyPaid   = errors.New("payment already confirmed")
)

// InvoiceResult is what the front end needs to send the user off to pay.
type InvoiceResult struct {
	PaymentID string
	PayURL    string
	Price     float64
}

// CreateInvoice opens an invoice with the oracle and records the payment as
// pending. The payment id is generated here and doubles as the opaque
// invoice payload.
func (s *Service) CreateInvoice(ctx context.Context, userID int, number string, months int, price float64, promoCode string, discountPercent int) (*InvoiceResult, error) {
	paymentID := uuid.NewString()
	description := fmt.Sprintf("Rental of %s for %d months", number, months)
	if promoCode != "" {
		description += fmt.Sprintf(" (promo %s)", promoCode)
	}

	invoice, err := s.oracle.CreateInvoice(ctx, price, s.asset, description, paymentID)
	if err != nil {
		zap.L().Error("can't create invoice", zap.Error(err))
		return nil, err
	}

	payment := domain.Payment{
		UserID:          userID,
		Number:          number,
		Months:          months,
		Price:           price,
		InvoiceID:       invoice.InvoiceID,
		Status:          domain.PaymentPending,
		PromoCode:       promoCode,
		DiscountPercent: discountPercent,
	}
	if err := s.payments.CreatePending(ctx, paymentID, payment); err != nil {
		return nil, err
	}

	zap.L().Info("invoice created",
		zap.String("paymentID", paymentID), zap.Int64("invoiceID", invoice.InvoiceID),
		zap.Int("userID", userID), zap.Float64("price", price))
	return &InvoiceResult{
		PaymentID: paymentID,
		PayURL:    invoice.PayURL,
		Price:     price,
	}, nil
}

// Confirm runs the settlement workflow for the calling user's own payment.
// A payment opened by someone else is indistinguishable from a missing one.
func (s *Service) Confirm(ctx context.Context, userID int, paymentID string) (*domain.Rental, error) {
	payment, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}
	return s.settle(ctx, paymentID, payment)
}

// Settle is the unauthorized settlement path used by the background poller.
func (s *Service) Settle(ctx context.Context, paymentID string) (*domain.Rental, error) {
	payment, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}
	return s.settle(ctx, paymentID, payment)
}

// settle asks the oracle about the invoice and grants the rental before
// marking the payment paid. A grant rejection leaves the payment pending:
// the number went busy in the meantime, and that is a distinct failure, not
// a settled payment.
func (s *Service) settle(ctx context.Context, paymentID string, payment *domain.Payment) (*domain.Rental, error) {
	if payment.Status == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if payment.InvoiceID == 0 {
		return nil, domain.ErrPaymentNotFound
	}

	status, err := s.oracle.GetInvoiceStatus(ctx, payment.InvoiceID)
	if err != nil {
		zap.L().Error("can't query invoice status", zap.Error(err))
		return nil, err
	}
	if status != oracle.StatusPaid {
		return nil, ErrInvoiceUnpaid
	}

	rental, err := s.rentals.Grant(ctx, payment.UserID, payment.Number, payment.Months)
	if err != nil {
		if errors.Is(err, domain.ErrNumberBusy) {
			zap.L().Warn("invoice paid but number went busy",
				zap.String("paymentID", paymentID), zap.String("number", payment.Number))
		}
		return nil, err
	}

	if err := s.payments.SetStatus(ctx, paymentID, domain.PaymentPaid, 0); err != nil {
		return nil, err
	}
	zap.L().Info("payment confirmed",
		zap.String("paymentID", paymentID), zap.Int("userID", payment.UserID), zap.String("number", payment.Number))
	return rental, nil
}

// ListPending exposes unsettled payments for the background poller.
func (s *Service) ListPending(ctx context.Context) (map[string]domain.Payment, error) {
	return s.payments.ListPending(ctx)
}
