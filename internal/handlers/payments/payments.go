package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/dto"
	"github.com/shadownumbers/numrent/internal/oracle"
	"github.com/shadownumbers/numrent/internal/service/inventoryservice"
	"github.com/shadownumbers/numrent/internal/service/paymentservice"
	"github.com/shadownumbers/numrent/internal/service/promoservice"
	"github.com/shadownumbers/numrent/internal/service/sessionservice"
	"github.com/shadownumbers/numrent/pkg/identity"
	"github.com/shadownumbers/numrent/pkg/utils"
)

type InventoryService interface {
	Quote(ctx context.Context, number string, months int) (float64, error)
}

type SessionService interface {
	Put(userID int, selection sessionservice.Selection)
	Get(userID int) (*sessionservice.Selection, error)
	Clear(userID int)
}

type PromoService interface {
	Get(ctx context.Context, code string) (*domain.PromoCode, error)
}

type PaymentService interface {
	CreateInvoice(ctx context.Context, userID int, number string, months int, price float64, promoCode string, discountPercent int) (*paymentservice.InvoiceResult, error)
	Confirm(ctx context.Context, userID int, paymentID string) (*domain.Rental, error)
}

type PaymentHandler struct {
	inventoryService InventoryService
	sessionService   SessionService
	promoService     PromoService
	paymentService   PaymentService
}

func New(inventoryService InventoryService, sessionService SessionService, promoService PromoService, paymentService PaymentService) *PaymentHandler {
	return &PaymentHandler{
		inventoryService: inventoryService,
		sessionService:   sessionService,
		promoService:     promoService,
		paymentService:   paymentService,
	}
}

// CreateSelection quotes a number for a duration and parks the selection
// until the caller either opens an invoice or abandons the flow.
func (h *PaymentHandler) CreateSelection(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromContext(r.Context())

	var req dto.SelectionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := h.inventoryService.Quote(r.Context(), req.Number, req.Months)
	if err != nil {
		switch {
		case errors.Is(err, inventoryservice.ErrInvalidDuration):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrNumberNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Number not found")
		case errors.Is(err, domain.ErrNumberBusy):
			utils.RespondWithError(w, http.StatusConflict, "Number is busy")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.sessionService.Put(userID, sessionservice.Selection{
		Number: req.Number,
		Months: req.Months,
		Price:  price,
	})
	utils.RespondWithJSON(w, http.StatusOK, dto.SelectionResponseDTO{
		Number: req.Number,
		Months: req.Months,
		Price:  price,
	})
}

// DeleteSelection abandons the pending selection, if any.
func (h *PaymentHandler) DeleteSelection(w http.ResponseWriter, r *http.Request) {
	h.sessionService.Clear(identity.FromContext(r.Context()))
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}

// CreateInvoice consumes the pending selection, applies the promo code if
// one was entered, and opens an invoice with the payment oracle.
func (h *PaymentHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromContext(r.Context())

	var req dto.InvoiceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	selection, err := h.sessionService.Get(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "No pending selection, choose a number first")
		return
	}

	price := selection.Price
	discountPercent := 0
	promoCode := ""
	if req.PromoCode != "" {
		promo, err := h.promoService.Get(r.Context(), req.PromoCode)
		if err != nil {
			if errors.Is(err, domain.ErrPromoNotFound) {
				utils.RespondWithError(w, http.StatusNotFound, "Promo code not found or inactive")
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		promoCode = promo.Code
		discountPercent = promo.Percent
		price = promoservice.ApplyDiscount(price, promo.Percent)
	}

	result, err := h.paymentService.CreateInvoice(r.Context(), userID, selection.Number, selection.Months, price, promoCode, discountPercent)
	if err != nil {
		if errors.Is(err, oracle.ErrUnavailable) {
			utils.RespondWithError(w, http.StatusBadGateway, "Payment service unavailable, try again later")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.sessionService.Clear(userID)
	utils.RespondWithJSON(w, http.StatusOK, dto.InvoiceResponseDTO{
		PaymentID:       result.PaymentID,
		PayURL:          result.PayURL,
		Price:           result.Price,
		PromoCode:       promoCode,
		DiscountPercent: discountPercent,
	})
}

// Confirm checks the invoice with the oracle and grants the rental. A paid
// invoice whose number went busy in the meantime is a conflict, not a
// success.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromContext(r.Context())

	var req dto.ConfirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := h.paymentService.Confirm(r.Context(), userID, req.PaymentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Payment not found")
		case errors.Is(err, paymentservice.ErrInvoiceUnpaid):
			utils.RespondWithError(w, http.StatusPaymentRequired, "Invoice is not paid yet")
		case errors.Is(err, paymentservice.ErrAlreadyPaid):
			utils.RespondWithError(w, http.StatusConflict, "Payment already confirmed")
		case errors.Is(err, domain.ErrNumberBusy):
			utils.RespondWithError(w, http.StatusConflict, "Number was taken while the invoice was open")
		case errors.Is(err, oracle.ErrUnavailable):
			utils.RespondWithError(w, http.StatusBadGateway, "Payment service unavailable, try again later")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRentalResponseDTO(*rental))
}
