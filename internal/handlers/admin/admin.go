// Package admin is the owner-only command surface: force-assigning numbers
// and managing promo codes. The owner check itself lives in the identity
// middleware; handlers here assume an authorized caller.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/dto"
	"github.com/shadownumbers/numrent/internal/service/promoservice"
	"github.com/shadownumbers/numrent/internal/service/rentalservice"
	"github.com/shadownumbers/numrent/pkg/identity"
	"github.com/shadownumbers/numrent/pkg/utils"
)

type RentalService interface {
	ForceGrant(ctx context.Context, userID int, number string, months int) (*domain.Rental, error)
}

type PromoService interface {
	Add(ctx context.Context, code string, percent int, createdBy int) (*domain.PromoCode, error)
	Deactivate(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]domain.PromoCode, error)
}

type AdminHandler struct {
	rentalService RentalService
	promoService  PromoService
}

func New(rentalService RentalService, promoService PromoService) *AdminHandler {
	return &AdminHandler{
		rentalService: rentalService,
		promoService:  promoService,
	}
}

// ForceRental assigns a number to a user, evicting any current holder.
func (h *AdminHandler) ForceRental(w http.ResponseWriter, r *http.Request) {
	var req dto.ForceRentalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := h.rentalService.ForceGrant(r.Context(), req.UserID, req.Number, req.Months)
	if err != nil {
		switch {
		case errors.Is(err, rentalservice.ErrInvalidMonths):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrNumberNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Number not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRentalResponseDTO(*rental))
}

func (h *AdminHandler) CreatePromo(w http.ResponseWriter, r *http.Request) {
	var req dto.PromoCreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	promo, err := h.promoService.Add(r.Context(), req.Code, req.Percent, identity.FromContext(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, promoservice.ErrInvalidPercent), errors.Is(err, promoservice.ErrEmptyCode):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrPromoExists):
			utils.RespondWithError(w, http.StatusConflict, "Promo code already exists")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewPromoResponseDTO(*promo))
}

// ListPromos includes deactivated codes, unlike the user-facing lookup.
func (h *AdminHandler) ListPromos(w http.ResponseWriter, r *http.Request) {
	promos, err := h.promoService.List(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.PromoResponseDTO, 0, len(promos))
	for _, promo := range promos {
		response = append(response, dto.NewPromoResponseDTO(promo))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *AdminHandler) DeactivatePromo(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	found, err := h.promoService.Deactivate(r.Context(), code)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Promo code not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusNoContent, nil)
}
