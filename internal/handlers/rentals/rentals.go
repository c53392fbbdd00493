package rentals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/dto"
	"github.com/shadownumbers/numrent/internal/service/rentalservice"
	"github.com/shadownumbers/numrent/pkg/identity"
	"github.com/shadownumbers/numrent/pkg/utils"
)

type Service interface {
	List(ctx context.Context, userID int) ([]domain.Rental, error)
	Extend(ctx context.Context, userID int, number string, months int) (*domain.Rental, error)
}

type RentalHandler struct {
	rentalService Service
}

func New(rentalService Service) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
	}
}

// GetRentals returns the caller's active rentals in grant order.
func (h *RentalHandler) GetRentals(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromContext(r.Context())

	rentals, err := h.rentalService.List(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.RentalResponseDTO, 0, len(rentals))
	for _, rental := range rentals {
		response = append(response, dto.NewRentalResponseDTO(rental))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Extend adds months to the caller's own rental. A number rented by someone
// else is reported as not found.
func (h *RentalHandler) Extend(w http.ResponseWriter, r *http.Request) {
	userID := identity.FromContext(r.Context())

	var req dto.ExtendRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rental, err := h.rentalService.Extend(r.Context(), userID, req.Number, req.Months)
	if err != nil {
		switch {
		case errors.Is(err, rentalservice.ErrInvalidMonths):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrRentalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Rental not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewRentalResponseDTO(*rental))
}
