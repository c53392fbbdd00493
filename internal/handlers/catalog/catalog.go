package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/dto"
	"github.com/shadownumbers/numrent/pkg/utils"
)

type Service interface {
	List(ctx context.Context, category domain.Category) ([]domain.NumberRecord, error)
	Get(ctx context.Context, number string) (*domain.NumberRecord, error)
}

type CatalogHandler struct {
	inventoryService Service
}

func New(inventoryService Service) *CatalogHandler {
	return &CatalogHandler{
		inventoryService: inventoryService,
	}
}

// GetNumbers lists the catalog in menu order, optionally filtered by the
// category query parameter.
func (h *CatalogHandler) GetNumbers(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))

	numbers, err := h.inventoryService.List(r.Context(), category)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.NumberResponseDTO, 0, len(numbers))
	for _, record := range numbers {
		response = append(response, dto.NewNumberResponseDTO(record))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetNumber returns one record by exact match; the status field tells the
// front end whether the number can still be picked.
func (h *CatalogHandler) GetNumber(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "number parameter is required")
		return
	}

	record, err := h.inventoryService.Get(r.Context(), number)
	if err != nil {
		if errors.Is(err, domain.ErrNumberNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Number not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewNumberResponseDTO(*record))
}
