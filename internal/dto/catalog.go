package dto

import "github.com/shadownumbers/numrent/internal/domain"

type NumberResponseDTO struct {
	Number   string `json:"number"`
	Status   string `json:"status"`
	Category string `json:"category"`
	Price    int    `json:"price"`
}

func NewNumberResponseDTO(record domain.NumberRecord) NumberResponseDTO {
	return NumberResponseDTO{
		Number:   record.Number,
		Status:   string(record.Status),
		Category: string(record.Category),
		Price:    record.Price,
	}
}
