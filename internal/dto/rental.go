package dto

import (
	"github.com/shadownumbers/numrent/internal/domain"
)

type RentalResponseDTO struct {
	Number string `json:"number"`
	Until  string `json:"until"`
}

func NewRentalResponseDTO(rental domain.Rental) RentalResponseDTO {
	return RentalResponseDTO{
		Number: rental.Number,
		Until:  rental.Until.UTC().Format(domain.TimeLayout),
	}
}

type ExtendRequestDTO struct {
	Number string `json:"number"`
	Months int    `json:"months"`
}

type ForceRentalRequestDTO struct {
	UserID int    `json:"user_id"`
	Number string `json:"number"`
	Months int    `json:"months"`
}
