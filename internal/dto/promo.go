package dto

import "github.com/shadownumbers/numrent/internal/domain"

type PromoCreateRequestDTO struct {
	Code    string `json:"code"`
	Percent int    `json:"percent"`
}

type PromoResponseDTO struct {
	Code      string `json:"code"`
	Percent   int    `json:"percent"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

func NewPromoResponseDTO(promo domain.PromoCode) PromoResponseDTO {
	return PromoResponseDTO{
		Code:      promo.Code,
		Percent:   promo.Percent,
		Active:    promo.Active,
		CreatedAt: promo.CreatedAt.UTC().Format(domain.TimeLayout),
	}
}
