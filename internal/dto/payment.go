package dto

type SelectionRequestDTO struct {
	Number string `json:"number"`
	Months int    `json:"months"`
}

type SelectionResponseDTO struct {
	Number string  `json:"number"`
	Months int     `json:"months"`
	Price  float64 `json:"price"`
}

type InvoiceRequestDTO struct {
	PromoCode string `json:"promo_code,omitempty"`
}

type InvoiceResponseDTO struct {
	PaymentID       string  `json:"payment_id"`
	PayURL          string  `json:"pay_url"`
	Price           float64 `json:"price"`
	PromoCode       string  `json:"promo_code,omitempty"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
}

type ConfirmRequestDTO struct {
	PaymentID string `json:"payment_id"`
}
