package domain

import "errors"

var (
	ErrNumberNotFound  = errors.New("number not found")
	ErrNumberBusy      = errors.New("number is busy")
	ErrRentalNotFound  = errors.New("rental not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPromoNotFound   = errors.New("promo code not found")
	ErrPromoExists     = errors.New("promo code already exists")
)
