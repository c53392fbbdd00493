package service

import (
	"github.com/shadownumbers/numrent/internal/config"
	"github.com/shadownumbers/numrent/internal/repo"
	"github.com/shadownumbers/numrent/internal/service/inventoryservice"
	"github.com/shadownumbers/numrent/internal/service/paymentservice"
	"github.com/shadownumbers/numrent/internal/service/promoservice"
	"github.com/shadownumbers/numrent/internal/service/rentalservice"
	"github.com/shadownumbers/numrent/internal/service/sessionservice"
	"github.com/shadownumbers/numrent/internal/service/userservice"
)

type Services struct {
	InventoryService *inventoryservice.Service
	RentalService    *rentalservice.Service
	PaymentService   *paymentservice.Service
	PromoService     *promoservice.Service
	SessionService   *sessionservice.Service
	UserService      *userservice.Service
}

func New(repo *repo.Repositories, orc paymentservice.Oracle, cfg *config.Config) *Services {
	inventoryService := inventoryservice.New(repo.NumberRepo)
	rentalService := rentalservice.New(repo.RentalRepo)
	promoService := promoservice.New(repo.PromoRepo)
	sessionService := sessionservice.New(cfg.SessionTTL)
	paymentService := paymentservice.New(repo.PaymentRepo, rentalService, orc, cfg.InvoiceAsset)
	userService := userservice.New(repo.UserRepo)

	return &Services{
		InventoryService: inventoryService,
		RentalService:    rentalService,
		PaymentService:   paymentService,
		PromoService:     promoService,
		SessionService:   sessionService,
		UserService:      userService,
	}
}
