package repo

import (
	numberrepo "github.com/shadownumbers/numrent/internal/repo/number-repo"
	paymentrepo "github.com/shadownumbers/numrent/internal/repo/payment-repo"
	promorepo "github.com/shadownumbers/numrent/internal/repo/promo-repo"
	rentalrepo "github.com/shadownumbers/numrent/internal/repo/rental-repo"
	userrepo "github.com/shadownumbers/numrent/internal/repo/user-repo"
	"github.com/shadownumbers/numrent/internal/service/inventoryservice"
	"github.com/shadownumbers/numrent/internal/service/paymentservice"
	"github.com/shadownumbers/numrent/internal/service/promoservice"
	"github.com/shadownumbers/numrent/internal/service/rentalservice"
	"github.com/shadownumbers/numrent/internal/service/userservice"
	"github.com/shadownumbers/numrent/internal/storage"
)

type Repositories struct {
	NumberRepo  inventoryservice.Repo
	RentalRepo  rentalservice.Repo
	PaymentRepo paymentservice.PaymentRepo
	PromoRepo   promoservice.Repo
	UserRepo    userservice.Repo
}

func New(store *storage.Store) *Repositories {
	return &Repositories{
		NumberRepo:  numberrepo.New(store),
		RentalRepo:  rentalrepo.New(store),
		PaymentRepo: paymentrepo.New(store),
		PromoRepo:   promorepo.New(store),
		UserRepo:    userrepo.New(store),
	}
}
