package storage

import "github.com/shadownumbers/numrent/internal/domain"

const (
	anonymousMonthlyPrice = 25
	esimMonthlyPrice      = 15
	physicalMonthlyPrice  = 8
)

// Catalog order is the menu order: anonymous block first, then eSIM, then
// physical SIM. A few anonymous numbers seed busy to match the production
// inventory snapshot.
var seedAnonymous = []struct {
	number string
	status domain.NumberStatus
}{
	{"+888 741 0385", domain.StatusFree},
	{"+888 290 5176", domain.StatusBusy},
	{"+888 618 3924", domain.StatusFree},
	{"+888 054 9831", domain.StatusBusy},
	{"+888 372 6098", domain.StatusFree},
	{"+888 956 1407", domain.StatusFree},
	{"+888 103 8259", domain.StatusBusy},
	{"+888 487 7312", domain.StatusFree},
	{"+888 829 0643", domain.StatusBusy},
	{"+888 531 2704", domain.StatusFree},
}

var seedESIM = []string{
	"+7 904 672 81 59",
	"+380 97 185 36 20",
	"+7 927 349 02 71",
	"+380 63 590 74 81",
	"+7 917 810 52 36",
	"+380 50 248 19 63",
	"+7 986 735 90 14",
	"+380 68 062 47 95",
	"+7 962 194 65 08",
	"+380 99 357 80 12",
}

var seedPhysical = []string{
	"+7 934 501 78 26",
	"+7 908 276 39 45",
	"+7 913 940 18 72",
	"+7 989 615 03 84",
	"+7 950 427 96 13",
	"+7 900 853 20 97",
	"+7 921 709 45 81",
	"+7 911 368 12 79",
	"+7 969 042 57 38",
	"+7 981 175 69 04",
}

// DefaultState builds the state a fresh installation starts from: the fixed
// catalog and empty collections for everything else.
func DefaultState() *domain.State {
	numbers := make([]domain.NumberRecord, 0, len(seedAnonymous)+len(seedESIM)+len(seedPhysical))
	for _, n := range seedAnonymous {
		numbers = append(numbers, domain.NumberRecord{
			Number:   n.number,
			Status:   n.status,
			Category: domain.CategoryAnonymous,
			Price:    anonymousMonthlyPrice,
		})
	}
	for _, number := range seedESIM {
		numbers = append(numbers, domain.NumberRecord{
			Number:   number,
			Status:   domain.StatusFree,
			Category: domain.CategoryESIM,
			Price:    esimMonthlyPrice,
		})
	}
	for _, number := range seedPhysical {
		numbers = append(numbers, domain.NumberRecord{
			Number:   number,
			Status:   domain.StatusFree,
			Category: domain.CategoryPhysical,
			Price:    physicalMonthlyPrice,
		})
	}

	return &domain.State{
		Numbers:    numbers,
		Rentals:    make(map[string][]domain.Rental),
		Payments:   make(map[string]domain.Payment),
		Promocodes: make([]domain.PromoCode, 0),
		Users:      make(map[string]domain.User),
	}
}
