package domain

import "strconv"

type NumberStatus string

const (
	// StatusFree the number is available for rent;
	StatusFree NumberStatus = "free"
	// StatusBusy the number is held by an active rental;
	StatusBusy NumberStatus = "busy"
)

type Category string

const (
	CategoryAnonymous Category = "anonymous"
	CategoryESIM      Category = "esim"
	CategoryPhysical  Category = "physical"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

type NumberRecord struct {
	Number   string       `json:"number"`
	Status   NumberStatus `json:"status"`
	Category Category     `json:"category"`
	Price    int          `json:"price"`
}

type Rental struct {
	Number string `json:"number"`
	Until  Time   `json:"until"`
}

type Payment struct {
	UserID          int           `json:"user_id"`
	Number          string        `json:"number"`
	Months          int           `json:"months"`
	Price           float64       `json:"price"`
	InvoiceID       int64         `json:"invoice_id,omitempty"`
	Status          PaymentStatus `json:"status"`
	PromoCode       string        `json:"promo_code,omitempty"`
	DiscountPercent int           `json:"discount_percent,omitempty"`
}

type PromoCode struct {
	Code      string `json:"code"`
	Percent   int    `json:"percent"`
	Active    bool   `json:"active"`
	CreatedAt Time   `json:"created_at"`
	CreatedBy int    `json:"created_by"`
}

type User struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username,omitempty"`
	FirstSeen Time   `json:"first_seen"`
	LastSeen  Time   `json:"last_seen"`
}

// State is the whole persisted aggregate. Rentals and Users are keyed by
// the decimal user id, Payments by the opaque payment id.
type State struct {
	Numbers    []NumberRecord      `json:"numbers"`
	Rentals    map[string][]Rental `json:"rentals"`
	Payments   map[string]Payment  `json:"payments"`
	Promocodes []PromoCode         `json:"promocodes"`
	Users      map[string]User     `json:"users"`
}

// UserKey renders a user id the way the state document keys it.
func UserKey(userID int) string {
	return strconv.Itoa(userID)
}
