package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/shadownumbers/numrent/internal/domain"
	"github.com/shadownumbers/numrent/internal/service/paymentservice"
)

// runInline executes every submitted task on the caller's goroutine so the
// test sees the outcome synchronously.
func runInline(pool *MockWorkerPoolI) {
	pool.EXPECT().
		AddTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task Task) error { return task() }).
		AnyTimes()
}

func setup(t *testing.T) (*Service, *MockPayments, *MockWorkerPoolI) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	payments := NewMockPayments(ctrl)
	pool := NewMockWorkerPoolI(ctrl)
	service := &Service{
		payments:     payments,
		workerPool:   pool,
		pollInterval: time.Millisecond,
	}
	return service, payments, pool
}

func TestProcessPayments(t *testing.T) {
	t.Run("settles every pending payment", func(t *testing.T) {
		service, payments, pool := setup(t)
		runInline(pool)

		payments.EXPECT().ListPending(gomock.Any()).Return(map[string]domain.Payment{
			"pay-1": {UserID: 7, InvoiceID: 42, Status: domain.PaymentPending},
			"pay-2": {UserID: 8, InvoiceID: 43, Status: domain.PaymentPending},
		}, nil)
		payments.EXPECT().Settle(gomock.Any(), "pay-1").Return(&domain.Rental{}, nil)
		payments.EXPECT().Settle(gomock.Any(), "pay-2").Return(nil, paymentservice.ErrInvoiceUnpaid)

		service.processPayments(context.Background())
	})

	t.Run("skips payments without an invoice", func(t *testing.T) {
		service, payments, pool := setup(t)
		runInline(pool)

		payments.EXPECT().ListPending(gomock.Any()).Return(map[string]domain.Payment{
			"pay-1": {UserID: 7, Status: domain.PaymentPending},
		}, nil)

		service.processPayments(context.Background())
	})

	t.Run("skips payments already in flight", func(t *testing.T) {
		service, payments, pool := setup(t)
		runInline(pool)

		inFlight.Store("pay-1", struct{}{})
		t.Cleanup(func() { inFlight.Delete("pay-1") })

		payments.EXPECT().ListPending(gomock.Any()).Return(map[string]domain.Payment{
			"pay-1": {UserID: 7, InvoiceID: 42, Status: domain.PaymentPending},
		}, nil)

		service.processPayments(context.Background())
	})

	t.Run("list failure aborts the cycle", func(t *testing.T) {
		service, payments, _ := setup(t)
		payments.EXPECT().ListPending(gomock.Any()).Return(nil, errors.New("read failed"))

		service.processPayments(context.Background())
	})

	t.Run("releases the in-flight slot when the pool rejects the task", func(t *testing.T) {
		service, payments, pool := setup(t)

		payments.EXPECT().ListPending(gomock.Any()).Return(map[string]domain.Payment{
			"pay-1": {UserID: 7, InvoiceID: 42, Status: domain.PaymentPending},
		}, nil)
		pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)

		service.processPayments(context.Background())

		_, loaded := inFlight.Load("pay-1")
		assert.False(t, loaded)
	})
}

func TestHandlePayment(t *testing.T) {
	tests := []struct {
		name          string
		settleError   error
		expectedError error
	}{
		{name: "settled", settleError: nil},
		{name: "invoice still unpaid", settleError: paymentservice.ErrInvoiceUnpaid},
		{name: "already paid elsewhere", settleError: paymentservice.ErrAlreadyPaid},
		{name: "number went busy", settleError: domain.ErrNumberBusy},
		{name: "oracle failure propagates", settleError: errors.New("oracle down"), expectedError: errors.New("oracle down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, payments, _ := setup(t)
			payments.EXPECT().Settle(gomock.Any(), "pay-1").Return(nil, tt.settleError)

			err := service.handlePayment(context.Background(), "pay-1")
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}
