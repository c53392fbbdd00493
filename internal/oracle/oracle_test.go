package oracle

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shadownumbers/numrent/internal/config"
	"github.com/shadownumbers/numrent/pkg/clients"
)

func setup(t *testing.T) (*Client, *clients.MockHTTPClientI) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockClient := clients.NewMockHTTPClientI(ctrl)
	cfg := &config.Config{OracleAddress: "https://pay.crypt.bot", OracleToken: "test-token"}
	return New(cfg, mockClient), mockClient
}

func TestCreateInvoice(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), "https://pay.crypt.bot/api/createInvoice", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, headers http.Header, body []byte) (int, []byte, error) {
				assert.Equal(t, "test-token", headers.Get("Crypto-Pay-API-Token"))
				assert.Contains(t, string(body), `"amount":"75"`)
				assert.Contains(t, string(body), `"asset":"USDT"`)
				return http.StatusOK, []byte(`{"ok":true,"result":{"invoice_id":42,"status":"active","pay_url":"https://t.me/pay/42"}}`), nil
			})

		invoice, err := client.CreateInvoice(context.Background(), 75, "USDT", "Rental", "pay-1")
		require.NoError(t, err)
		assert.Equal(t, int64(42), invoice.InvoiceID)
		assert.Equal(t, "https://t.me/pay/42", invoice.PayURL)
	})

	t.Run("falls back to bot invoice url", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"ok":true,"result":{"invoice_id":42,"bot_invoice_url":"https://t.me/bot/42"}}`), nil)

		invoice, err := client.CreateInvoice(context.Background(), 75, "USDT", "Rental", "pay-1")
		require.NoError(t, err)
		assert.Equal(t, "https://t.me/bot/42", invoice.PayURL)
	})

	t.Run("rejected envelope", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"ok":false}`), nil)

		_, err := client.CreateInvoice(context.Background(), 75, "USDT", "Rental", "pay-1")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("retries then gives up on server errors", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusBadGateway, nil, nil).
			Times(3)

		_, err := client.CreateInvoice(context.Background(), 75, "USDT", "Rental", "pay-1")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("network error", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, nil, errors.New("connection refused")).
			Times(3)

		_, err := client.CreateInvoice(context.Background(), 75, "USDT", "Rental", "pay-1")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("recovers on retry", func(t *testing.T) {
		client, mockClient := setup(t)
		gomock.InOrder(
			mockClient.EXPECT().
				Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(http.StatusInternalServerError, nil, nil),
			mockClient.EXPECT().
				Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(http.StatusOK, []byte(`{"ok":true,"result":{"invoice_id":42,"pay_url":"https://t.me/pay/42"}}`), nil),
		)

		invoice, err := client.CreateInvoice(context.Background(), 75, "USDT", "Rental", "pay-1")
		require.NoError(t, err)
		assert.Equal(t, int64(42), invoice.InvoiceID)
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		client, _ := setup(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.CreateInvoice(ctx, 75, "USDT", "Rental", "pay-1")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGetInvoiceStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), "https://pay.crypt.bot/api/getInvoices", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ http.Header, body []byte) (int, []byte, error) {
				assert.JSONEq(t, `{"invoice_ids":[42]}`, string(body))
				return http.StatusOK, []byte(`{"ok":true,"result":{"items":[{"invoice_id":42,"status":"paid"}]}}`), nil
			})

		status, err := client.GetInvoiceStatus(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, StatusPaid, status)
	})

	t.Run("invoice not found", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`{"ok":true,"result":{"items":[]}}`), nil)

		_, err := client.GetInvoiceStatus(context.Background(), 42)
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		client, mockClient := setup(t)
		mockClient.EXPECT().
			Post(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(http.StatusOK, []byte(`not json`), nil)

		_, err := client.GetInvoiceStatus(context.Background(), 42)
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
