// Package oracle talks to the Crypto Pay API: it issues invoices and
// reports their settlement status. Any non-2xx response, malformed body or
// ok=false envelope is surfaced as an error, never treated as success.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/shadownumbers/numrent/internal/config"
	"github.com/shadownumbers/numrent/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1

	tokenHeader = "Crypto-Pay-API-Token"

	StatusPaid = "paid"
)

var ErrUnavailable = errors.New("payment oracle unavailable")

type Invoice struct {
	InvoiceID     int64  `json:"invoice_id"`
	Status        string `json:"status"`
	PayURL        string `json:"pay_url"`
	BotInvoiceURL string `json:"bot_invoice_url"`
}

type apiResponse struct {
	OK     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
}

type Client struct {
	url    string
	token  string
	client clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		url:    cfg.OracleAddress,
		token:  cfg.OracleToken,
		client: client,
	}
}

// CreateInvoice asks the oracle for a new invoice. The payload travels
// opaquely and comes back attached to the invoice on settlement queries.
func (c *Client) CreateInvoice(ctx context.Context, amount float64, asset, description, payload string) (*Invoice, error) {
	body := map[string]string{
		"asset":       asset,
		"amount":      strconv.FormatFloat(amount, 'f', -1, 64),
		"description": description,
		"payload":     payload,
	}
	result, err := c.post(ctx, "createInvoice", body)
	if err != nil {
		return nil, err
	}

	var invoice Invoice
	if err := json.Unmarshal(result, &invoice); err != nil {
		return nil, fmt.Errorf("can't parse invoice: %w", errors.Join(ErrUnavailable, err))
	}
	if invoice.PayURL == "" {
		invoice.PayURL = invoice.BotInvoiceURL
	}
	return &invoice, nil
}

// GetInvoiceStatus reports the oracle's settlement status for the invoice.
func (c *Client) GetInvoiceStatus(ctx context.Context, invoiceID int64) (string, error) {
	body := map[string][]int64{"invoice_ids": {invoiceID}}
	result, err := c.post(ctx, "getInvoices", body)
	if err != nil {
		return "", err
	}

	var list struct {
		Items []Invoice `json:"items"`
	}
	if err := json.Unmarshal(result, &list); err != nil {
		return "", fmt.Errorf("can't parse invoices: %w", errors.Join(ErrUnavailable, err))
	}
	if len(list.Items) == 0 {
		return "", fmt.Errorf("invoice %d not found: %w", invoiceID, ErrUnavailable)
	}
	return list.Items[0].Status, nil
}

func (c *Client) post(ctx context.Context, method string, body any) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("can't encode %s request: %w", method, err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set(tokenHeader, c.token)
	url := c.url + "/api/" + method

	var statusCode int
	var respBody []byte
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		statusCode, respBody, err = c.client.Post(ctx, url, headers, data)
		if err == nil && statusCode == http.StatusOK {
			break
		}
		if attempt == maxRetries {
			if err != nil {
				return nil, fmt.Errorf("%s failed after %d retries: %w", method, maxRetries, errors.Join(ErrUnavailable, err))
			}
			return nil, fmt.Errorf("%s returned status %d: %w", method, statusCode, ErrUnavailable)
		}
		zap.L().Warn("oracle request failed, retrying",
			zap.String("method", method), zap.Int("attempt", attempt), zap.Int("status", statusCode), zap.Error(err))
		time.Sleep(retryInterval * time.Duration(attempt))
	}

	var response apiResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("can't parse %s response: %w", method, errors.Join(ErrUnavailable, err))
	}
	if !response.OK {
		return nil, fmt.Errorf("%s rejected by oracle: %w", method, ErrUnavailable)
	}
	return response.Result, nil
}
