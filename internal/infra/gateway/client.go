// Package gateway integrates the external payment provider. The provider is
// an opaque HTTP collaborator: one JSON POST initializes a payment and the
// response carries the URL the guest is redirected to.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("gateway: client not configured")
	// ErrPaymentInit covers any non-2xx provider response; callers surface
	// it as a generic failure with no retry.
	ErrPaymentInit = errors.New("gateway: payment initialization failed")
)

type Client struct {
	HTTP     *http.Client
	Endpoint string
	WalletID string
	Logger   *slog.Logger
}

type InitParams struct {
	// Token is the currency code the gateway charges in.
	Token       string
	AmountMinor int64
	Description string
	SuccessURL  string
	FailURL     string
}

type initPaymentRequest struct {
	ReceiverWalletID       string   `json:"receiverWalletId"`
	Token                  string   `json:"token"`
	Amount                 int64    `json:"amount"`
	Description            string   `json:"description"`
	AcceptedPaymentMethods []string `json:"acceptedPaymentMethods"`
	SuccessURL             string   `json:"successUrl"`
	FailURL                string   `json:"failUrl"`
}

type initPaymentResponse struct {
	PayURL     string `json:"payUrl"`
	PaymentRef string `json:"paymentRef"`
}

// InitPayment asks the provider for a hosted payment page and returns its URL.
func (c *Client) InitPayment(ctx context.Context, p InitParams) (string, error) {
	if c == nil || c.HTTP == nil || c.Endpoint == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(initPaymentRequest{
		ReceiverWalletID:       c.WalletID,
		Token:                  p.Token,
		Amount:                 p.AmountMinor,
		Description:            p.Description,
		AcceptedPaymentMethods: []string{"wallet", "bank_card", "e-DINAR"},
		SuccessURL:             p.SuccessURL,
		FailURL:                p.FailURL,
	})
	if err != nil {
		return "", fmt.Errorf("gateway: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway: call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if c.Logger != nil {
			c.Logger.Warn("payment init rejected", "status", resp.StatusCode, "body", string(snippet))
		}
		return "", ErrPaymentInit
	}

	var out initPaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gateway: decode response: %w", err)
	}
	if out.PayURL == "" {
		return "", ErrPaymentInit
	}
	return out.PayURL, nil
}
