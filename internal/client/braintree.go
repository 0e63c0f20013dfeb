package client

import (
	"context"
	"fmt"

	"github.com/braintree-go/braintree-go"

	"techstore-api/internal/config"
	"techstore-api/internal/storefront"
)

// BraintreeClient charges card payments through the Braintree SDK.
type BraintreeClient interface {
	// ChargeCard submits a one-time sale for a frontend payment nonce and
	// returns the gateway transaction id.
	ChargeCard(ctx context.Context, nonce string, amount int64, orderID string) (string, error)
}

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) ChargeCard(ctx context.Context, nonce string, amount int64, orderID string) (string, error) {
	// braintree.NewDecimal(unscaled, scale): cents with scale 2
	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(amount, 2),
		PaymentMethodNonce: nonce,
		OrderId:            orderID,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("braintree transaction: %w: %v", storefront.ErrUpstreamUnavailable, err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined {
		return "", fmt.Errorf("transaction declined: %s: %w", tx.ProcessorResponseText, storefront.ErrPaymentVerificationFailed)
	}

	return tx.Id, nil
}
