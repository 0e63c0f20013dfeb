package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"techstore-api/internal/auth"
	"techstore-api/internal/client"
	"techstore-api/internal/dto"
	"techstore-api/internal/model"
	"techstore-api/internal/repository"
	"techstore-api/internal/storefront"
)

// PaymentService reconciles order payment status against the gateways.
// The paid transition is only ever applied after server-side verification
// of the gateway's own record; a client-supplied "paid" flag is never
// trusted.
type PaymentService interface {
	Initiate(ctx context.Context, caller *auth.Identity, orderID string) (*dto.PaymentHandle, error)
	ConfirmPaypal(ctx context.Context, caller *auth.Identity, orderID, gatewayOrderID string) (*model.Order, error)
	ConfirmPaynow(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error)
	HandlePaynowIPN(ctx context.Context, body string) error
	ChargeCard(ctx context.Context, caller *auth.Identity, orderID, nonce string) (*model.Order, error)
	RecordCashPayment(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error)
}

type paymentServiceImpl struct {
	db              *gorm.DB
	baseURL         string
	paypalClient    client.PaypalClient
	paynowClient    client.PaynowClient
	braintreeClient client.BraintreeClient
	orderRepo       repository.OrderRepository
	paymentRepo     repository.PaymentRepository
}

func NewPaymentService(
	db *gorm.DB,
	baseURL string,
	paypalClient client.PaypalClient,
	paynowClient client.PaynowClient,
	braintreeClient client.BraintreeClient,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:              db,
		baseURL:         baseURL,
		paypalClient:    paypalClient,
		paynowClient:    paynowClient,
		braintreeClient: braintreeClient,
		orderRepo:       orderRepo,
		paymentRepo:     paymentRepo,
	}
}

func (s *paymentServiceImpl) loadOwnedOrder(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != caller.UserID && !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}
	return order, nil
}

func (s *paymentServiceImpl) Initiate(ctx context.Context, caller *auth.Identity, orderID string) (*dto.PaymentHandle, error) {
	order, err := s.loadOwnedOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, storefront.ErrConflict
	}

	returnURL := fmt.Sprintf("%s/order/%s", s.baseURL, order.ID)

	switch order.PaymentMethod {
	case model.PaymentMethodPayPal:
		session, err := s.paypalClient.CreateOrder(ctx, order.ID, order.TotalPrice, order.Currency, returnURL, returnURL)
		if err != nil {
			return nil, fmt.Errorf("paypal create order: %w", err)
		}
		if err := s.orderRepo.SetGatewayRef(ctx, order.ID, session.OrderID); err != nil {
			return nil, fmt.Errorf("store gateway ref: %w", err)
		}
		return &dto.PaymentHandle{
			OrderID:     order.ID,
			Gateway:     model.PaymentMethodPayPal,
			GatewayRef:  session.OrderID,
			RedirectURL: session.ApproveURL,
		}, nil

	case model.PaymentMethodPaynow:
		resultURL := s.baseURL + "/api/payments/paynow/ipn"
		result, err := s.paynowClient.InitiateTransaction(ctx, order.ID, order.TotalPrice, caller.Email, returnURL, resultURL)
		if err != nil {
			return nil, fmt.Errorf("paynow initiate: %w", err)
		}
		if err := s.orderRepo.SetGatewayRef(ctx, order.ID, result.PollURL); err != nil {
			return nil, fmt.Errorf("store gateway ref: %w", err)
		}
		return &dto.PaymentHandle{
			OrderID:     order.ID,
			Gateway:     model.PaymentMethodPaynow,
			GatewayRef:  result.PollURL,
			RedirectURL: result.BrowserURL,
		}, nil
	}

	return nil, fmt.Errorf("payment method %s has no gateway session: %w", order.PaymentMethod, storefront.ErrInvalidInput)
}

func (s *paymentServiceImpl) ConfirmPaypal(ctx context.Context, caller *auth.Identity, orderID, gatewayOrderID string) (*model.Order, error) {
	order, err := s.loadOwnedOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, storefront.ErrConflict
	}
	if order.GatewayRef == "" || order.GatewayRef != gatewayOrderID {
		return nil, fmt.Errorf("gateway order id does not match: %w", storefront.ErrPaymentVerificationFailed)
	}

	capture, err := s.paypalClient.CaptureOrder(ctx, gatewayOrderID)
	if err != nil {
		return nil, fmt.Errorf("paypal capture: %w", err)
	}

	if capture.Status != "COMPLETED" {
		return nil, fmt.Errorf("capture status %s: %w", capture.Status, storefront.ErrPaymentVerificationFailed)
	}
	if capture.ReferenceID != order.ID {
		return nil, fmt.Errorf("capture reference mismatch: %w", storefront.ErrPaymentVerificationFailed)
	}
	if capture.Amount != order.TotalPrice || capture.Currency != order.Currency {
		return nil, fmt.Errorf("captured amount does not match order total: %w", storefront.ErrPaymentVerificationFailed)
	}

	if err := s.applyPaid(ctx, order, model.PaymentMethodPayPal, capture.CaptureID, capture.Amount, capture.Currency); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, order.ID)
}

func (s *paymentServiceImpl) ConfirmPaynow(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error) {
	order, err := s.loadOwnedOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, storefront.ErrConflict
	}
	if order.GatewayRef == "" {
		return nil, fmt.Errorf("payment not initiated: %w", storefront.ErrInvalidInput)
	}

	status, err := s.paynowClient.PollStatus(ctx, order.GatewayRef)
	if err != nil {
		return nil, fmt.Errorf("paynow poll: %w", err)
	}

	if err := s.verifyPaynowStatus(order, status); err != nil {
		return nil, err
	}

	if err := s.applyPaid(ctx, order, model.PaymentMethodPaynow, status.PaynowRef, order.TotalPrice, order.Currency); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, order.ID)
}

// HandlePaynowIPN processes the gateway-initiated callback. The request
// carries no session; trust comes from the hash check inside ParseStatus
// and from the amount/reference verification below.
func (s *paymentServiceImpl) HandlePaynowIPN(ctx context.Context, body string) error {
	status, err := s.paynowClient.ParseStatus(body)
	if err != nil {
		return fmt.Errorf("parse ipn: %w", err)
	}

	if status.PaynowRef != "" {
		processed, err := s.paymentRepo.EventProcessed(ctx, status.PaynowRef)
		if err != nil {
			return fmt.Errorf("check event: %w", err)
		}
		if processed {
			return storefront.ErrConflict
		}
	}

	order, err := s.orderRepo.FindByID(ctx, status.Reference)
	if err != nil {
		return fmt.Errorf("order %s: %w", status.Reference, err)
	}
	if order.IsPaid {
		return storefront.ErrConflict
	}

	if err := s.verifyPaynowStatus(order, status); err != nil {
		return err
	}

	if err := s.applyPaid(ctx, order, model.PaymentMethodPaynow, status.PaynowRef, order.TotalPrice, order.Currency); err != nil {
		return err
	}

	if status.PaynowRef != "" {
		if err := s.paymentRepo.MarkEventProcessed(ctx, status.PaynowRef, "paynow.ipn"); err != nil {
			return fmt.Errorf("mark event processed: %w", err)
		}
	}

	return nil
}

func (s *paymentServiceImpl) verifyPaynowStatus(order *model.Order, status *model.PaynowStatus) error {
	if !status.IsPaid() {
		return fmt.Errorf("paynow status %q: %w", status.Status, storefront.ErrPaymentVerificationFailed)
	}
	if status.Reference != order.ID {
		return fmt.Errorf("paynow reference mismatch: %w", storefront.ErrPaymentVerificationFailed)
	}

	cents, err := client.AmountToCents(status.Amount)
	if err != nil {
		return fmt.Errorf("paynow amount: %w", storefront.ErrPaymentVerificationFailed)
	}
	if cents != order.TotalPrice {
		return fmt.Errorf("paynow amount does not match order total: %w", storefront.ErrPaymentVerificationFailed)
	}

	return nil
}

func (s *paymentServiceImpl) ChargeCard(ctx context.Context, caller *auth.Identity, orderID, nonce string) (*model.Order, error) {
	order, err := s.loadOwnedOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, storefront.ErrConflict
	}
	if order.PaymentMethod != model.PaymentMethodCard {
		return nil, fmt.Errorf("order is not a card order: %w", storefront.ErrInvalidInput)
	}

	txID, err := s.braintreeClient.ChargeCard(ctx, nonce, order.TotalPrice, order.ID)
	if err != nil {
		return nil, fmt.Errorf("charge card: %w", err)
	}

	if err := s.applyPaid(ctx, order, model.PaymentMethodCard, txID, order.TotalPrice, order.Currency); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, order.ID)
}

// RecordCashPayment lets an admin record an offline (cash on delivery)
// payment through the same conditional transition as the gateways.
func (s *paymentServiceImpl) RecordCashPayment(ctx context.Context, caller *auth.Identity, orderID string) (*model.Order, error) {
	if !caller.IsAdmin {
		return nil, storefront.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	captureID := "cash-" + order.ID
	if err := s.applyPaid(ctx, order, model.PaymentMethodCash, captureID, order.TotalPrice, order.Currency); err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(ctx, order.ID)
}

// applyPaid performs the single paid transition plus the capture audit
// row in one transaction. A replayed capture id or an already-paid order
// surfaces as ErrConflict.
func (s *paymentServiceImpl) applyPaid(ctx context.Context, order *model.Order, gateway, captureID string, amount int64, currency string) error {
	exists, err := s.paymentRepo.CaptureExists(ctx, captureID)
	if err != nil {
		return fmt.Errorf("check capture: %w", err)
	}
	if exists {
		return storefront.ErrConflict
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.MarkPaid(ctx, tx, order.ID, captureID, time.Now()); err != nil {
			return err
		}
		return s.paymentRepo.CreateCapture(ctx, tx, &model.PaymentCapture{
			CaptureID: captureID,
			OrderID:   order.ID,
			Gateway:   gateway,
			Amount:    amount,
			Currency:  currency,
		})
	})
}
