package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"techstore-api/internal/dto"
	"techstore-api/internal/service"
	"techstore-api/internal/storefront"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) Pay(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	handle, err := h.paymentService.Initiate(ctx, caller, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, handle)
}

func (h *PaymentHandler) CapturePaypal(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.CapturePaypalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.paymentService.ConfirmPaypal(ctx, caller, c.Param("id"), req.GatewayOrderID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *PaymentHandler) VerifyPaynow(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	order, err := h.paymentService.ConfirmPaynow(ctx, caller, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *PaymentHandler) ChargeCard(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.ChargeCardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.paymentService.ChargeCard(ctx, caller, c.Param("id"), req.Nonce)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

// PaynowIPN is gateway-driven and unauthenticated; the service verifies
// the message hash before acting. A replayed notification answers 200 so
// the gateway stops retrying.
func (h *PaymentHandler) PaynowIPN(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "read body")
	}

	if err := h.paymentService.HandlePaynowIPN(ctx, string(body)); err != nil {
		if errors.Is(err, storefront.ErrConflict) {
			return c.NoContent(http.StatusOK)
		}
		return httpError(err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *PaymentHandler) RecordCashPayment(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	order, err := h.paymentService.RecordCashPayment(ctx, caller, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}
