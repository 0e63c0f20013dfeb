package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"techstore-api/internal/dto"
	"techstore-api/internal/repository"
	"techstore-api/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.Create(ctx, caller, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Get(ctx, caller, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListMine(ctx, caller)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var filter repository.OrderFilter
	if v := c.QueryParam("paid"); v != "" {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paid filter")
		}
		filter.Paid = &paid
	}
	if v := c.QueryParam("delivered"); v != "" {
		delivered, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid delivered filter")
		}
		filter.Delivered = &delivered
	}

	orders, err := h.orderService.ListAll(ctx, caller, filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Deliver(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.MarkDelivered(ctx, caller, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	summary, err := h.orderService.Summary(ctx, caller)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, summary)
}
