package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"techstore-api/internal/dto"
	"techstore-api/internal/service"
)

type BannerHandler struct {
	bannerService service.BannerService
}

func NewBannerHandler(bannerService service.BannerService) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
	}
}

func (h *BannerHandler) ListActive(c echo.Context) error {
	ctx := c.Request().Context()

	banners, err := h.bannerService.ListActive(ctx)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	banners, err := h.bannerService.ListAll(ctx, caller)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.BannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	banner, err := h.bannerService.Create(ctx, caller, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, banner)
}

func (h *BannerHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.BannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	banner, err := h.bannerService.Update(ctx, caller, c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	if err := h.bannerService.Delete(ctx, caller, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
