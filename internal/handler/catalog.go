package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"techstore-api/internal/dto"
	"techstore-api/internal/repository"
	"techstore-api/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	filter := repository.ProductFilter{
		Category: c.QueryParam("category"),
		Brand:    c.QueryParam("brand"),
		Query:    c.QueryParam("q"),
	}
	if v := c.QueryParam("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid featured filter")
		}
		filter.Featured = &featured
	}

	products, err := h.catalogService.List(ctx, filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.catalogService.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.catalogService.Create(ctx, caller, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	product, err := h.catalogService.Update(ctx, caller, c.Param("id"), &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	if err := h.catalogService.Delete(ctx, caller, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
