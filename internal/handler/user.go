package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"techstore-api/internal/dto"
	"techstore-api/internal/model"
	"techstore-api/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// userView strips the password hash from API responses.
type userView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func toUserView(u *model.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.userService.Register(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	resp, err := h.userService.Login(ctx, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.userService.UpdateProfile(ctx, caller, &req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toUserView(user))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	users, err := h.userService.List(ctx, caller)
	if err != nil {
		return httpError(err)
	}

	views := make([]userView, len(users))
	for i, u := range users {
		views[i] = toUserView(u)
	}

	return c.JSON(http.StatusOK, views)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	user, err := h.userService.SetAdmin(ctx, caller, c.Param("id"), req.IsAdmin)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toUserView(user))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(ctx, caller, c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
