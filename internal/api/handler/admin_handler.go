package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/livestock-api/internal/core/domain"
	"github.com/agrolink/livestock-api/internal/core/ports"
)

// AdminHandler handles administrator account endpoints.
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

type adminAuthResponse struct {
	Token string        `json:"token"`
	Admin *domain.Admin `json:"admin"`
}

// Register creates a new administrator account.
//
// @Summary      Register a new administrator
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        body  body      registerAdminRequest  true  "Administrator registration details"
// @Success      201   {object}  domain.Admin
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admins [post]
func (h *AdminHandler) Register(c echo.Context) error {
	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.accounts.RegisterAdmin(c.Request().Context(), ports.RegisterAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, admin)
}

// Login authenticates an administrator and returns a session token.
//
// @Summary      Administrator login
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        body  body      adminLoginRequest  true  "Login credentials"
// @Success      200   {object}  adminAuthResponse
// @Failure      400   {object}  errorResponse
// @Router       /admins/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, admin, err := h.accounts.LoginAdmin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminAuthResponse{Token: token, Admin: admin})
}

// List returns all administrator profiles.
//
// @Summary      List administrators
// @Tags         admins
// @Produce      json
// @Success      200  {array}  domain.Admin
// @Router       /admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.accounts.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}
