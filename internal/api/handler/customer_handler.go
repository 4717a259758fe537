package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/livestock-api/internal/core/ports"
)

// CustomerHandler handles customer account endpoints.
type CustomerHandler struct {
	accounts ports.AccountService
}

func NewCustomerHandler(accounts ports.AccountService) *CustomerHandler {
	return &CustomerHandler{accounts: accounts}
}

// Register creates a new customer account.
//
// @Summary      Register a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      registerCustomerRequest  true  "Customer registration details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Register(c echo.Context) error {
	var req registerCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	customer, err := h.accounts.RegisterCustomer(c.Request().Context(), ports.RegisterCustomerInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customer)
}

// Login authenticates a customer. The response carries the profile only;
// customers do not receive session tokens.
//
// @Summary      Customer login
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      customerLoginRequest  true  "Login credentials"
// @Success      200   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Router       /customers/login [post]
func (h *CustomerHandler) Login(c echo.Context) error {
	var req customerLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	customer, err := h.accounts.LoginCustomer(c.Request().Context(), req.NationalID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// ResetPassword replaces the password of the customer with the given national id.
//
// @Summary      Reset a customer password
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        national_id  path      string                true  "Customer national id"
// @Param        body         body      resetPasswordRequest  true  "New password"
// @Success      200          {object}  domain.Customer
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /customers/{national_id}/password [put]
func (h *CustomerHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	customer, err := h.accounts.ResetCustomerPassword(c.Request().Context(), c.Param("national_id"), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customer)
}

// Check reports whether a national id is already registered.
//
// @Summary      Check whether a national id is registered
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      checkNationalIDRequest  true  "National id to check"
// @Success      200   {object}  checkNationalIDResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  checkNationalIDResponse
// @Router       /customers/check [post]
func (h *CustomerHandler) Check(c echo.Context) error {
	var req checkNationalIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	exists, err := h.accounts.NationalIDExists(c.Request().Context(), req.NationalID)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if !exists {
		status = http.StatusNotFound
	}
	return c.JSON(status, checkNationalIDResponse{Exists: exists})
}

// List returns all customer profiles.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Success      200  {array}  domain.Customer
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.accounts.ListCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Get returns a single customer profile by id.
//
// @Summary      Get a customer by id
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  errorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.accounts.GetCustomer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}
