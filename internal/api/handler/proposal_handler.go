package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/livestock-api/internal/core/ports"
)

// ProposalHandler handles purchase proposal endpoints.
type ProposalHandler struct {
	proposals ports.ProposalService
}

func NewProposalHandler(proposals ports.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

// @Summary      List all proposals with customer and listing resolved
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Proposal
// @Router       /proposals [get]
func (h *ProposalHandler) List(c echo.Context) error {
	proposals, err := h.proposals.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proposals)
}

// @Summary      List proposals of one customer
// @Tags         proposals
// @Produce      json
// @Param        customerID  path      string  true  "Customer id"
// @Success      200         {array}   domain.Proposal
// @Router       /proposals/customer/{customerID} [get]
func (h *ProposalHandler) ListByCustomer(c echo.Context) error {
	proposals, err := h.proposals.ListByCustomer(c.Request().Context(), c.Param("customerID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proposals)
}

// @Summary      Submit a purchase proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        body  body      createProposalRequest  true  "Proposal details"
// @Success      201   {object}  domain.Proposal
// @Failure      400   {object}  errorResponse
// @Router       /proposals [post]
func (h *ProposalHandler) Create(c echo.Context) error {
	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	proposal, err := h.proposals.Create(c.Request().Context(), req.CustomerID, req.ListingID, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, proposal)
}

// Answer records the administrator's response on a proposal.
//
// @Summary      Answer a proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Proposal id"
// @Param        body  body      answerProposalRequest  true  "Answer text"
// @Success      200   {object}  domain.Proposal
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /proposals/{id} [patch]
func (h *ProposalHandler) Answer(c echo.Context) error {
	var req answerProposalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	proposal, err := h.proposals.Answer(c.Request().Context(), c.Param("id"), req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, proposal)
}
