package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/livestock-api/internal/core/ports"
)

// ListingHandler handles listing endpoints, including free-text search.
type ListingHandler struct {
	catalog ports.CatalogService
}

func NewListingHandler(catalog ports.CatalogService) *ListingHandler {
	return &ListingHandler{catalog: catalog}
}

// Search handles GET /listings/search/:term. A numeric term filters by price
// ceiling, anything else matches type or breed name.
//
// @Summary      Search listings by price ceiling or type/breed text
// @Tags         listings
// @Produce      json
// @Param        term  path      string  true  "Numeric price ceiling or text term"
// @Success      200   {array}   domain.Listing
// @Router       /listings/search/{term} [get]
func (h *ListingHandler) Search(c echo.Context) error {
	listings, err := h.catalog.Search(c.Request().Context(), c.Param("term"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// List returns all listings.
//
// @Summary      List all listings
// @Tags         listings
// @Produce      json
// @Success      200  {array}  domain.Listing
// @Router       /listings [get]
func (h *ListingHandler) List(c echo.Context) error {
	listings, err := h.catalog.ListListings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Get returns a single listing with its breed resolved.
//
// @Summary      Get a listing by id
// @Tags         listings
// @Produce      json
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  errorResponse
// @Router       /listings/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	listing, err := h.catalog.GetListing(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// Create registers a new listing.
//
// @Summary      Create a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createListingRequest  true  "Listing details"
// @Success      201   {object}  domain.Listing
// @Failure      400   {object}  errorResponse
// @Router       /listings [post]
func (h *ListingHandler) Create(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := h.catalog.CreateListing(c.Request().Context(), ports.CreateListingInput{
		Type:     req.Type,
		Age:      req.Age,
		Price:    req.Price,
		WeightKg: req.WeightKg,
		Info:     req.Info,
		Featured: req.Featured,
		Photo:    req.Photo,
		Sex:      req.Sex,
		BreedID:  req.BreedID,
		AdminID:  req.AdminID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, listing)
}

// Update modifies the mutable fields of a listing.
//
// @Summary      Update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Listing id"
// @Param        body  body      updateListingRequest  true  "Fields to update"
// @Success      200   {object}  domain.Listing
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /listings/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	listing, err := h.catalog.UpdateListing(c.Request().Context(), c.Param("id"), ports.ListingPatch{
		Sex:     req.Sex,
		BreedID: req.BreedID,
		Photo:   req.Photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listing)
}

// Delete removes a listing.
//
// @Summary      Delete a listing
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Listing id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /listings/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteListing(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
