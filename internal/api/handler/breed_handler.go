package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agrolink/livestock-api/internal/core/ports"
)

// BreedHandler handles breed catalog endpoints.
type BreedHandler struct {
	catalog ports.CatalogService
}

func NewBreedHandler(catalog ports.CatalogService) *BreedHandler {
	return &BreedHandler{catalog: catalog}
}

// @Summary      List breeds
// @Tags         breeds
// @Produce      json
// @Success      200  {array}  domain.Breed
// @Router       /breeds [get]
func (h *BreedHandler) List(c echo.Context) error {
	breeds, err := h.catalog.ListBreeds(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, breeds)
}

// @Summary      Create a breed
// @Tags         breeds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      breedRequest  true  "Breed name"
// @Success      201   {object}  domain.Breed
// @Failure      400   {object}  errorResponse
// @Router       /breeds [post]
func (h *BreedHandler) Create(c echo.Context) error {
	var req breedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	breed, err := h.catalog.CreateBreed(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, breed)
}

// @Summary      Rename a breed
// @Tags         breeds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Breed id"
// @Param        body  body      breedRequest  true  "New breed name"
// @Success      200   {object}  domain.Breed
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /breeds/{id} [put]
func (h *BreedHandler) Update(c echo.Context) error {
	var req breedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	breed, err := h.catalog.UpdateBreed(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, breed)
}

// @Summary      Delete a breed
// @Tags         breeds
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Breed id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /breeds/{id} [delete]
func (h *BreedHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteBreed(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
