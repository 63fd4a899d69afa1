package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// SweetHandler handles HTTP requests for catalog operations. Authentication
// and role gating run in middleware before any of these methods.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// Create handles POST /api/sweets.
//
// @Summary      Add a sweet to the catalog
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet details"
// @Success      201   {object}  sweetResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.NewValidationError("Name, category, price, and quantity are required")
	}

	sweet, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSweetResponse(sweet))
}

// List handles GET /api/sweets.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   sweetResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponses(sweets))
}

// Search handles GET /api/sweets/search?query=. An absent or empty query
// yields an empty list, not the full catalog.
//
// @Summary      Search sweets by name, category, or exact price
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Substring or numeric price"
// @Success      200    {array}   sweetResponse
// @Failure      401    {object}  messageResponse
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	sweets, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponses(sweets))
}

// Update handles PUT /api/sweets/:id with a partial body.
//
// @Summary      Update a sweet (partial)
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to change"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Delete handles DELETE /api/sweets/:id (admin only, gated in middleware).
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Sweet id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Sweet deleted successfully"})
}

// Purchase handles POST /api/sweets/:id/purchase.
//
// @Summary      Purchase units of a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Sweet id"
// @Param        body  body      stockRequest  true  "Units to purchase"
// @Success      200   {object}  stockResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	quantity, err := bindQuantity(c)
	if err != nil {
		return err
	}

	sweet, err := h.service.Purchase(c.Request().Context(), c.Param("id"), quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockResponse{
		Message: "Purchase successful",
		Sweet:   toSweetResponse(sweet),
	})
}

// Restock handles POST /api/sweets/:id/restock (admin only, gated in middleware).
//
// @Summary      Restock units of a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Sweet id"
// @Param        body  body      stockRequest  true  "Units to add"
// @Success      200   {object}  stockResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	quantity, err := bindQuantity(c)
	if err != nil {
		return err
	}

	sweet, err := h.service.Restock(c.Request().Context(), c.Param("id"), quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockResponse{
		Message: "Restock successful",
		Sweet:   toSweetResponse(sweet),
	})
}

func bindQuantity(c echo.Context) (int, error) {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if req.Quantity == nil {
		return 0, domain.NewValidationError("Quantity is required")
	}
	return *req.Quantity, nil
}
