package handler

import (
	"net/http"

	"sellersync/internal/middleware"
	"sellersync/internal/service"
	"sellersync/pkg/pagination"
	"sellersync/pkg/response"

	"github.com/gin-gonic/gin"
)

type SellerHandler struct {
	sellerService service.SellerService
}

func NewSellerHandler(sellerService service.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

func (h *SellerHandler) RegisterRoutes(router *gin.RouterGroup) {
	sellers := router.Group("/api/sellers")
	{
		sellers.GET("", middleware.RequireAuth(), h.ListSellers)
		sellers.GET("/:id", middleware.RequireAuth(), h.GetSeller)
		sellers.POST("", middleware.RequireManager(), h.CreateSeller)
		sellers.PUT("/:id", middleware.RequireManager(), h.UpdateSeller)
		sellers.DELETE("/:id", middleware.RequireManager(), h.DeleteSeller)
	}
}

// ListSellers returns paginated sellers with optional status/search filter
// @Summary      List sellers
// @Tags         sellers
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int     false  "Page number (default: 1)"
// @Param        limit   query     int     false  "Items per page (default: 20)"
// @Param        status  query     string  false  "Filter by status: active, inactive"
// @Param        search  query     string  false  "Search by name or location"
// @Success      200     {object}  response.Response
// @Router       /api/sellers [get]
func (h *SellerHandler) ListSellers(c *gin.Context) {
	params := pagination.Parse(c)
	status := c.Query("status")
	search := c.Query("search")

	sellers, total, err := h.sellerService.ListSellers(c.Request.Context(), status, search, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, sellers, total, params.Page, params.Limit))
}

// GetSeller returns a seller with its balance, recent payments and open pending amounts
// @Summary      Get seller detail
// @Tags         sellers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Seller ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sellers/{id} [get]
func (h *SellerHandler) GetSeller(c *gin.Context) {
	detail, err := h.sellerService.GetSellerDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// CreateSeller creates a new seller
// @Summary      Create seller
// @Tags         sellers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateSellerRequest  true  "Seller payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/sellers [post]
func (h *SellerHandler) CreateSeller(c *gin.Context) {
	var req service.CreateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	seller, err := h.sellerService.CreateSeller(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, seller))
}

// UpdateSeller updates an existing seller; absent fields are left untouched
// @Summary      Update seller
// @Tags         sellers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Seller ID"
// @Param        payload  body  service.UpdateSellerRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sellers/{id} [put]
func (h *SellerHandler) UpdateSeller(c *gin.Context) {
	var req service.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	seller, err := h.sellerService.UpdateSeller(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, seller))
}

// DeleteSeller soft-deletes a seller
// @Summary      Delete seller
// @Tags         sellers
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Seller ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sellers/{id} [delete]
func (h *SellerHandler) DeleteSeller(c *gin.Context) {
	if err := h.sellerService.DeleteSeller(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Seller deleted successfully"}))
}
