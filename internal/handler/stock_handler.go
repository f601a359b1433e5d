package handler

import (
	"net/http"

	"sellersync/internal/middleware"
	"sellersync/internal/service"
	"sellersync/pkg/pagination"
	"sellersync/pkg/response"

	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	inventoryService service.InventoryService
	reportService    service.ReportService
}

func NewStockHandler(inventoryService service.InventoryService, reportService service.ReportService) *StockHandler {
	return &StockHandler{inventoryService: inventoryService, reportService: reportService}
}

func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	stock := router.Group("/api/stock")
	{
		stock.GET("", middleware.RequireAuth(), h.ListStock)
		stock.GET("/summary", middleware.RequireAuth(), h.StockSummary)
		stock.POST("", middleware.RequireManager(), h.CreateStockItem)
		stock.PUT("/:id", middleware.RequireManager(), h.UpdateStockItem)
		stock.DELETE("/:id", middleware.RequireManager(), h.DeleteStockItem)
	}
}

// ListStock returns paginated stock items with optional seller/status filter
// @Summary      List stock items
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default: 1)"
// @Param        limit      query     int     false  "Items per page (default: 20)"
// @Param        seller_id  query     string  false  "Filter by seller"
// @Param        status     query     string  false  "Filter by status: in_stock, sold"
// @Success      200        {object}  response.Response
// @Router       /api/stock [get]
func (h *StockHandler) ListStock(c *gin.Context) {
	params := pagination.Parse(c)
	sellerID := c.Query("seller_id")
	status := c.Query("status")

	items, total, err := h.inventoryService.ListStock(c.Request.Context(), sellerID, status, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, items, total, params.Page, params.Limit))
}

// StockSummary returns total in-stock value plus per-status and per-seller counts
// @Summary      Stock summary
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/stock/summary [get]
func (h *StockHandler) StockSummary(c *gin.Context) {
	summary, err := h.reportService.StockSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// CreateStockItem registers a new item against a seller
// @Summary      Create stock item
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateStockItemRequest  true  "Stock item payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/stock [post]
func (h *StockHandler) CreateStockItem(c *gin.Context) {
	var req service.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.CreateStockItem(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, item))
}

// UpdateStockItem updates item fields; status cannot be set directly
// @Summary      Update stock item
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                          true  "Stock item ID"
// @Param        payload  body  service.UpdateStockItemRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/stock/{id} [put]
func (h *StockHandler) UpdateStockItem(c *gin.Context) {
	var req service.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.inventoryService.UpdateStockItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// DeleteStockItem removes an unsold item; sold items are refused
// @Summary      Delete stock item
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Stock item ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) DeleteStockItem(c *gin.Context) {
	if err := h.inventoryService.DeleteStockItem(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Stock item deleted successfully"}))
}
