package handler

import (
	"net/http"

	"sellersync/internal/middleware"
	"sellersync/internal/repository"
	"sellersync/internal/service"
	"sellersync/pkg/pagination"
	"sellersync/pkg/response"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	inventoryService service.InventoryService
	reportService    service.ReportService
}

func NewSaleHandler(inventoryService service.InventoryService, reportService service.ReportService) *SaleHandler {
	return &SaleHandler{inventoryService: inventoryService, reportService: reportService}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	sales := router.Group("/api/sales")
	{
		sales.GET("", middleware.RequireAuth(), h.ListSales)
		sales.GET("/summary", middleware.RequireAuth(), h.SalesSummary)
		sales.POST("", middleware.RequireManager(), h.RecordSale)
		sales.DELETE("/:id", middleware.RequireManager(), h.DeleteSale)
	}
}

// ListSales returns paginated sales with optional filters
// @Summary      List sales
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        page            query     int     false  "Page number (default: 1)"
// @Param        limit           query     int     false  "Items per page (default: 20)"
// @Param        seller_id       query     string  false  "Filter by seller"
// @Param        exhibition_id   query     string  false  "Filter by exhibition"
// @Param        payment_method  query     string  false  "Filter by method: cash, online"
// @Param        from_date       query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to_date         query     string  false  "End date (YYYY-MM-DD)"
// @Success      200             {object}  response.Response
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	params := pagination.Parse(c)

	sellerID, ok := uuidQuery(c, "seller_id")
	if !ok {
		return
	}
	exhibitionID, ok := uuidQuery(c, "exhibition_id")
	if !ok {
		return
	}
	fromDate, ok := dateQuery(c, "from_date")
	if !ok {
		return
	}
	toDate, ok := dateQuery(c, "to_date")
	if !ok {
		return
	}

	filter := repository.SaleFilter{
		SellerID:      sellerID,
		ExhibitionID:  exhibitionID,
		FromDate:      fromDate,
		ToDate:        toDate,
		PaymentMethod: c.Query("payment_method"),
	}

	sales, total, err := h.inventoryService.ListSales(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, sales, total, params.Page, params.Limit))
}

// SalesSummary returns totals, rolling cash, profit and per-method breakdown
// @Summary      Sales summary
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/sales/summary [get]
func (h *SaleHandler) SalesSummary(c *gin.Context) {
	summary, err := h.reportService.SalesSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// RecordSale sells a stock item, flipping it to sold in the same transaction
// @Summary      Record sale
// @Tags         sales
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.RecordSaleRequest  true  "Sale payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/sales [post]
func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req service.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.inventoryService.RecordSale(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, sale))
}

// DeleteSale removes a sale and restores its item to in_stock
// @Summary      Delete sale
// @Tags         sales
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Sale ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	if err := h.inventoryService.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Sale deleted and item returned to stock"}))
}
