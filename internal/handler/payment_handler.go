package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"sellersync/internal/middleware"
	"sellersync/internal/repository"
	"sellersync/internal/service"
	"sellersync/pkg/pagination"
	"sellersync/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// receiptDir is served statically under /uploads by the router.
const receiptDir = "uploads/receipts"

type PaymentHandler struct {
	paymentService service.PaymentService
	reportService  service.ReportService
}

func NewPaymentHandler(paymentService service.PaymentService, reportService service.ReportService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, reportService: reportService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/api/payments")
	{
		payments.GET("", middleware.RequireAuth(), h.ListPayments)
		payments.GET("/summary", middleware.RequireAuth(), h.PaymentSummary)
		payments.GET("/pending", middleware.RequireAuth(), h.ListPending)
		payments.POST("", middleware.RequireManager(), h.RecordPayment)
		payments.PUT("/:id", middleware.RequireManager(), h.UpdatePayment)
		payments.DELETE("/:id", middleware.RequireManager(), h.DeletePayment)
		payments.POST("/pending", middleware.RequireManager(), h.RecordPending)
		payments.PUT("/pending/:id", middleware.RequireManager(), h.UpdatePending)
	}
}

// saveReceipt stores an uploaded receipt image and returns its public path.
// Returns nil when no file was attached.
func saveReceipt(c *gin.Context) (*string, error) {
	file, err := c.FormFile("receipt_image")
	if err != nil {
		return nil, nil
	}

	if err := os.MkdirAll(receiptDir, 0o755); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	dst := filepath.Join(receiptDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return nil, err
	}

	public := "/" + filepath.ToSlash(dst)
	return &public, nil
}

// ListPayments returns paginated payments with optional filters
// @Summary      List payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        page          query     int     false  "Page number (default: 1)"
// @Param        limit         query     int     false  "Items per page (default: 20)"
// @Param        seller_id     query     string  false  "Filter by seller"
// @Param        payment_type  query     string  false  "Filter by type: cash, bank_transfer, upi, cheque"
// @Param        from_date     query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to_date       query     string  false  "End date (YYYY-MM-DD)"
// @Success      200           {object}  response.Response
// @Router       /api/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	params := pagination.Parse(c)

	sellerID, ok := uuidQuery(c, "seller_id")
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

	filter := repository.PaymentFilter{
		SellerID:    sellerID,
		FromDate:    fromDate,
		ToDate:      toDate,
		PaymentType: c.Query("payment_type"),
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, payments, total, params.Page, params.Limit))
}

// PaymentSummary returns the global cash position and monthly trend
// @Summary      Payment summary
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/payments/summary [get]
func (h *PaymentHandler) PaymentSummary(c *gin.Context) {
	summary, err := h.reportService.GlobalSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// RecordPayment records a disbursement to a seller, optionally with a receipt image
// @Summary      Record payment
// @Tags         payments
// @Security     BearerAuth
// @Accept       mpfd
// @Produce      json
// @Param        seller_id      formData  string  true   "Seller ID"
// @Param        amount         formData  string  true   "Amount paid"
// @Param        payment_date   formData  string  true   "Date (YYYY-MM-DD)"
// @Param        payment_type   formData  string  false  "cash, bank_transfer, upi, cheque"
// @Param        receipt_image  formData  file    false  "Receipt image"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/payments [post]
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req service.CreatePaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	imagePath, err := saveReceipt(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to store receipt image: "+err.Error()))
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), c.GetString("userID"), req, imagePath)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// UpdatePayment updates a payment; delete_image=true drops the stored receipt
// @Summary      Update payment
// @Tags         payments
// @Security     BearerAuth
// @Accept       mpfd
// @Produce      json
// @Param        id  path  string  true  "Payment ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	var req service.UpdatePaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	newImagePath, err := saveReceipt(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to store receipt image: "+err.Error()))
		return
	}
	clearImage := c.PostForm("delete_image") == "true"

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), c.Param("id"), req, newImagePath, clearImage)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

// DeletePayment removes a payment record
// @Summary      Delete payment
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Payment ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Payment deleted successfully"}))
}

// ListPending returns open pending amounts ordered by due date
// @Summary      List pending amounts
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/payments/pending [get]
func (h *PaymentHandler) ListPending(c *gin.Context) {
	pending, err := h.paymentService.ListOpenPending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pending))
}

// RecordPending creates a pending amount owed to a seller
// @Summary      Record pending amount
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreatePendingRequest  true  "Pending payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/payments/pending [post]
func (h *PaymentHandler) RecordPending(c *gin.Context) {
	var req service.CreatePendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pending, err := h.paymentService.RecordPending(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, pending))
}

// UpdatePending updates a pending amount, typically marking it partial or paid
// @Summary      Update pending amount
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Pending amount ID"
// @Param        payload  body  service.UpdatePendingRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/payments/pending/{id} [put]
func (h *PaymentHandler) UpdatePending(c *gin.Context) {
	var req service.UpdatePendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	pending, err := h.paymentService.UpdatePending(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pending))
}
