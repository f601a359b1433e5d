package handler

import (
	"fmt"
	"net/http"
	"time"

	"sellersync/internal/middleware"
	"sellersync/internal/service"
	"sellersync/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports")
	{
		reports.GET("/financial", middleware.RequireAuth(), h.FinancialReport)
		reports.GET("/export/json", middleware.RequireAuth(), h.ExportJSON)
	}
}

// FinancialReport returns the per-seller financial report. The date window
// filters payments only.
// @Summary      Financial report
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        from_date  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to_date    query     string  false  "End date (YYYY-MM-DD)"
// @Param        seller_id  query     string  false  "Restrict to one seller"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Router       /api/reports/financial [get]
func (h *ReportHandler) FinancialReport(c *gin.Context) {
	report, err := h.reportService.FinancialReport(
		c.Request.Context(),
		c.Query("from_date"),
		c.Query("to_date"),
		c.Query("seller_id"),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// ExportJSON streams a full-database backup as a JSON attachment
// @Summary      Export ledger data
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  model.ExportBundle
// @Router       /api/reports/export/json [get]
func (h *ReportHandler) ExportJSON(c *gin.Context) {
	bundle, err := h.reportService.ExportSnapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("sellersync-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, bundle)
}
