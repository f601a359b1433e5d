package handler

import (
	"net/http"

	"sellersync/internal/middleware"
	"sellersync/internal/service"
	"sellersync/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExhibitionHandler struct {
	exhibitionService service.ExhibitionService
}

func NewExhibitionHandler(exhibitionService service.ExhibitionService) *ExhibitionHandler {
	return &ExhibitionHandler{exhibitionService: exhibitionService}
}

func (h *ExhibitionHandler) RegisterRoutes(router *gin.RouterGroup) {
	exhibitions := router.Group("/api/exhibitions")
	{
		exhibitions.GET("", middleware.RequireAuth(), h.ListExhibitions)
		exhibitions.GET("/summary", middleware.RequireAuth(), h.ExhibitionSummary)
		exhibitions.GET("/:id", middleware.RequireAuth(), h.GetExhibition)
		exhibitions.POST("", middleware.RequireManager(), h.CreateExhibition)
		exhibitions.PUT("/:id", middleware.RequireManager(), h.UpdateExhibition)
		exhibitions.DELETE("/:id", middleware.RequireManager(), h.DeleteExhibition)
	}
}

// ListExhibitions returns exhibitions with their sales performance totals
// @Summary      List exhibitions
// @Tags         exhibitions
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status: upcoming, active, completed"
// @Success      200     {object}  response.Response
// @Router       /api/exhibitions [get]
func (h *ExhibitionHandler) ListExhibitions(c *gin.Context) {
	exhibitions, err := h.exhibitionService.ListExhibitions(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, exhibitions))
}

// ExhibitionSummary returns status counts and overall exhibition sales totals
// @Summary      Exhibition summary
// @Tags         exhibitions
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/exhibitions/summary [get]
func (h *ExhibitionHandler) ExhibitionSummary(c *gin.Context) {
	summary, err := h.exhibitionService.GetSummary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// GetExhibition returns an exhibition with its attached sales
// @Summary      Get exhibition detail
// @Tags         exhibitions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Exhibition ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/exhibitions/{id} [get]
func (h *ExhibitionHandler) GetExhibition(c *gin.Context) {
	detail, err := h.exhibitionService.GetExhibitionDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, detail))
}

// CreateExhibition creates a new exhibition
// @Summary      Create exhibition
// @Tags         exhibitions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateExhibitionRequest  true  "Exhibition payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/exhibitions [post]
func (h *ExhibitionHandler) CreateExhibition(c *gin.Context) {
	var req service.CreateExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	exhibition, err := h.exhibitionService.CreateExhibition(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, exhibition))
}

// UpdateExhibition updates an existing exhibition
// @Summary      Update exhibition
// @Tags         exhibitions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                           true  "Exhibition ID"
// @Param        payload  body  service.UpdateExhibitionRequest  true  "Update payload"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/exhibitions/{id} [put]
func (h *ExhibitionHandler) UpdateExhibition(c *gin.Context) {
	var req service.UpdateExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	exhibition, err := h.exhibitionService.UpdateExhibition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, exhibition))
}

// DeleteExhibition removes an exhibition; attached sales are detached, not deleted
// @Summary      Delete exhibition
// @Tags         exhibitions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path      string  true  "Exhibition ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/exhibitions/{id} [delete]
func (h *ExhibitionHandler) DeleteExhibition(c *gin.Context) {
	if err := h.exhibitionService.DeleteExhibition(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Exhibition deleted successfully"}))
}
