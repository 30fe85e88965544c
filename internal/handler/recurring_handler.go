package handler

import (
	"net/http"

	"vtc/internal/middleware"
	"vtc/internal/service"
	"vtc/pkg/pagination"
	"vtc/pkg/response"

	"github.com/gin-gonic/gin"
)

type RecurringHandler struct {
	recurringService service.RecurringService
}

func NewRecurringHandler(recurringService service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

func (h *RecurringHandler) RegisterRoutes(router *gin.RouterGroup) {
	recurring := router.Group("/recurring-bookings")
	{
		recurring.POST("/preview", middleware.RequirePermission("recurring.write"), h.Preview)
		recurring.POST("/:id/finalize", middleware.RequirePermission("recurring.write"), h.Finalize)
		recurring.POST("/:id/cancel", middleware.RequirePermission("recurring.write"), h.Cancel)
		recurring.GET("", middleware.RequirePermission("bookings.read"), h.ListTemplates)
		recurring.GET("/:id", middleware.RequirePermission("bookings.read"), h.GetTemplate)
	}
}

// Preview expands a recurrence into scheduled occurrences
// @Summary      Preview recurring bookings
// @Description  Generates the occurrence schedule from a base booking and recurrence config. Occurrences are persisted for later finalization but no bookings are created yet.
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.PreviewRecurringRequest  true  "Preview Payload"
// @Success      200      {object}  response.Response{data=service.PreviewRecurringResponse}
// @Failure      400      {object}  response.Response
// @Router       /recurring-bookings/preview [post]
func (h *RecurringHandler) Preview(c *gin.Context) {
	var req service.PreviewRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	preview, err := h.recurringService.PreviewOccurrences(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, preview))
}

// Finalize materializes previewed occurrences into real bookings
// @Summary      Finalize recurring bookings
// @Description  Creates one booking per kept occurrence, deletes unselected occurrences and deactivates the template
// @Tags         recurring
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Template ID"
// @Param        payload  body      service.FinalizeRecurringRequest  true  "Finalize Payload"
// @Success      201      {object}  response.Response{data=object}
// @Failure      400      {object}  response.Response
// @Router       /recurring-bookings/{id}/finalize [post]
func (h *RecurringHandler) Finalize(c *gin.Context) {
	var req service.FinalizeRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	bookings, err := h.recurringService.FinalizeBookings(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	}))
}

// Cancel abandons a previewed template
// @Summary      Cancel recurring template
// @Tags         recurring
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /recurring-bookings/{id}/cancel [post]
func (h *RecurringHandler) Cancel(c *gin.Context) {
	if err := h.recurringService.CancelTemplate(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Recurring template cancelled"))
}

// GetTemplate returns a template with its config and occurrences
// @Summary      Get recurring template
// @Tags         recurring
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response{data=model.RecurringBookingTemplate}
// @Failure      404  {object}  response.Response
// @Router       /recurring-bookings/{id} [get]
func (h *RecurringHandler) GetTemplate(c *gin.Context) {
	template, err := h.recurringService.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, template))
}

// ListTemplates returns templates with pagination
// @Summary      List recurring templates
// @Tags         recurring
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Only active templates"
// @Param        page    query     int   false  "Page number"
// @Param        limit   query     int   false  "Items per page"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /recurring-bookings [get]
func (h *RecurringHandler) ListTemplates(c *gin.Context) {
	p := pagination.Parse(c)
	activeOnly := c.Query("active") == "true"

	templates, total, err := h.recurringService.ListTemplates(c.Request.Context(), activeOnly, p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch templates"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"templates": templates,
		"total":     total,
		"page":      p.Page,
		"limit":     p.Limit,
	}))
}
