package handler

import (
	"net/http"

	"vtc/internal/middleware"
	"vtc/internal/service"
	"vtc/pkg/pagination"
	"vtc/pkg/response"

	"github.com/gin-gonic/gin"
)

type TariffHandler struct {
	tariffService service.TariffService
}

func NewTariffHandler(tariffService service.TariffService) *TariffHandler {
	return &TariffHandler{tariffService: tariffService}
}

func (h *TariffHandler) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/tariff-rules")
	{
		rules.GET("/:id", middleware.RequirePermission("tariffs.read"), h.GetRule)
		rules.POST("", middleware.RequirePermission("tariffs.write"), h.CreateRule)
		rules.PUT("/:id", middleware.RequirePermission("tariffs.write"), h.UpdateRule)
		rules.DELETE("/:id", middleware.RequirePermission("tariffs.write"), h.DeleteRule)
	}

	router.GET("/vehicles/:id/tariff-rules", middleware.RequirePermission("tariffs.read"), h.ListRulesByVehicle)
}

// CreateRule creates a tariff rule with its typed payload
// @Summary      Create tariff rule
// @Description  Creates a rule of type adjustment, package or promo_code attached to a vehicle
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateTariffRuleRequest  true  "Create Rule Payload"
// @Success      201      {object}  response.Response{data=model.TariffRule}
// @Failure      400      {object}  response.Response
// @Router       /tariff-rules [post]
func (h *TariffHandler) CreateRule(c *gin.Context) {
	var req service.CreateTariffRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rule, err := h.tariffService.CreateRule(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// UpdateRule modifies rule metadata and scheduling
// @Summary      Update tariff rule
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Rule ID"
// @Param        payload  body      service.UpdateTariffRuleRequest  true  "Update Rule Payload"
// @Success      200      {object}  response.Response{data=model.TariffRule}
// @Failure      400      {object}  response.Response
// @Router       /tariff-rules/{id} [put]
func (h *TariffHandler) UpdateRule(c *gin.Context) {
	var req service.UpdateTariffRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rule, err := h.tariffService.UpdateRule(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// DeleteRule removes a tariff rule
// @Summary      Delete tariff rule
// @Tags         tariffs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /tariff-rules/{id} [delete]
func (h *TariffHandler) DeleteRule(c *gin.Context) {
	if err := h.tariffService.DeleteRule(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Tariff rule deleted successfully"))
}

// GetRule returns one rule with its payload
// @Summary      Get tariff rule
// @Tags         tariffs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response{data=model.TariffRule}
// @Failure      404  {object}  response.Response
// @Router       /tariff-rules/{id} [get]
func (h *TariffHandler) GetRule(c *gin.Context) {
	rule, err := h.tariffService.GetRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// ListRulesByVehicle returns a vehicle's rules ordered by priority
// @Summary      List tariff rules for a vehicle
// @Tags         tariffs
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Vehicle ID"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Items per page"
// @Success      200    {object}  response.Response{data=object}
// @Failure      400    {object}  response.Response
// @Router       /vehicles/{id}/tariff-rules [get]
func (h *TariffHandler) ListRulesByVehicle(c *gin.Context) {
	p := pagination.Parse(c)

	rules, total, err := h.tariffService.ListRulesByVehicle(c.Request.Context(), c.Param("id"), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"rules": rules,
		"total": total,
		"page":  p.Page,
		"limit": p.Limit,
	}))
}
