package handler

import (
	"net/http"

	"vtc/internal/middleware"
	"vtc/internal/service"
	"vtc/pkg/response"

	"github.com/gin-gonic/gin"
)

type EstimateHandler struct {
	estimateService service.EstimateService
}

func NewEstimateHandler(estimateService service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

func (h *EstimateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/estimates", middleware.RequireRole("admin", "manager", "client"), h.EstimateTrip)
}

// EstimateTrip computes the priced estimate for a trip
// @Summary      Estimate trip cost
// @Description  Computes the standard cost for a vehicle and trip, then applies the applicable tariff rules. Promo codes are not applied here.
// @Tags         estimates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.EstimateRequest  true  "Estimate Payload"
// @Success      200      {object}  response.Response{data=service.EstimateResponse}
// @Failure      400      {object}  response.Response
// @Router       /estimates [post]
func (h *EstimateHandler) EstimateTrip(c *gin.Context) {
	var req service.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	estimate, err := h.estimateService.EstimateTrip(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, estimate))
}
