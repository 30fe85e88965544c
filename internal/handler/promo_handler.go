package handler

import (
	"net/http"

	"vtc/internal/middleware"
	"vtc/internal/service"
	"vtc/pkg/response"

	"github.com/gin-gonic/gin"
)

type PromoHandler struct {
	promoService service.PromoService
}

func NewPromoHandler(promoService service.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

func (h *PromoHandler) RegisterRoutes(router *gin.RouterGroup) {
	promo := router.Group("/promo-codes")
	promo.Use(middleware.RequirePermission("promo.redeem"))
	{
		promo.POST("/validate", h.Validate)
		promo.POST("/redeem", h.Redeem)
	}
}

// Validate checks a promo code without consuming a redemption
// @Summary      Validate promo code
// @Description  Checks the code against the vehicle's rules and returns the discounted tariff
// @Tags         promo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ValidatePromoRequest  true  "Validate Payload"
// @Success      200      {object}  response.Response{data=service.PromoResultResponse}
// @Failure      400      {object}  response.Response
// @Router       /promo-codes/validate [post]
func (h *PromoHandler) Validate(c *gin.Context) {
	var req service.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.promoService.ValidatePromo(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Redeem applies a promo code to a booking and consumes one usage
// @Summary      Redeem promo code
// @Tags         promo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.RedeemPromoRequest  true  "Redeem Payload"
// @Success      200      {object}  response.Response{data=model.Booking}
// @Failure      400      {object}  response.Response
// @Router       /promo-codes/redeem [post]
func (h *PromoHandler) Redeem(c *gin.Context) {
	var req service.RedeemPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	booking, err := h.promoService.RedeemPromo(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, booking))
}
