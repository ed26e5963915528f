package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CheckoutController struct {
	Monitor *services.CheckoutMonitor
}

func NewCheckoutController(monitor *services.CheckoutMonitor) *CheckoutController {
	return &CheckoutController{Monitor: monitor}
}

func (cc *CheckoutController) GetMetrics(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Checkout metrics", cc.Monitor.GetMetrics())
}
