package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type ReceiptController struct {
	Store          *services.BillStore
	RestaurantName string
}

func NewReceiptController(store *services.BillStore, restaurantName string) *ReceiptController {
	return &ReceiptController{Store: store, RestaurantName: restaurantName}
}

// GetHistory -> bill yang sudah ditutup, terbaru dulu. ?table_id= untuk filter
func (rc *ReceiptController) GetHistory(c *gin.Context) {
	tableID := c.Query("table_id")

	history := rc.Store.History()
	views := make([]models.BillView, 0, len(history))
	for _, bill := range history {
		if tableID != "" && bill.TableID != tableID {
			continue
		}
		views = append(views, bill.View())
	}
	utils.RespondJSON(c, http.StatusOK, "Closed bills", views)
}

// DownloadReceipt -> PDF struk untuk bill yang sudah ditutup
func (rc *ReceiptController) DownloadReceipt(c *gin.Context) {
	bill, err := rc.Store.FindClosed(c.Param("bill_id"))
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	if err := services.RenderReceipt(&buf, bill, rc.RestaurantName); err != nil {
		utils.ErrorLogger.Printf("Failed to render receipt for bill %s: %v", bill.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%s.pdf", bill.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
