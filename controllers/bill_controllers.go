package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type BillController struct {
	Editor   *services.BillEditor
	Checkout *services.CheckoutService
	Tables   *services.TableService
}

func NewBillController(editor *services.BillEditor, checkout *services.CheckoutService, tables *services.TableService) *BillController {
	return &BillController{Editor: editor, Checkout: checkout, Tables: tables}
}

// CreateBill -> membuka bill baru untuk meja
func (bc *BillController) CreateBill(c *gin.Context) {
	tableID := c.Param("table_id")

	bill, err := bc.Editor.CreateBill(tableID)
	if err != nil {
		if existing, ok := bc.existingBill(tableID); ok {
			utils.RespondErrorData(c, statusFor(err), err, existing.View())
			return
		}
		utils.RespondError(c, statusFor(err), err)
		return
	}

	bc.broadcast(bill)
	utils.RespondJSON(c, http.StatusCreated, "Bill created successfully", bill.View())
}

// GetBill -> bill aktif untuk meja
func (bc *BillController) GetBill(c *gin.Context) {
	bill, err := bc.Editor.GetBill(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active bill", bill.View())
}

// AddItem -> menambah item atau porsi ke bill
func (bc *BillController) AddItem(c *gin.Context) {
	tableID := c.Param("table_id")
	var req struct {
		ItemID   string `json:"item_id" binding:"required"`
		Quantity int    `json:"quantity"`
		Portion  string `json:"portion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	line, err := bc.Editor.ResolveLine(req.ItemID, req.Portion)
	if err != nil {
		utils.RespondError(c, statusFor(err), err)
		return
	}
	bc.apply(c, tableID, "Item added", services.AddCommand(line, req.Quantity))
}

// UpdateQuantity -> set quantity untuk satu line
func (bc *BillController) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	bc.apply(c, c.Param("table_id"), "Quantity updated",
		services.UpdateQuantityCommand(c.Param("line_id"), req.Quantity))
}

func (bc *BillController) RemoveItem(c *gin.Context) {
	bc.apply(c, c.Param("table_id"), "Item removed", services.RemoveCommand(c.Param("line_id")))
}

func (bc *BillController) ToggleServiceCharge(c *gin.Context) {
	bc.apply(c, c.Param("table_id"), "Service charge toggled", services.ToggleServiceChargeCommand())
}

// ApplyCommands -> beberapa edit sekaligus, semua atau tidak sama sekali
func (bc *BillController) ApplyCommands(c *gin.Context) {
	var req struct {
		Commands []services.CommandRequest `json:"commands" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cmds := make([]services.EditCommand, 0, len(req.Commands))
	for _, raw := range req.Commands {
		cmd, err := bc.Editor.ResolveCommand(raw)
		if err != nil {
			utils.RespondError(c, statusFor(err), err)
			return
		}
		cmds = append(cmds, cmd)
	}
	bc.apply(c, c.Param("table_id"), "Commands applied", cmds...)
}

// CloseBill -> checkout ke backend lalu tutup bill
func (bc *BillController) CloseBill(c *gin.Context) {
	tableID := c.Param("table_id")

	result, err := bc.Checkout.CloseBill(c.Request.Context(), tableID)
	if err != nil {
		var checkoutErr *services.CheckoutError
		if errors.As(err, &checkoutErr) {
			kds.BroadcastCheckoutFailed(tableID, checkoutErr.Reason)
			if bill, ok := bc.existingBill(tableID); ok {
				utils.RespondErrorData(c, http.StatusBadGateway, err, bill.View())
				return
			}
		}
		utils.RespondError(c, statusFor(err), err)
		return
	}

	kds.BroadcastBillClosed(result.Bill.Bill, result.Title, result.Message)
	kds.BroadcastTableUpdate(bc.Tables.Summary(tableID))
	utils.RespondJSON(c, http.StatusOK, result.Title, result)
}

func (bc *BillController) apply(c *gin.Context, tableID, message string, cmds ...services.EditCommand) {
	bill, err := bc.Editor.Apply(tableID, cmds...)
	if err != nil {
		// bill tidak berubah, kirim balik versi terakhir
		if existing, ok := bc.existingBill(tableID); ok {
			utils.RespondErrorData(c, statusFor(err), err, existing.View())
			return
		}
		utils.RespondError(c, statusFor(err), err)
		return
	}

	bc.broadcast(bill)
	utils.RespondJSON(c, http.StatusOK, message, bill.View())
}

func (bc *BillController) existingBill(tableID string) (models.Bill, bool) {
	bill, err := bc.Editor.GetBill(tableID)
	return bill, err == nil
}

func (bc *BillController) broadcast(bill models.Bill) {
	kds.BroadcastBillUpdate(bill)
	kds.BroadcastTableUpdate(bc.Tables.Summary(bill.TableID))
}
