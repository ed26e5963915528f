package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// ReceiptNumber follows RCP/<closed date>/<last group of the bill id>.
// Awal UUIDv7 adalah timestamp, jadi pakai ekor random-nya.
func ReceiptNumber(bill models.Bill) string {
	date := bill.CreatedAt
	if bill.ClosedAt != nil {
		date = *bill.ClosedAt
	}
	id := bill.ID
	if i := strings.LastIndex(id, "-"); i >= 0 && i < len(id)-1 {
		id = id[i+1:]
	}
	return fmt.Sprintf("RCP/%s/%s", date.Format("20060102"), id)
}

// RenderReceipt writes a printable PDF receipt for a closed bill.
func RenderReceipt(w io.Writer, bill models.Bill, restaurantName string) error {
	if bill.IsActive() {
		return fmt.Errorf("bill %s is still open", bill.ID)
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, restaurantName, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, "Receipt: "+ReceiptNumber(bill), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Table: "+bill.TableID, "", 1, "L", false, 0, "")
	if bill.OrderID != "" {
		pdf.CellFormat(0, 5, "Order: "+bill.OrderID, "", 1, "L", false, 0, "")
	}
	if bill.ClosedAt != nil {
		pdf.CellFormat(0, 5, "Closed: "+bill.ClosedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// Header tabel item
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(70, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(15, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(20, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(23, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	if bill.IsEmpty() {
		pdf.CellFormat(0, 6, "No items ordered", "", 1, "C", false, 0, "")
	}
	for _, line := range bill.Items {
		pdf.CellFormat(70, 6, line.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, utils.FormatAmount(line.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(23, 6, utils.FormatAmount(line.LineTotal()), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	summary := []struct {
		label string
		value string
	}{
		{"Subtotal", utils.FormatAmount(bill.Total)},
	}
	if bill.ServiceChargeEnabled {
		summary = append(summary, struct {
			label string
			value string
		}{"Service charge (10%)", utils.FormatAmount(bill.ServiceChargeAmount())})
	}
	for _, row := range summary {
		pdf.CellFormat(105, 6, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(23, 6, row.value, "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(105, 7, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(23, 7, utils.FormatAmount(bill.DisplayTotal()), "T", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, "Thank you for dining with us", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	return nil
}
