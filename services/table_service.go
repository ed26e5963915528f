package services

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
)

// TableService builds the tables grid from the configured tables and the
// bills currently open.
type TableService struct {
	store  *BillStore
	tables []string
}

func NewTableService(store *BillStore, tables []string) *TableService {
	return &TableService{store: store, tables: tables}
}

// Summaries lists configured tables first, then any other table with a bill.
func (ts *TableService) Summaries() []models.TableSummary {
	active := make(map[string]models.Bill)
	for _, bill := range ts.store.ActiveBills() {
		active[bill.TableID] = bill
	}

	out := make([]models.TableSummary, 0, len(ts.tables)+len(active))
	listed := make(map[string]bool)
	for _, tableID := range ts.tables {
		listed[tableID] = true
		out = append(out, ts.summary(tableID, active))
	}

	var extra []string
	for tableID := range active {
		if !listed[tableID] {
			extra = append(extra, tableID)
		}
	}
	sort.Strings(extra)
	for _, tableID := range extra {
		out = append(out, ts.summary(tableID, active))
	}
	return out
}

func (ts *TableService) Summary(tableID string) models.TableSummary {
	active := make(map[string]models.Bill)
	if bill, ok := ts.store.Get(tableID); ok {
		active[tableID] = bill
	}
	return ts.summary(tableID, active)
}

func (ts *TableService) summary(tableID string, active map[string]models.Bill) models.TableSummary {
	bill, ok := active[tableID]
	if !ok {
		return models.TableSummary{
			TableID:      tableID,
			Status:       models.TableStatusAvailable,
			DisplayTotal: decimal.Zero,
		}
	}
	count := 0
	for _, line := range bill.Items {
		count += line.Quantity
	}
	return models.TableSummary{
		TableID:      tableID,
		Status:       models.TableStatusOccupied,
		BillID:       bill.ID,
		ItemCount:    count,
		DisplayTotal: bill.DisplayTotal(),
		CheckingOut:  ts.store.CheckingOut(tableID),
	}
}
