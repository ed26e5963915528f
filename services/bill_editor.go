package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type CommandKind string

const (
	CommandAddItem             CommandKind = "add_item"
	CommandRemoveItem          CommandKind = "remove_item"
	CommandUpdateQuantity      CommandKind = "update_quantity"
	CommandToggleServiceCharge CommandKind = "toggle_service_charge"
)

// EditCommand is one bill edit. Add commands carry the resolved line.
type EditCommand struct {
	Kind       CommandKind
	Line       *models.BillLineItem
	LineItemID string
	Quantity   int
}

func AddCommand(line models.BillLineItem, quantity int) EditCommand {
	return EditCommand{Kind: CommandAddItem, Line: &line, Quantity: quantity}
}

func RemoveCommand(lineItemID string) EditCommand {
	return EditCommand{Kind: CommandRemoveItem, LineItemID: lineItemID}
}

func UpdateQuantityCommand(lineItemID string, quantity int) EditCommand {
	return EditCommand{Kind: CommandUpdateQuantity, LineItemID: lineItemID, Quantity: quantity}
}

func ToggleServiceChargeCommand() EditCommand {
	return EditCommand{Kind: CommandToggleServiceCharge}
}

// ReduceBill applies one command and returns the new bill. It performs no I/O
// and never mutates its input; on error the input is the state to keep.
func ReduceBill(bill models.Bill, cmd EditCommand) (models.Bill, error) {
	if !bill.IsActive() {
		return bill, fmt.Errorf("bill %s: %w", bill.ID, ErrNoActiveBill)
	}

	next := bill.Clone()

	switch cmd.Kind {
	case CommandAddItem:
		if cmd.Line == nil || cmd.Line.ID == "" {
			return bill, ErrItemNotFound
		}
		qty := cmd.Quantity
		if qty <= 0 {
			qty = 1
		}
		if idx := next.FindLine(cmd.Line.ID); idx >= 0 {
			next.Items[idx].Quantity += qty
		} else {
			line := *cmd.Line
			line.Quantity = qty
			next.Items = append(next.Items, line)
		}

	case CommandRemoveItem:
		idx := next.FindLine(cmd.LineItemID)
		if idx < 0 {
			return bill, nil
		}
		next.Items = append(next.Items[:idx], next.Items[idx+1:]...)

	case CommandUpdateQuantity:
		// turun ke nol harus lewat remove
		if cmd.Quantity <= 0 {
			return bill, ErrInvalidQuantity
		}
		idx := next.FindLine(cmd.LineItemID)
		if idx < 0 {
			return bill, nil
		}
		next.Items[idx].Quantity = cmd.Quantity

	case CommandToggleServiceCharge:
		next.ServiceChargeEnabled = !next.ServiceChargeEnabled

	default:
		return bill, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}

	next.RecomputeTotal()
	return next, nil
}

// ItemResolver looks up catalog items by id.
type ItemResolver interface {
	Lookup(id string) (models.MenuItem, bool)
}

// BillEditor exposes bill edits keyed by table id.
type BillEditor struct {
	store   *BillStore
	catalog ItemResolver
}

func NewBillEditor(store *BillStore, catalog ItemResolver) *BillEditor {
	return &BillEditor{store: store, catalog: catalog}
}

func (e *BillEditor) CreateBill(tableID string) (models.Bill, error) {
	bill, err := e.store.Create(tableID)
	if err != nil {
		return bill, err
	}
	utils.TableLogger(tableID).Infof("Bill %s created", bill.ID)
	return bill, nil
}

func (e *BillEditor) GetBill(tableID string) (models.Bill, error) {
	bill, ok := e.store.Get(tableID)
	if !ok {
		return models.Bill{}, fmt.Errorf("table %s: %w", tableID, ErrNoActiveBill)
	}
	return bill, nil
}

// AddItem adds a whole-unit item; repeated adds merge into one line.
// Hard liquor harus lewat AddPortion.
func (e *BillEditor) AddItem(tableID string, item models.MenuItem, quantity int) (models.Bill, error) {
	if NeedsPortion(item) {
		return models.Bill{}, fmt.Errorf("%s: %w", item.Name, ErrPortionRequired)
	}
	return e.Apply(tableID, AddCommand(models.NewLineItem(item, quantity), quantity))
}

// AddPortion adds a liquor pour derived from item.
func (e *BillEditor) AddPortion(tableID string, item models.MenuItem, label string, quantity int) (models.Bill, error) {
	line, err := ResolvePortion(item, label)
	if err != nil {
		return models.Bill{}, err
	}
	return e.Apply(tableID, AddCommand(line, quantity))
}

func (e *BillEditor) RemoveItem(tableID, lineItemID string) (models.Bill, error) {
	return e.Apply(tableID, RemoveCommand(lineItemID))
}

func (e *BillEditor) UpdateQuantity(tableID, lineItemID string, quantity int) (models.Bill, error) {
	return e.Apply(tableID, UpdateQuantityCommand(lineItemID, quantity))
}

func (e *BillEditor) ToggleServiceCharge(tableID string) (models.Bill, error) {
	return e.Apply(tableID, ToggleServiceChargeCommand())
}

// Apply runs the commands in order. Either all of them apply or none do.
func (e *BillEditor) Apply(tableID string, cmds ...EditCommand) (models.Bill, error) {
	return e.store.Update(tableID, func(bill *models.Bill) error {
		current := *bill
		for _, cmd := range cmds {
			next, err := ReduceBill(current, cmd)
			if err != nil {
				return err
			}
			current = next
		}
		*bill = current
		return nil
	})
}

// CommandRequest is the wire form of an edit command.
type CommandRequest struct {
	Kind       CommandKind `json:"kind" binding:"required"`
	ItemID     string      `json:"item_id"`
	Portion    string      `json:"portion"`
	LineItemID string      `json:"line_item_id"`
	Quantity   int         `json:"quantity"`
}

// ResolveCommand turns a wire command into an EditCommand, resolving catalog
// items and portions for add commands.
func (e *BillEditor) ResolveCommand(req CommandRequest) (EditCommand, error) {
	switch req.Kind {
	case CommandAddItem:
		line, err := e.ResolveLine(req.ItemID, req.Portion)
		if err != nil {
			return EditCommand{}, err
		}
		return AddCommand(line, req.Quantity), nil
	case CommandRemoveItem:
		return RemoveCommand(req.LineItemID), nil
	case CommandUpdateQuantity:
		return UpdateQuantityCommand(req.LineItemID, req.Quantity), nil
	case CommandToggleServiceCharge:
		return ToggleServiceChargeCommand(), nil
	}
	return EditCommand{}, fmt.Errorf("%w: %q", ErrUnknownCommand, req.Kind)
}

// ResolveLine builds the line for a catalog item and an optional portion label.
func (e *BillEditor) ResolveLine(itemID, portion string) (models.BillLineItem, error) {
	item, ok := e.catalog.Lookup(itemID)
	if !ok {
		return models.BillLineItem{}, fmt.Errorf("%s: %w", itemID, ErrItemNotFound)
	}
	if portion != "" {
		return ResolvePortion(item, portion)
	}
	if NeedsPortion(item) {
		return models.BillLineItem{}, fmt.Errorf("%s: %w", item.Name, ErrPortionRequired)
	}
	return models.NewLineItem(item, 1), nil
}
