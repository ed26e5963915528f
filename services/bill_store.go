package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// Keys of the terminal's local key/value store.
const (
	BillsKey       = "restaurant_bills"
	ClosedBillsKey = "closed_bills"
	StaticMenuKey  = "static_menu_items"
)

// MaxClosedBills bounds the locally retained history.
const MaxClosedBills = 500

// Persistence is the read/write port behind the bill store.
type Persistence interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// BillStore maps table id to its active bill. Every mutation runs under one
// lock and is flushed to persistence afterwards on a best-effort basis.
type BillStore struct {
	mu       sync.Mutex
	persist  Persistence
	bills    map[string]*models.Bill
	closed   []models.Bill
	inFlight map[string]bool

	Now func() time.Time
}

func NewBillStore(persist Persistence) *BillStore {
	return &BillStore{
		persist:  persist,
		bills:    make(map[string]*models.Bill),
		inFlight: make(map[string]bool),
		Now:      time.Now,
	}
}

// Load restores bills from persistence. Unreadable state is logged and skipped
// so the terminal can still start with an empty store.
func (s *BillStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.persist.Get(BillsKey)
	if err != nil {
		return fmt.Errorf("load bills: %w", err)
	}
	if ok && len(raw) > 0 {
		var stored map[string]*models.Bill
		if err := json.Unmarshal(raw, &stored); err != nil {
			utils.ErrorLogger.Printf("Discarding unreadable %s: %v", BillsKey, err)
		} else {
			for tableID, bill := range stored {
				if bill == nil {
					continue
				}
				if !bill.IsActive() {
					s.closed = append(s.closed, *bill)
					continue
				}
				if bill.Items == nil {
					bill.Items = []models.BillLineItem{}
				}
				bill.TableID = tableID
				bill.RecomputeTotal()
				s.bills[tableID] = bill
			}
		}
	}

	raw, ok, err = s.persist.Get(ClosedBillsKey)
	if err != nil {
		return fmt.Errorf("load closed bills: %w", err)
	}
	if ok && len(raw) > 0 {
		var history []models.Bill
		if err := json.Unmarshal(raw, &history); err != nil {
			utils.ErrorLogger.Printf("Discarding unreadable %s: %v", ClosedBillsKey, err)
		} else {
			s.closed = append(history, s.closed...)
		}
	}

	utils.InfoLogger.Printf("Bill store loaded: %d active, %d closed", len(s.bills), len(s.closed))
	return nil
}

// Get returns a copy of the table's active bill.
func (s *BillStore) Get(tableID string) (models.Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bill, ok := s.bills[tableID]
	if !ok {
		return models.Bill{}, false
	}
	return bill.Clone(), true
}

// Create inserts an empty active bill for the table.
func (s *BillStore) Create(tableID string) (models.Bill, error) {
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return models.Bill{}, ErrInvalidTable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bills[tableID]; exists {
		return models.Bill{}, fmt.Errorf("table %s: %w", tableID, ErrConflict)
	}

	bill := &models.Bill{
		ID:        newBillID(),
		TableID:   tableID,
		Items:     []models.BillLineItem{},
		Status:    models.BillStatusActive,
		CreatedAt: s.Now(),
	}
	bill.RecomputeTotal()
	s.bills[tableID] = bill
	s.flushBills()

	return bill.Clone(), nil
}

// Update runs fn against a copy of the active bill and commits the copy only
// when fn succeeds, so a failed edit never leaves partial state behind.
func (s *BillStore) Update(tableID string, fn func(*models.Bill) error) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.bills[tableID]
	if !ok {
		return models.Bill{}, fmt.Errorf("table %s: %w", tableID, ErrNoActiveBill)
	}
	if s.inFlight[tableID] {
		return current.Clone(), fmt.Errorf("table %s: %w", tableID, ErrCheckoutInProgress)
	}

	draft := current.Clone()
	if err := fn(&draft); err != nil {
		return current.Clone(), err
	}
	draft.RecomputeTotal()
	s.bills[tableID] = &draft
	s.flushBills()

	return draft.Clone(), nil
}

// BeginCheckout marks the table's checkout as in flight and returns the bill
// snapshot to submit. Only one checkout per table may run at a time.
func (s *BillStore) BeginCheckout(tableID string) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, ok := s.bills[tableID]
	if !ok {
		return models.Bill{}, fmt.Errorf("table %s: %w", tableID, ErrNoActiveBill)
	}
	if s.inFlight[tableID] {
		return models.Bill{}, fmt.Errorf("table %s: %w", tableID, ErrCheckoutInProgress)
	}
	s.inFlight[tableID] = true
	return bill.Clone(), nil
}

// AbortCheckout clears the in-flight flag and leaves the bill untouched.
func (s *BillStore) AbortCheckout(tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, tableID)
}

// CompleteCheckout closes the table's bill, detaches it from the table and
// appends it to the closed history.
func (s *BillStore) CompleteCheckout(tableID, orderID string) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer delete(s.inFlight, tableID)

	bill, ok := s.bills[tableID]
	if !ok {
		return models.Bill{}, fmt.Errorf("table %s: %w", tableID, ErrNoActiveBill)
	}

	closed := bill.Clone()
	now := s.Now()
	closed.Status = models.BillStatusClosed
	closed.ClosedAt = &now
	closed.OrderID = orderID

	delete(s.bills, tableID)
	s.closed = append(s.closed, closed)
	if len(s.closed) > MaxClosedBills {
		s.closed = s.closed[len(s.closed)-MaxClosedBills:]
	}

	s.flushBills()
	s.flushHistory()

	return closed.Clone(), nil
}

func (s *BillStore) CheckingOut(tableID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[tableID]
}

// ActiveBills returns all active bills ordered by table id.
func (s *BillStore) ActiveBills() []models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Bill, 0, len(s.bills))
	for _, bill := range s.bills {
		out = append(out, bill.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableID < out[j].TableID })
	return out
}

// History returns closed bills, most recent first.
func (s *BillStore) History() []models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Bill, 0, len(s.closed))
	for i := len(s.closed) - 1; i >= 0; i-- {
		out = append(out, s.closed[i].Clone())
	}
	return out
}

func (s *BillStore) FindClosed(billID string) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.closed) - 1; i >= 0; i-- {
		if s.closed[i].ID == billID {
			return s.closed[i].Clone(), nil
		}
	}
	return models.Bill{}, fmt.Errorf("bill %s: %w", billID, ErrBillNotFound)
}

// flushBills menyimpan map bill aktif; kegagalan hanya di-log
func (s *BillStore) flushBills() {
	data, err := json.Marshal(s.bills)
	if err != nil {
		utils.ErrorLogger.Printf("Error encoding bills: %v", err)
		return
	}
	if err := s.persist.Set(BillsKey, data); err != nil {
		utils.ErrorLogger.Printf("Error persisting bills: %v", err)
	}
}

func (s *BillStore) flushHistory() {
	data, err := json.Marshal(s.closed)
	if err != nil {
		utils.ErrorLogger.Printf("Error encoding closed bills: %v", err)
		return
	}
	if err := s.persist.Set(ClosedBillsKey, data); err != nil {
		utils.ErrorLogger.Printf("Error persisting closed bills: %v", err)
	}
}

// newBillID returns a time-ordered UUID so ids sort by creation time.
func newBillID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
