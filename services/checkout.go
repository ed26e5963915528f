package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const DefaultCheckoutTimeout = 30 * time.Second

type ResultKind string

const (
	ResultEmpty    ResultKind = "empty"
	ResultComplete ResultKind = "complete"
	ResultPartial  ResultKind = "partial"
)

const (
	TitleBillClosed        = "Bill Closed"
	TitlePaymentSuccessful = "Payment Successful"
)

// PaymentProcessor submits a closed bill for payment and stock consumption.
type PaymentProcessor interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)
}

// CheckoutError means the bill could not be closed; local state is unchanged.
type CheckoutError struct {
	TableID    string
	StatusCode int
	Reason     string
	Timeout    bool
	Err        error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout for table %s failed: %s", e.TableID, e.Reason)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// CheckoutResult is rendered as a single modal by the presentation layer.
type CheckoutResult struct {
	Kind               ResultKind                `json:"kind"`
	Title              string                    `json:"title"`
	Message            string                    `json:"message"`
	Bill               models.BillView           `json:"bill"`
	OrderID            string                    `json:"order_id"`
	StockConsumptions  int                       `json:"stock_consumptions"`
	LiquorConsumptions int                       `json:"liquor_consumptions"`
	MissedIngredients  []models.MissedIngredient `json:"missed_ingredients"`
}

type CheckoutService struct {
	store     *BillStore
	processor PaymentProcessor
	monitor   *CheckoutMonitor
	Timeout   time.Duration
}

func NewCheckoutService(store *BillStore, processor PaymentProcessor, monitor *CheckoutMonitor) *CheckoutService {
	return &CheckoutService{
		store:     store,
		processor: processor,
		monitor:   monitor,
		Timeout:   DefaultCheckoutTimeout,
	}
}

// CloseBill submits the table's active bill and closes it on success.
// Empty bills are submitted like any other.
func (s *CheckoutService) CloseBill(ctx context.Context, tableID string) (*CheckoutResult, error) {
	bill, err := s.store.BeginCheckout(tableID)
	if err != nil {
		return nil, err
	}
	log := utils.TableLogger(tableID).WithField("bill_id", bill.ID)

	req := BuildPaymentRequest(bill)
	log.Infof("Submitting checkout: %d items, subtotal %s, service charge %v",
		len(req.Items), req.Total.String(), req.ServiceCharge)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultCheckoutTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	payment, err := s.processor.ProcessPayment(ctx, req)
	latency := time.Since(start)
	if err != nil {
		s.store.AbortCheckout(tableID)
		cerr := newCheckoutError(tableID, err)
		s.monitor.RecordFailure(latency)
		utils.ErrorLogger.WithField("table_id", tableID).Errorf("Checkout failed after %v: %v", latency, err)
		return nil, cerr
	}
	if payment == nil {
		payment = &models.PaymentResult{}
	}

	closed, err := s.store.CompleteCheckout(tableID, payment.OrderID)
	if err != nil {
		// bill hilang di tengah checkout; backend sudah memproses
		s.monitor.RecordFailure(latency)
		return nil, err
	}

	result := BuildCheckoutResult(closed, payment)
	s.monitor.RecordSuccess(result.Kind, latency)
	log.Infof("Bill closed (%s), order %s", result.Kind, payment.OrderID)
	return result, nil
}

// BuildPaymentRequest maps a bill onto the process-payment body.
// Total is the subtotal before service charge.
func BuildPaymentRequest(bill models.Bill) models.PaymentRequest {
	items := make([]models.PaymentItem, 0, len(bill.Items))
	for _, line := range bill.Items {
		item := models.PaymentItem{
			ID:          line.ID,
			Name:        line.Name,
			Price:       line.Price,
			Quantity:    line.Quantity,
			Category:    line.Category,
			Ingredients: line.Ingredients,
			OriginalID:  line.OriginalID,
		}
		if strings.HasPrefix(line.ID, liquorIDPrefix) {
			item.LiquorID = line.SourceID
		}
		if line.Portion != nil {
			item.VolumeMl = line.Portion.VolumeMl
		}
		items = append(items, item)
	}

	total := decimal.Zero
	for _, line := range bill.Items {
		total = total.Add(line.LineTotal())
	}

	return models.PaymentRequest{
		TableID:       bill.TableID,
		Items:         items,
		Total:         total,
		ServiceCharge: bill.ServiceChargeEnabled,
		PaymentMethod: models.DefaultPaymentMethod,
		CustomerID:    nil,
	}
}

// BuildCheckoutResult distinguishes empty, complete and partially fulfilled bills.
func BuildCheckoutResult(bill models.Bill, payment *models.PaymentResult) *CheckoutResult {
	missed := payment.MissedIngredients
	if missed == nil {
		missed = []models.MissedIngredient{}
	}

	result := &CheckoutResult{
		Bill:               bill.View(),
		OrderID:            payment.OrderID,
		StockConsumptions:  int(payment.StockConsumptions),
		LiquorConsumptions: int(payment.LiquorConsumptions),
		MissedIngredients:  missed,
	}

	var b strings.Builder
	switch {
	case bill.IsEmpty():
		result.Kind = ResultEmpty
		result.Title = TitleBillClosed
		fmt.Fprintf(&b, "Bill for table %s has been closed.\n", bill.TableID)
		b.WriteString("No items were ordered, so no consumption was recorded.")
	default:
		result.Kind = ResultComplete
		if len(missed) > 0 {
			result.Kind = ResultPartial
		}
		result.Title = TitlePaymentSuccessful
		if payment.OrderID != "" {
			fmt.Fprintf(&b, "Order %s processed for table %s.\n", payment.OrderID, bill.TableID)
		} else {
			fmt.Fprintf(&b, "Order processed for table %s.\n", bill.TableID)
		}
		fmt.Fprintf(&b, "Total: %s\n", utils.FormatAmount(bill.DisplayTotal()))
		fmt.Fprintf(&b, "Stock records updated: %d\n", result.StockConsumptions)
		fmt.Fprintf(&b, "Liquor records updated: %d", result.LiquorConsumptions)
		if len(missed) > 0 {
			b.WriteString("\n\nSome ingredients were skipped:")
			for _, m := range missed {
				reason := m.Reason
				if reason == "" {
					reason = "unavailable"
				}
				fmt.Fprintf(&b, "\n- %s (%s)", m.Name, reason)
			}
		}
	}
	result.Message = b.String()
	return result
}

func newCheckoutError(tableID string, err error) *CheckoutError {
	cerr := &CheckoutError{
		TableID: tableID,
		Reason:  err.Error(),
		Timeout: IsTimeout(err),
		Err:     err,
	}
	var berr *BackendError
	if errors.As(err, &berr) {
		cerr.StatusCode = berr.StatusCode
		cerr.Reason = berr.Message
	}
	if cerr.Timeout {
		cerr.Reason = "the payment service did not answer in time"
	}
	return cerr
}
