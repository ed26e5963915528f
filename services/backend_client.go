package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// BackendError is a non-success answer from the inventory/order backend.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.StatusCode < 300 {
		return fmt.Sprintf("backend rejected request: %s", e.Message)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// BackendClient talks to the remote inventory/order REST service.
type BackendClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewBackendClient(baseURL, token string, timeout time.Duration) *BackendClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (bc *BackendClient) FetchLiquor(ctx context.Context) ([]models.RemoteLiquor, error) {
	var resp models.BackendResponse[[]models.RemoteLiquor]
	if err := bc.do(ctx, http.MethodGet, "/liquor", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (bc *BackendClient) FetchFoodItems(ctx context.Context) ([]models.RemoteFoodItem, error) {
	var resp models.BackendResponse[[]models.RemoteFoodItem]
	if err := bc.do(ctx, http.MethodGet, "/food-items", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (bc *BackendClient) UpdateLiquorPortions(ctx context.Context, liquorID string, portions []models.PortionPrice) error {
	var resp models.BackendResponse[json.RawMessage]
	path := "/liquor/" + url.PathEscape(liquorID) + "/portions"
	return bc.do(ctx, http.MethodPut, path, models.PortionUpdateRequest{Portions: portions}, &resp)
}

func (bc *BackendClient) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	var resp models.BackendResponse[models.PaymentResult]
	if err := bc.do(ctx, http.MethodPost, "/orders/process-payment", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// envelope is the part of every response needed to judge success.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) reason() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "request was not successful"
}

func (bc *BackendClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, bc.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bc.token != "" {
		req.Header.Set("Authorization", "Bearer "+bc.token)
	}

	start := time.Now()
	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}
	utils.InfoLogger.Debugf("%s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start))

	var env envelope
	envErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if envErr == nil {
			msg = env.reason()
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &BackendError{StatusCode: resp.StatusCode, Message: msg}
	}
	if envErr != nil {
		return fmt.Errorf("error decoding response: %w", envErr)
	}
	if !env.Success {
		return &BackendError{StatusCode: resp.StatusCode, Message: env.reason()}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("error decoding response data: %w", err)
	}
	return nil
}

// IsTimeout reports whether err came from a deadline or client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
