package services

import (
	"sync"
	"time"
)

// CheckoutMetrics are counters since the terminal started.
type CheckoutMetrics struct {
	Attempts          int64 `json:"attempts"`
	Succeeded         int64 `json:"succeeded"`
	Failed            int64 `json:"failed"`
	EmptyBills        int64 `json:"empty_bills"`
	PartialBills      int64 `json:"partial_bills"`
	AvgResponseTimeMs int64 `json:"avg_response_time_ms"`
}

// CheckoutMonitor records checkout outcomes. A nil monitor records nothing.
type CheckoutMonitor struct {
	mutex        sync.Mutex
	metrics      CheckoutMetrics
	totalLatency time.Duration
}

func NewCheckoutMonitor() *CheckoutMonitor {
	return &CheckoutMonitor{}
}

func (cm *CheckoutMonitor) RecordSuccess(kind ResultKind, latency time.Duration) {
	if cm == nil {
		return
	}
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.record(latency)
	cm.metrics.Succeeded++
	switch kind {
	case ResultEmpty:
		cm.metrics.EmptyBills++
	case ResultPartial:
		cm.metrics.PartialBills++
	}
}

func (cm *CheckoutMonitor) RecordFailure(latency time.Duration) {
	if cm == nil {
		return
	}
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cm.record(latency)
	cm.metrics.Failed++
}

func (cm *CheckoutMonitor) record(latency time.Duration) {
	cm.metrics.Attempts++
	cm.totalLatency += latency
	cm.metrics.AvgResponseTimeMs = (cm.totalLatency / time.Duration(cm.metrics.Attempts)).Milliseconds()
}

// GetMetrics mengembalikan metrik checkout saat ini
func (cm *CheckoutMonitor) GetMetrics() CheckoutMetrics {
	if cm == nil {
		return CheckoutMetrics{}
	}
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	return cm.metrics
}
