package errors

import (
	"sync"
	"time"
)

// ErrorMetricsCollector собирает метрики ошибок для мониторинга
type ErrorMetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByCode     map[int]int64    // По HTTP статус коду
	errorsByEndpoint map[string]int64 // По эндпоинту

	lastErrors    []ErrorRecord // Последние N ошибок
	maxLastErrors int

	startTime time.Time
}

// ErrorRecord запись об ошибке
type ErrorRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Code      int       `json:"code"`
	Endpoint  string    `json:"endpoint"`
	Message   string    `json:"message"`
}

// NewErrorMetricsCollector создает коллектор метрик ошибок
func NewErrorMetricsCollector() *ErrorMetricsCollector {
	return &ErrorMetricsCollector{
		errorsByCode:     make(map[int]int64),
		errorsByEndpoint: make(map[string]int64),
		maxLastErrors:    50,
		startTime:        time.Now(),
	}
}

// Record фиксирует ошибку, отданную клиенту
func (c *ErrorMetricsCollector) Record(endpoint string, code int, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.totalErrors++
	c.errorsByCode[code]++
	c.errorsByEndpoint[endpoint]++

	c.lastErrors = append(c.lastErrors, ErrorRecord{
		Timestamp: time.Now(),
		Code:      code,
		Endpoint:  endpoint,
		Message:   message,
	})
	if len(c.lastErrors) > c.maxLastErrors {
		c.lastErrors = c.lastErrors[len(c.lastErrors)-c.maxLastErrors:]
	}
}

// Snapshot возвращает текущее состояние метрик для выдачи наружу
func (c *ErrorMetricsCollector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	byCode := make(map[int]int64, len(c.errorsByCode))
	for code, count := range c.errorsByCode {
		byCode[code] = count
	}
	byEndpoint := make(map[string]int64, len(c.errorsByEndpoint))
	for endpoint, count := range c.errorsByEndpoint {
		byEndpoint[endpoint] = count
	}
	last := make([]ErrorRecord, len(c.lastErrors))
	copy(last, c.lastErrors)

	return map[string]interface{}{
		"total_errors":       c.totalErrors,
		"errors_by_code":     byCode,
		"errors_by_endpoint": byEndpoint,
		"last_errors":        last,
		"since":              c.startTime.Format(time.RFC3339),
	}
}
