package driver

import "time"

// PerformanceMetrics accumulates per-player timing and action outcomes.
type PerformanceMetrics struct {
	Ticks              uint64        `json:"ticks"`
	LastExecution      time.Duration `json:"last_execution"`
	TotalExecution     time.Duration `json:"total_execution"`
	SuccessfulActions  uint64        `json:"successful_actions"`
	FailedActions      uint64        `json:"failed_actions"`
	BudgetExceeded     uint64        `json:"budget_exceeded"`
	LastBudgetExceeded bool          `json:"last_budget_exceeded"`
}

func (m PerformanceMetrics) LastExecutionMs() float64 { return ms(m.LastExecution) }

func (m PerformanceMetrics) AverageExecutionMs() float64 {
	if m.Ticks == 0 {
		return 0
	}
	return ms(m.TotalExecution) / float64(m.Ticks)
}

func (m *PerformanceMetrics) observe(elapsed time.Duration, exceeded bool) {
	m.Ticks++
	m.LastExecution = elapsed
	m.TotalExecution += elapsed
	m.LastBudgetExceeded = exceeded
	if exceeded {
		m.BudgetExceeded++
	}
}

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }
