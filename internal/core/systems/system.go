package systems

import (
	"context"
	"time"
)

// System is a per-frame simulation step.
type System interface {
	Name() string
	Update(ctx context.Context, deltaTime float64) error
	GetMetrics() Metrics
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
	LastExecutionTime    time.Time
	EntitiesProcessed    uint64
}

// Observe records one Update that started at start and handled processed
// entities.
func (m *Metrics) Observe(start time.Time, processed int, err error) {
	took := time.Since(start)
	m.ExecutionCount++
	m.TotalExecutionTime += took
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if took > m.MaxExecutionTime {
		m.MaxExecutionTime = took
	}
	m.LastExecutionTime = start
	m.EntitiesProcessed += uint64(processed)
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}
