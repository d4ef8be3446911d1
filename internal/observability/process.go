package observability

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/annel0/voxel-sim/internal/logging"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessSampler периодически снимает потребление ресурсов процессом
type ProcessSampler struct {
	proc     *process.Process
	metrics  *Metrics
	interval time.Duration
}

// NewProcessSampler создаёт сэмплер для текущего процесса
func NewProcessSampler(metrics *Metrics, interval time.Duration) (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("gopsutil: %w", err)
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ProcessSampler{proc: proc, metrics: metrics, interval: interval}, nil
}

// Sample снимает одно измерение: RSS в байтах и загрузку CPU в процентах
func (s *ProcessSampler) Sample(ctx context.Context) (uint64, float64, error) {
	mem, err := s.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("memory info: %w", err)
	}
	cpu, err := s.proc.CPUPercentWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu percent: %w", err)
	}
	s.metrics.setProcess(mem.RSS, cpu)
	return mem.RSS, cpu, nil
}

// Run снимает измерения до отмены контекста
func (s *ProcessSampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, _, err := s.Sample(ctx); err != nil {
				logging.Warn("Не удалось снять метрики процесса: %v", err)
			}
		}
	}
}
