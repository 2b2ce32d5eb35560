package resources

import (
	"errors"
	"fmt"

	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/pkg/quantity"
)

var (
	// ErrPreconditionViolated is returned when Aggregate is called with a draft that has not passed validation
	ErrPreconditionViolated = errors.New("draft has not been validated")
	// ErrTotalsOverflow is returned when a total does not fit in an int64
	ErrTotalsOverflow = errors.New("resource totals overflow")
)

// Aggregate computes the total footprint of the draft's workers.
// The draft must be valid; quantities that do not parse are reported as ErrPreconditionViolated.
func Aggregate(draft modelsv1.JobConfigDraft) (modelsv1.ResourceTotals, error) {
	cpuMillicores, err := quantity.Parse(draft.CPURequest, quantity.CPU)
	if err != nil {
		return modelsv1.ResourceTotals{}, fmt.Errorf("%w: cpuRequest: %w", ErrPreconditionViolated, err)
	}
	memoryBytes, err := quantity.Parse(draft.MemoryRequest, quantity.Memory)
	if err != nil {
		return modelsv1.ResourceTotals{}, fmt.Errorf("%w: memoryRequest: %w", ErrPreconditionViolated, err)
	}

	if draft.WorkerCount < 0 || draft.GPUCount < 0 {
		return modelsv1.ResourceTotals{}, fmt.Errorf("%w: negative worker or gpu count", ErrPreconditionViolated)
	}
	workers := int64(draft.WorkerCount)
	var overflow bool
	times := func(perWorker int64) int64 {
		total, ok := quantity.Mul(workers, perWorker)
		if !ok {
			overflow = true
		}
		return total
	}
	totals := modelsv1.ResourceTotals{
		TotalGPUs:          times(int64(draft.GPUCount)),
		TotalCPUMillicores: times(cpuMillicores),
		TotalMemoryBytes:   times(memoryBytes),
		TotalSlots:         times(int64(SlotsPerWorker(draft))),
	}
	if overflow {
		return modelsv1.ResourceTotals{}, fmt.Errorf("%w: %w", ErrPreconditionViolated, ErrTotalsOverflow)
	}
	totals.TotalCPUCores = quantity.CoresFromMillicores(totals.TotalCPUMillicores)
	return totals, nil
}

// SlotsPerWorker MPI slots per worker: the slot count with advanced options, one otherwise
func SlotsPerWorker(draft modelsv1.JobConfigDraft) int {
	if draft.AdvancedOptions && draft.SlotCount > 0 {
		return draft.SlotCount
	}
	return 1
}
