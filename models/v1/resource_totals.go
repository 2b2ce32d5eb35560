package v1

// ResourceTotals aggregated cluster footprint of a job's workers
// swagger:model ResourceTotals
type ResourceTotals struct {
	// TotalGPUs workers x GPUs per worker
	//
	// example: 8
	TotalGPUs int64 `json:"totalGpus"`

	// TotalCPUCores workers x CPU request, in cores
	//
	// example: 16
	TotalCPUCores float64 `json:"totalCpuCores"`

	// TotalCPUMillicores workers x CPU request, in millicores
	//
	// example: 16000
	TotalCPUMillicores int64 `json:"totalCpuMillicores"`

	// TotalMemoryBytes workers x memory request, in bytes
	//
	// example: 17179869184
	TotalMemoryBytes int64 `json:"totalMemoryBytes"`

	// TotalSlots workers x MPI slots per worker
	//
	// example: 4
	TotalSlots int64 `json:"totalSlots"`
}
