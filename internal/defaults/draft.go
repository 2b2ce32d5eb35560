package defaults

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"gopkg.in/yaml.v3"
)

const (
	Namespace      = "default"
	WorkerCount    = 4
	GPUCount       = 2
	CPURequest     = "4"
	MemoryRequest  = "16Gi"
	SlotCount      = 1
	LauncherCPU    = "1"
	LauncherMemory = "1Gi"
)

// Draft the initial configuration offered for a new job
func Draft() modelsv1.JobConfigDraft {
	return modelsv1.JobConfigDraft{
		Namespace:         Namespace,
		WorkerCount:       WorkerCount,
		GPUCount:          GPUCount,
		CPURequest:        CPURequest,
		MemoryRequest:     MemoryRequest,
		MPIImplementation: modelsv1.OpenMPI,
		SlotCount:         SlotCount,
		LauncherCPU:       LauncherCPU,
		LauncherMemory:    LauncherMemory,
	}
}

// NewDraft returns the built-in draft with non-zero fields of overrides applied on top.
// A nil overrides returns the built-in draft.
func NewDraft(overrides *modelsv1.JobConfigDraft) (modelsv1.JobConfigDraft, error) {
	draft := Draft()
	if overrides == nil {
		return draft, nil
	}
	if err := mergo.Merge(&draft, *overrides, mergo.WithOverride); err != nil {
		return modelsv1.JobConfigDraft{}, fmt.Errorf("failed to apply draft overrides: %w", err)
	}
	return draft, nil
}

// LoadFile reads draft overrides from a YAML file
func LoadFile(path string) (*modelsv1.JobConfigDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft defaults file %s: %w", path, err)
	}
	var overrides modelsv1.JobConfigDraft
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse draft defaults file %s: %w", path, err)
	}
	return &overrides, nil
}
