package v1

import (
	"fmt"
	"sort"
	"strings"
)

// Draft field names used as ValidationResult keys
const (
	FieldName              = "name"
	FieldNamespace         = "namespace"
	FieldImage             = "image"
	FieldWorkerCount       = "workerCount"
	FieldGPUCount          = "gpuCount"
	FieldCPURequest        = "cpuRequest"
	FieldMemoryRequest     = "memoryRequest"
	FieldMPIImplementation = "mpiImplementation"
	FieldSlotCount         = "slotCount"
	FieldLauncherCPU       = "launcherCpu"
	FieldLauncherMemory    = "launcherMemory"
)

// ValidationResult maps a draft field name to its validation message. An empty result means the draft is valid.
type ValidationResult map[string]string

// IsValid reports whether no field has an error
func (r ValidationResult) IsValid() bool {
	return len(r) == 0
}

// Fields returns the names of the invalid fields in sorted order
func (r ValidationResult) Fields() []string {
	fields := make([]string, 0, len(r))
	for field := range r {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (r ValidationResult) String() string {
	parts := make([]string, 0, len(r))
	for _, field := range r.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, r[field]))
	}
	return strings.Join(parts, "; ")
}
