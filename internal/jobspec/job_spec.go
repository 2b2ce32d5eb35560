package jobspec

import (
	"encoding/json"

	"github.com/equinor/radix-training-console/internal/resources"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
)

// JobSpec is a validated, submission ready job configuration.
// It can only be created by a Builder and cannot be changed after it has been built.
type JobSpec struct {
	draft         modelsv1.JobConfigDraft
	totals        modelsv1.ResourceTotals
	generatedName string
}

// Draft returns a copy of the validated configuration
func (s *JobSpec) Draft() modelsv1.JobConfigDraft {
	return s.draft
}

// Totals aggregated resources of the job's workers
func (s *JobSpec) Totals() modelsv1.ResourceTotals {
	return s.totals
}

// GeneratedName unique identifier-safe name of the job object
func (s *JobSpec) GeneratedName() string {
	return s.generatedName
}

// Name of the job as entered by the user
func (s *JobSpec) Name() string {
	return s.draft.Name
}

// Namespace of the job
func (s *JobSpec) Namespace() string {
	return s.draft.Namespace
}

// SlotsPerWorker MPI slots per worker
func (s *JobSpec) SlotsPerWorker() int {
	return resources.SlotsPerWorker(s.draft)
}

// jobSpecJSON is the wire form of JobSpec
// swagger:model JobSpec
type jobSpecJSON struct {
	modelsv1.JobConfigDraft `json:",inline"`

	// GeneratedName unique name of the job object
	//
	// required: true
	// example: mnist-training-x7k2p
	GeneratedName string `json:"generatedName"`

	// Totals aggregated resources of the job's workers
	//
	// required: true
	Totals modelsv1.ResourceTotals `json:"totals"`
}

// MarshalJSON implements json.Marshaler
func (s *JobSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(jobSpecJSON{
		JobConfigDraft: s.draft,
		GeneratedName:  s.generatedName,
		Totals:         s.totals,
	})
}
