package jobspec

import (
	"fmt"

	"github.com/equinor/radix-training-console/internal/names"
	"github.com/equinor/radix-training-console/internal/resources"
	"github.com/equinor/radix-training-console/internal/validation"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
)

// ValidationError is returned by Build when the draft is invalid
type ValidationError struct {
	Result modelsv1.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid job configuration: %s", e.Result)
}

// Builder composes validated drafts into job specs
type Builder struct {
	nameGenerator names.Generator
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithNameGenerator sets the generator of the job object name
func WithNameGenerator(generator names.Generator) BuilderOption {
	return func(b *Builder) {
		b.nameGenerator = generator
	}
}

// NewBuilder Constructor for Builder
func NewBuilder(options ...BuilderOption) *Builder {
	builder := Builder{nameGenerator: names.NewJobName}
	for _, option := range options {
		option(&builder)
	}
	return &builder
}

// Build validates the draft and returns an immutable JobSpec.
// An invalid draft returns a *ValidationError with the unchanged ValidationResult and no spec.
func (b *Builder) Build(draft modelsv1.JobConfigDraft) (*JobSpec, error) {
	if result := validation.Validate(draft); !result.IsValid() {
		return nil, &ValidationError{Result: result}
	}
	totals, err := resources.Aggregate(draft)
	if err != nil {
		return nil, err
	}
	if len(draft.MPIImplementation) == 0 {
		draft.MPIImplementation = modelsv1.OpenMPI
	}
	return &JobSpec{
		draft:         draft,
		totals:        totals,
		generatedName: b.nameGenerator(draft.Name),
	}, nil
}

// Build builds a JobSpec with the default Builder
func Build(draft modelsv1.JobConfigDraft) (*JobSpec, error) {
	return NewBuilder().Build(draft)
}
