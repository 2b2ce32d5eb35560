package mpijobs

import (
	"context"

	"github.com/equinor/radix-training-console/internal/jobspec"
	"github.com/equinor/radix-training-console/internal/manifest"
	"github.com/equinor/radix-training-console/internal/resources"
	"github.com/equinor/radix-training-console/internal/validation"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/pkg/gateway"
	"github.com/equinor/radix-training-console/pkg/jobstore"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -source=handler.go -destination=mock/handler_mock.go -package=mock

// Handler for MPIJob drafts and submissions
type Handler interface {
	// GetDraft Get the initial configuration of a new job
	GetDraft(ctx context.Context) modelsv1.JobConfigDraft
	// ValidateDraft Validate a draft, with aggregated resources when it is valid
	ValidateDraft(ctx context.Context, draft modelsv1.JobConfigDraft) (*modelsv1.DraftValidation, error)
	// RenderManifest Render the MPIJob manifest of a draft as YAML
	RenderManifest(ctx context.Context, draft modelsv1.JobConfigDraft) ([]byte, error)
	// SubmitJob Build a job spec from a draft and submit it
	SubmitJob(ctx context.Context, draft modelsv1.JobConfigDraft) (*gateway.JobHandle, error)
}

type handler struct {
	draft   modelsv1.JobConfigDraft
	builder *jobspec.Builder
	gateway gateway.Gateway
	store   *jobstore.Store
}

// HandlerOption configures the MPIJob handler
type HandlerOption func(*handler)

// WithBuilder sets the job spec builder
func WithBuilder(builder *jobspec.Builder) HandlerOption {
	return func(h *handler) {
		h.builder = builder
	}
}

// WithSubmissionStore records every submitted job as Pending in the store.
// Used when job statuses are not observed from the cluster.
func WithSubmissionStore(store *jobstore.Store) HandlerOption {
	return func(h *handler) {
		h.store = store
	}
}

// New Constructor for the MPIJob handler
func New(draft modelsv1.JobConfigDraft, gateway gateway.Gateway, options ...HandlerOption) Handler {
	h := handler{
		draft:   draft,
		builder: jobspec.NewBuilder(),
		gateway: gateway,
	}
	for _, option := range options {
		option(&h)
	}
	return &h
}

// GetDraft Get the initial configuration of a new job
func (h *handler) GetDraft(_ context.Context) modelsv1.JobConfigDraft {
	return h.draft
}

// ValidateDraft Validate a draft, with aggregated resources when it is valid
func (h *handler) ValidateDraft(_ context.Context, draft modelsv1.JobConfigDraft) (*modelsv1.DraftValidation, error) {
	result := validation.Validate(draft)
	if !result.IsValid() {
		return &modelsv1.DraftValidation{Errors: result}, nil
	}
	totals, err := resources.Aggregate(draft)
	if err != nil {
		return nil, err
	}
	return &modelsv1.DraftValidation{Errors: result, Totals: &totals}, nil
}

// RenderManifest Render the MPIJob manifest of a draft as YAML
func (h *handler) RenderManifest(_ context.Context, draft modelsv1.JobConfigDraft) ([]byte, error) {
	spec, err := h.builder.Build(draft)
	if err != nil {
		return nil, err
	}
	return manifest.RenderYAML(spec)
}

// SubmitJob Build a job spec from a draft and submit it
func (h *handler) SubmitJob(ctx context.Context, draft modelsv1.JobConfigDraft) (*gateway.JobHandle, error) {
	spec, err := h.builder.Build(draft)
	if err != nil {
		return nil, err
	}
	logger := log.Ctx(ctx)
	logger.Debug().Msgf("Submit job %s requesting %d GPUs", spec.GeneratedName(), spec.Totals().TotalGPUs)
	handle, err := h.gateway.Submit(ctx, spec)
	if err != nil {
		return nil, err
	}
	if h.store != nil {
		h.store.Apply(modelsv1.JobSummary{
			Name:         handle.Name,
			Namespace:    handle.Namespace,
			Status:       modelsv1.JobStatusPending,
			Type:         modelsv1.JobTypeMPIJob,
			WorkersTotal: spec.Draft().WorkerCount,
			GPUCount:     spec.Totals().TotalGPUs,
			Created:      handle.SubmittedAt,
		})
	}
	return handle, nil
}
