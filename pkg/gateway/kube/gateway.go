package kube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/equinor/radix-training-console/internal/jobspec"
	"github.com/equinor/radix-training-console/internal/manifest"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/pkg/gateway"
	"github.com/rs/zerolog/log"
	kubeerrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/dynamic"
)

// Gateway submits jobs as MPIJob objects through the Kubernetes API
type Gateway struct {
	client    dynamic.Interface
	namespace string
	now       func() time.Time
}

var (
	_ gateway.Gateway   = &Gateway{}
	_ gateway.JobSource = &Gateway{}
)

// New Constructor for the Kubernetes Gateway. Jobs are listed in namespace, or in all namespaces when it is empty.
func New(client dynamic.Interface, namespace string) *Gateway {
	return &Gateway{client: client, namespace: namespace, now: time.Now}
}

// Submit creates the MPIJob object of the job spec
func (g *Gateway) Submit(ctx context.Context, spec *jobspec.JobSpec) (*gateway.JobHandle, error) {
	obj, err := manifest.Render(spec)
	if err != nil {
		return nil, err
	}
	logger := log.Ctx(ctx)
	logger.Debug().Msgf("Create MPIJob %s in namespace %s", spec.GeneratedName(), spec.Namespace())
	created, err := g.client.Resource(manifest.GroupVersionResource).Namespace(spec.Namespace()).Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		return nil, toSubmissionError(err)
	}
	submittedAt := created.GetCreationTimestamp().UTC()
	if submittedAt.IsZero() {
		submittedAt = g.now()
	}
	logger.Info().Msgf("Created MPIJob %s in namespace %s", created.GetName(), created.GetNamespace())
	return &gateway.JobHandle{
		Name:        created.GetName(),
		Namespace:   created.GetNamespace(),
		UID:         string(created.GetUID()),
		SubmittedAt: submittedAt,
	}, nil
}

// List gets summaries of the MPIJobs in the gateway's namespace
func (g *Gateway) List(ctx context.Context) ([]modelsv1.JobSummary, error) {
	list, err := g.client.Resource(manifest.GroupVersionResource).Namespace(g.namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list MPIJobs: %w", err)
	}
	summaries := make([]modelsv1.JobSummary, 0, len(list.Items))
	for i := range list.Items {
		summary, err := ToJobSummary(&list.Items[i])
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("skip job")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func toSubmissionError(err error) *gateway.SubmissionError {
	switch {
	case kubeerrors.IsAlreadyExists(err):
		return gateway.NewSubmissionError(gateway.Conflict, err)
	case kubeerrors.IsForbidden(err) && strings.Contains(err.Error(), "exceeded quota"):
		return gateway.NewSubmissionError(gateway.QuotaExceeded, err)
	default:
		return gateway.NewSubmissionError(gateway.Transport, err)
	}
}
