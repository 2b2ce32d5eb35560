package jobs

import (
	"context"
	"time"

	"github.com/equinor/radix-common/utils/slice"
	apierrors "github.com/equinor/radix-training-console/api/errors"
	"github.com/equinor/radix-training-console/internal/query"
	"github.com/equinor/radix-training-console/internal/status"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"k8s.io/apimachinery/pkg/util/duration"
)

//go:generate mockgen -source=handler.go -destination=mock/handler_mock.go -package=mock

// Handler for the job list
type Handler interface {
	// GetJobs Get a page of the jobs matching the request
	GetJobs(ctx context.Context, request query.Request) (*modelsv1.JobList, error)
	// GetJob Get a job
	GetJob(ctx context.Context, namespace, name string) (*modelsv1.JobView, error)
}

// JobLister provides the latest known job summaries
type JobLister interface {
	List() []modelsv1.JobSummary
	Get(namespace, name string) (modelsv1.JobSummary, bool)
}

type handler struct {
	jobs JobLister
	now  func() time.Time
}

// New Constructor for the job list handler
func New(jobs JobLister) Handler {
	return &handler{jobs: jobs, now: time.Now}
}

// GetJobs Get a page of the jobs matching the request
func (h *handler) GetJobs(_ context.Context, request query.Request) (*modelsv1.JobList, error) {
	if err := request.Validate(); err != nil {
		return nil, apierrors.NewBadRequest(err.Error())
	}
	result := query.Query(h.jobs.List(), request)
	now := h.now()
	return &modelsv1.JobList{
		Jobs: slice.Map(result.Visible, func(job modelsv1.JobSummary) modelsv1.JobView {
			return toJobView(job, now)
		}),
		TotalMatched: result.TotalMatched,
		Page:         request.Page,
		PerPage:      request.PerPage,
	}, nil
}

// GetJob Get a job
func (h *handler) GetJob(_ context.Context, namespace, name string) (*modelsv1.JobView, error) {
	job, found := h.jobs.Get(namespace, name)
	if !found {
		return nil, apierrors.NewNotFound("job", namespace+"/"+name)
	}
	view := toJobView(job, h.now())
	return &view, nil
}

func toJobView(job modelsv1.JobSummary, now time.Time) modelsv1.JobView {
	return modelsv1.JobView{
		JobSummary:  job,
		Age:         duration.HumanDuration(job.Age(now)),
		StatusColor: string(status.StatusColor(job.Status)),
		Terminal:    status.IsTerminal(job.Status),
	}
}
