package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/equinor/radix-training-console/internal/jobspec"
	"github.com/equinor/radix-training-console/models/common"
	"github.com/equinor/radix-training-console/pkg/gateway"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const (
	jobsPath = "jobs"

	headerContentType     = "Content-Type"
	headerApplicationJson = "application/json"

	maxErrorBodySize = 64 * 1024
)

// Gateway submits jobs to an orchestration backend over HTTP
type Gateway struct {
	jobsURL string
	client  *retryablehttp.Client
	now     func() time.Time
}

var _ gateway.Gateway = &Gateway{}

// New Constructor for the backend Gateway
func New(baseURL string, client *retryablehttp.Client) (*Gateway, error) {
	if baseURL == "" {
		return nil, errors.New("unable to create backend gateway: empty backend URL")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("unable to create backend gateway: invalid backend URL: %w", err)
	}
	jobsURL, err := url.JoinPath(baseURL, jobsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to create backend gateway: %w", err)
	}
	return &Gateway{jobsURL: jobsURL, client: client, now: time.Now}, nil
}

// Submit posts the job spec to the backend
func (g *Gateway) Submit(ctx context.Context, spec *jobspec.JobSpec) (*gateway.JobHandle, error) {
	body, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job spec %s: %w", spec.GeneratedName(), err)
	}
	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, g.jobsURL, bytes.NewReader(body))
	if err != nil {
		return nil, gateway.NewSubmissionError(gateway.Transport, err)
	}
	request.Header.Set(headerContentType, headerApplicationJson)

	log.Ctx(ctx).Debug().Msgf("Submit job %s to %s", spec.GeneratedName(), g.jobsURL)
	response, err := g.client.Do(request)
	if err != nil {
		return nil, gateway.NewSubmissionError(gateway.Transport, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, toSubmissionError(response)
	}
	return g.readHandle(ctx, response, spec), nil
}

func (g *Gateway) readHandle(ctx context.Context, response *http.Response, spec *jobspec.JobSpec) *gateway.JobHandle {
	var handle gateway.JobHandle
	if err := json.NewDecoder(response.Body).Decode(&handle); err != nil && !errors.Is(err, io.EOF) {
		log.Ctx(ctx).Warn().Err(err).Msgf("failed to read job handle of %s from the backend response", spec.GeneratedName())
	}
	if handle.Name == "" {
		handle.Name = spec.GeneratedName()
	}
	if handle.Namespace == "" {
		handle.Namespace = spec.Namespace()
	}
	if handle.UID == "" {
		handle.UID = uuid.NewString()
	}
	if handle.SubmittedAt.IsZero() {
		handle.SubmittedAt = g.now()
	}
	return &handle
}

func toSubmissionError(response *http.Response) *gateway.SubmissionError {
	var status common.Status
	data, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))
	_ = json.Unmarshal(data, &status)
	message := status.Message
	if message == "" {
		message = http.StatusText(response.StatusCode)
	}
	err := fmt.Errorf("backend responded %d: %s", response.StatusCode, message)

	switch {
	case response.StatusCode == http.StatusConflict:
		return gateway.NewSubmissionError(gateway.Conflict, err)
	case response.StatusCode == http.StatusTooManyRequests:
		return gateway.NewSubmissionError(gateway.QuotaExceeded, err)
	case (response.StatusCode == http.StatusForbidden || response.StatusCode == http.StatusUnprocessableEntity) &&
		status.Reason == common.StatusReasonQuotaExceeded:
		return gateway.NewSubmissionError(gateway.QuotaExceeded, err)
	default:
		return gateway.NewSubmissionError(gateway.Transport, err)
	}
}
