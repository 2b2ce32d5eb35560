package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/models/v1/events"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

type webhookNotifier struct {
	webhookURL string
	client     *retryablehttp.Client
	now        func() time.Time
}

// NewWebhookNotifier Constructor for a notifier posting job events to a webhook. The notifier is disabled when webhookURL is empty.
func NewWebhookNotifier(webhookURL string, client *retryablehttp.Client) Notifier {
	return &webhookNotifier{
		webhookURL: webhookURL,
		client:     client,
		now:        time.Now,
	}
}

func (notifier *webhookNotifier) Enabled() bool {
	return len(notifier.webhookURL) > 0
}

func (notifier *webhookNotifier) String() string {
	if notifier.Enabled() {
		return fmt.Sprintf("Webhook notifier is enabled. Webhook: %s", notifier.webhookURL)
	}
	return "Webhook notifier is disabled"
}

func (notifier *webhookNotifier) Notify(ctx context.Context, event events.Event, job modelsv1.JobSummary) error {
	if !notifier.Enabled() {
		return nil
	}
	jobEvent := events.JobEvent{
		JobSummary: job,
		Event:      event,
		Updated:    notifier.now(),
	}
	eventJson, err := json.Marshal(jobEvent)
	if err != nil {
		return fmt.Errorf("failed to serialize event of job %s: %w", job.Key(), err)
	}
	log.Ctx(ctx).Trace().Msg(string(eventJson))

	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, notifier.webhookURL, bytes.NewReader(eventJson))
	if err != nil {
		return fmt.Errorf("failed to create notification request for job %s: %w", job.Key(), err)
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := notifier.client.Do(request)
	if err != nil {
		return fmt.Errorf("failed to notify on %s event of job %s: %w", event, job.Key(), err)
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("webhook responded %d on %s event of job %s", response.StatusCode, event, job.Key())
	}
	return nil
}
