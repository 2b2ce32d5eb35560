package notifications

import (
	"context"

	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/models/v1/events"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock

// Notifier to notify about job events and status changes
type Notifier interface {
	// Notify Send notification
	Notify(ctx context.Context, event events.Event, job modelsv1.JobSummary) error
	// Enabled The notifier is enabled and can be used
	Enabled() bool
	// String Describes the notifier
	String() string
}
