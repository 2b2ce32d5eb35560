package events

import (
	"time"

	v1 "github.com/equinor/radix-training-console/models/v1"
)

// JobEvent holds a job's summary on change of its status
// swagger:model JobEvent
type JobEvent struct {
	// JobSummary the job as observed after the change
	v1.JobSummary `json:",inline"`

	// Event Event type
	//
	// required: true
	// example: Updated
	Event Event `json:"event"`

	// Updated time the event was raised
	//
	// required: true
	// example: 2006-01-02T15:04:05Z
	Updated time.Time `json:"updated"`
}

// Event kind of change of a job
type Event string

const (
	Created Event = "Created"
	Updated Event = "Updated"
	Deleted Event = "Deleted"
)
