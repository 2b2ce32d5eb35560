package jobstore

import (
	"cmp"
	"slices"
	"sync"

	"github.com/equinor/radix-training-console/internal/status"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/models/v1/events"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Change an accepted change of a job in the store
type Change struct {
	Event events.Event
	Job   modelsv1.JobSummary
}

// Observer is called with every accepted change, outside the store's lock
type Observer func(Change)

// Store holds the latest observed summary of each job
type Store struct {
	mu        sync.RWMutex
	jobs      map[string]modelsv1.JobSummary
	observers []Observer
	logger    zerolog.Logger
}

// New Constructor for Store
func New() *Store {
	return &Store{
		jobs:   make(map[string]modelsv1.JobSummary),
		logger: log.Logger.With().Str("pkg", "jobstore").Logger(),
	}
}

// Subscribe registers an observer of accepted changes
func (s *Store) Subscribe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Apply records an observation of a job. Observations of an unknown status, or with a status
// the job cannot transition to from its current status, are ignored and Apply returns false.
func (s *Store) Apply(job modelsv1.JobSummary) bool {
	if !status.IsKnown(job.Status) {
		s.logger.Debug().Msgf("ignore job %s with unknown status %q", job.Key(), job.Status)
		return false
	}
	s.mu.Lock()
	existing, found := s.jobs[job.Key()]
	if found && !status.CanTransition(existing.Status, job.Status) {
		s.mu.Unlock()
		s.logger.Debug().Msgf("ignore transition of job %s from %s to %s", job.Key(), existing.Status, job.Status)
		return false
	}
	if found && existing == job {
		s.mu.Unlock()
		return true
	}
	s.jobs[job.Key()] = job
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	event := events.Updated
	if !found {
		event = events.Created
	}
	publish(observers, Change{Event: event, Job: job})
	return true
}

// Delete removes a job that has not reached a terminal status and reports whether it was removed.
// A terminal job is kept, since its status never changes.
func (s *Store) Delete(namespace, name string) bool {
	key := key(namespace, name)
	s.mu.Lock()
	existing, found := s.jobs[key]
	if !found || status.IsTerminal(existing.Status) {
		s.mu.Unlock()
		return false
	}
	delete(s.jobs, key)
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	publish(observers, Change{Event: events.Deleted, Job: existing})
	return true
}

// Forget removes a job regardless of its status without publishing a change.
// Used when the job object no longer exists in the backend.
func (s *Store) Forget(namespace, name string) bool {
	key := key(namespace, name)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, found := s.jobs[key]
	delete(s.jobs, key)
	return found
}

// Get the latest summary of a job
func (s *Store) Get(namespace, name string) (modelsv1.JobSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, found := s.jobs[key(namespace, name)]
	return job, found
}

// List returns a copy of all jobs, oldest first, then by name
func (s *Store) List() []modelsv1.JobSummary {
	s.mu.RLock()
	jobs := make([]modelsv1.JobSummary, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	s.mu.RUnlock()

	slices.SortFunc(jobs, func(a, b modelsv1.JobSummary) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Namespace, b.Namespace))
	})
	return jobs
}

// Len number of jobs in the store
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

func publish(observers []Observer, change Change) {
	for _, observer := range observers {
		observer(change)
	}
}

func key(namespace, name string) string {
	return modelsv1.JobSummary{Namespace: namespace, Name: name}.Key()
}
