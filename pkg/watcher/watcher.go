package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/equinor/radix-training-console/internal/manifest"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/models/v1/events"
	"github.com/equinor/radix-training-console/pkg/gateway/kube"
	"github.com/equinor/radix-training-console/pkg/jobstore"
	"github.com/equinor/radix-training-console/pkg/notifications"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/tools/cache"
)

const (
	resyncPeriod  = 0
	notifyTimeout = time.Minute
)

// Watcher Watcher interface
type Watcher interface {
	Stop()
}

type watcher struct {
	informerFactory dynamicinformer.DynamicSharedInformerFactory
	store           *jobstore.Store
	notifier        notifications.Notifier
	existingJobs    map[string]struct{}
	existingMu      sync.Mutex
	stop            chan struct{}
	stopOnce        sync.Once
	logger          zerolog.Logger
}

// Stop Stops the watcher
func (w *watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// NewMPIJobWatcher New MPIJob watcher, keeping the store in sync with the MPIJobs in the namespace and notifying on their changes.
// Jobs existing when the watcher starts are added to the store without notification.
func NewMPIJobWatcher(ctx context.Context, client dynamic.Interface, namespace string, store *jobstore.Store, notifier notifications.Notifier) (Watcher, error) {
	watcher := watcher{
		informerFactory: dynamicinformer.NewFilteredDynamicSharedInformerFactory(client, resyncPeriod, namespace, nil),
		store:           store,
		notifier:        notifier,
		stop:            make(chan struct{}),
		logger:          log.Logger.With().Str("pkg", "mpijob-watcher").Logger(),
	}

	existingJobs, err := getExistingJobs(ctx, client, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to get list of MPIJobs: %w", err)
	}
	watcher.existingJobs = existingJobs

	if notifier.Enabled() {
		store.Subscribe(func(change jobstore.Change) {
			watcher.notify(ctx, change)
		})
	}

	watcher.logger.Info().Msg("Setting up event handlers")
	informer := watcher.informerFactory.ForResource(manifest.GroupVersionResource).Informer()
	_, err = informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc: func(cur interface{}) {
			watcher.apply(cur)
		},
		UpdateFunc: func(old, cur interface{}) {
			watcher.apply(cur)
		},
		DeleteFunc: func(obj interface{}) {
			watcher.delete(obj)
		},
	})
	if err != nil {
		watcher.logger.Error().Err(err).Msg("Failed to setup MPIJob informer")
		return nil, err
	}

	watcher.informerFactory.Start(watcher.stop)
	watcher.logger.Info().Msg("Waiting for MPIJob cache to sync")
	watcher.informerFactory.WaitForCacheSync(ctx.Done())
	watcher.logger.Info().Msg("Completed syncing informer caches")
	return &watcher, nil
}

func (w *watcher) apply(obj interface{}) {
	job, converted := obj.(*unstructured.Unstructured)
	if !converted {
		w.logger.Error().Msg("Failed to cast MPIJob object")
		return
	}
	summary, err := kube.ToJobSummary(job)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to convert MPIJob object")
		return
	}
	if !w.store.Apply(summary) {
		w.logger.Debug().Msgf("MPIJob %s observed in status %s was ignored", summary.Key(), summary.Status)
	}
}

func (w *watcher) delete(obj interface{}) {
	if tombstone, ok := obj.(cache.DeletedFinalStateUnknown); ok {
		obj = tombstone.Obj
	}
	job, converted := obj.(*unstructured.Unstructured)
	if !converted {
		w.logger.Error().Msg("Failed to cast deleted MPIJob object")
		return
	}
	w.logger.Debug().Msgf("MPIJob object was deleted %s/%s", job.GetNamespace(), job.GetName())
	if !w.store.Delete(job.GetNamespace(), job.GetName()) {
		w.store.Forget(job.GetNamespace(), job.GetName())
	}
	w.existingMu.Lock()
	delete(w.existingJobs, key(job.GetNamespace(), job.GetName()))
	w.existingMu.Unlock()
}

func (w *watcher) notify(ctx context.Context, change jobstore.Change) {
	w.existingMu.Lock()
	_, existing := w.existingJobs[change.Job.Key()]
	w.existingMu.Unlock()
	if existing && change.Event == events.Created {
		w.logger.Debug().Msgf("skip existing MPIJob object %s", change.Job.Key())
		return
	}
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		if err := w.notifier.Notify(notifyCtx, change.Event, change.Job); err != nil {
			w.logger.Error().Err(err).Msg("failed to notify")
		}
	}()
}

func getExistingJobs(ctx context.Context, client dynamic.Interface, namespace string) (map[string]struct{}, error) {
	list, err := client.Resource(manifest.GroupVersionResource).Namespace(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, err
	}
	existingJobs := make(map[string]struct{}, len(list.Items))
	for _, item := range list.Items {
		existingJobs[key(item.GetNamespace(), item.GetName())] = struct{}{}
	}
	return existingJobs, nil
}

func key(namespace, name string) string {
	return modelsv1.JobSummary{Namespace: namespace, Name: name}.Key()
}
