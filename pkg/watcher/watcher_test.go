package watcher_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/equinor/radix-training-console/internal/manifest"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/models/v1/events"
	"github.com/equinor/radix-training-console/pkg/jobstore"
	"github.com/equinor/radix-training-console/pkg/notifications/mock"
	"github.com/equinor/radix-training-console/pkg/watcher"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
)

const (
	namespace   = "default"
	waitFor     = 5 * time.Second
	pollingTick = 10 * time.Millisecond
)

func mpiJob(name string, conditionTypes ...string) *unstructured.Unstructured {
	conditions := make([]interface{}, 0, len(conditionTypes))
	for _, conditionType := range conditionTypes {
		conditions = append(conditions, map[string]interface{}{"type": conditionType, "status": "True"})
	}
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "kubeflow.org/v2beta1",
		"kind":       "MPIJob",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": namespace,
		},
		"spec": map[string]interface{}{
			"mpiReplicaSpecs": map[string]interface{}{
				"Worker": map[string]interface{}{"replicas": int64(2)},
			},
		},
		"status": map[string]interface{}{"conditions": conditions},
	}}
}

type jobMatcher struct {
	name   string
	status modelsv1.JobStatus
}

func (m jobMatcher) Matches(x interface{}) bool {
	job, ok := x.(modelsv1.JobSummary)
	return ok && job.Name == m.name && job.Status == m.status
}

func (m jobMatcher) String() string {
	return fmt.Sprintf("job %s in status %s", m.name, m.status)
}

func Test_MPIJobWatcher(t *testing.T) {
	client := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{manifest.GroupVersionResource: "MPIJobList"},
		mpiJob("existing-job", "Created", "Running"))
	jobs := client.Resource(manifest.GroupVersionResource).Namespace(namespace)

	ctrl := gomock.NewController(t)
	notified := make(chan events.Event, 10)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().Enabled().Return(true).AnyTimes()
	notifier.EXPECT().Notify(gomock.Any(), events.Created, jobMatcher{name: "new-job", status: modelsv1.JobStatusPending}).
		DoAndReturn(func(_ context.Context, event events.Event, _ modelsv1.JobSummary) error {
			notified <- event
			return nil
		}).Times(1)
	notifier.EXPECT().Notify(gomock.Any(), events.Updated, jobMatcher{name: "new-job", status: modelsv1.JobStatusSucceeded}).
		DoAndReturn(func(_ context.Context, event events.Event, _ modelsv1.JobSummary) error {
			notified <- event
			return nil
		}).Times(1)
	notifier.EXPECT().Notify(gomock.Any(), events.Deleted, jobMatcher{name: "existing-job", status: modelsv1.JobStatusRunning}).
		DoAndReturn(func(_ context.Context, event events.Event, _ modelsv1.JobSummary) error {
			notified <- event
			return nil
		}).Times(1)

	store := jobstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mpiJobWatcher, err := watcher.NewMPIJobWatcher(ctx, client, namespace, store, notifier)
	require.NoError(t, err)
	defer mpiJobWatcher.Stop()

	assert.Eventually(t, func() bool {
		job, found := store.Get(namespace, "existing-job")
		return found && job.Status == modelsv1.JobStatusRunning
	}, waitFor, pollingTick)

	_, err = jobs.Create(ctx, mpiJob("new-job", "Created"), metav1.CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, events.Created, waitForEvent(t, notified))

	_, err = jobs.Update(ctx, mpiJob("new-job", "Created", "Running", "Succeeded"), metav1.UpdateOptions{})
	require.NoError(t, err)
	assert.Equal(t, events.Updated, waitForEvent(t, notified))
	job, found := store.Get(namespace, "new-job")
	require.True(t, found)
	assert.Equal(t, modelsv1.JobStatusSucceeded, job.Status)
	assert.Equal(t, 2, job.WorkersTotal)

	require.NoError(t, jobs.Delete(ctx, "new-job", metav1.DeleteOptions{}))
	assert.Eventually(t, func() bool {
		_, found := store.Get(namespace, "new-job")
		return !found
	}, waitFor, pollingTick)

	require.NoError(t, jobs.Delete(ctx, "existing-job", metav1.DeleteOptions{}))
	assert.Equal(t, events.Deleted, waitForEvent(t, notified))
	assert.Equal(t, 0, store.Len())
}

func waitForEvent(t *testing.T, notified <-chan events.Event) events.Event {
	select {
	case event := <-notified:
		return event
	case <-time.After(waitFor):
		require.Fail(t, "timed out waiting for notification")
		return ""
	}
}

func Test_MPIJobWatcher_NotifierDisabled(t *testing.T) {
	client := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{manifest.GroupVersionResource: "MPIJobList"})

	ctrl := gomock.NewController(t)
	notifier := mock.NewMockNotifier(ctrl)
	notifier.EXPECT().Enabled().Return(false).AnyTimes()

	store := jobstore.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	mpiJobWatcher, err := watcher.NewMPIJobWatcher(ctx, client, namespace, store, notifier)
	require.NoError(t, err)
	defer mpiJobWatcher.Stop()

	_, err = client.Resource(manifest.GroupVersionResource).Namespace(namespace).Create(ctx, mpiJob("new-job"), metav1.CreateOptions{})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, found := store.Get(namespace, "new-job")
		return found
	}, waitFor, pollingTick)
}

func Test_NullWatcher(t *testing.T) {
	nullWatcher := watcher.NewNullWatcher()
	assert.NotPanics(t, nullWatcher.Stop)
}
