package kube_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/equinor/radix-training-console/internal/jobspec"
	"github.com/equinor/radix-training-console/internal/manifest"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/pkg/gateway"
	"github.com/equinor/radix-training-console/pkg/gateway/kube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kubeerrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	k8stesting "k8s.io/client-go/testing"
)

func newFakeClient(objects ...runtime.Object) *dynamicfake.FakeDynamicClient {
	return dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{manifest.GroupVersionResource: "MPIJobList"},
		objects...)
}

func buildSpec(t *testing.T) *jobspec.JobSpec {
	spec, err := jobspec.NewBuilder(jobspec.WithNameGenerator(func(base string) string { return base + "-abcde" })).Build(modelsv1.JobConfigDraft{
		Name:          "mnist-training",
		Namespace:     "default",
		Image:         "example/horovod-mnist:latest",
		WorkerCount:   4,
		GPUCount:      2,
		CPURequest:    "4",
		MemoryRequest: "16Gi",
	})
	require.NoError(t, err)
	return spec
}

func TestSubmit_CreatesMPIJob(t *testing.T) {
	client := newFakeClient()
	handle, err := kube.New(client, "").Submit(context.Background(), buildSpec(t))
	require.NoError(t, err)
	assert.Equal(t, "mnist-training-abcde", handle.Name)
	assert.Equal(t, "default", handle.Namespace)
	assert.False(t, handle.SubmittedAt.IsZero())

	created, err := client.Resource(manifest.GroupVersionResource).Namespace("default").Get(context.Background(), "mnist-training-abcde", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "MPIJob", created.GetKind())

	createActions := 0
	for _, action := range client.Actions() {
		if action.GetVerb() == "create" {
			createActions++
		}
	}
	assert.Equal(t, 1, createActions)
}

func TestSubmit_ErrorMapping(t *testing.T) {
	groupResource := manifest.GroupVersionResource.GroupResource()
	tests := []struct {
		name     string
		err      error
		expected gateway.ErrorKind
	}{
		{name: "already exists", err: kubeerrors.NewAlreadyExists(groupResource, "mnist-training-abcde"), expected: gateway.Conflict},
		{name: "quota exceeded", err: kubeerrors.NewForbidden(groupResource, "mnist-training-abcde", errors.New("exceeded quota: gpu-quota, requested: nvidia.com/gpu=8")), expected: gateway.QuotaExceeded},
		{name: "forbidden", err: kubeerrors.NewForbidden(groupResource, "mnist-training-abcde", errors.New("user cannot create")), expected: gateway.Transport},
		{name: "unavailable", err: kubeerrors.NewServiceUnavailable("down"), expected: gateway.Transport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient()
			client.PrependReactor("create", "mpijobs", func(action k8stesting.Action) (bool, runtime.Object, error) {
				return true, nil, tt.err
			})
			handle, err := kube.New(client, "").Submit(context.Background(), buildSpec(t))
			assert.Nil(t, handle)
			var submissionError *gateway.SubmissionError
			require.ErrorAs(t, err, &submissionError)
			assert.Equal(t, tt.expected, submissionError.Kind)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func mpiJobObject(name, namespace string, created time.Time, conditions []interface{}, activeWorkers int64) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "kubeflow.org/v2beta1",
		"kind":       "MPIJob",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": namespace,
		},
		"spec": map[string]interface{}{
			"mpiReplicaSpecs": map[string]interface{}{
				"Worker": map[string]interface{}{
					"replicas": int64(4),
					"template": map[string]interface{}{
						"spec": map[string]interface{}{
							"containers": []interface{}{
								map[string]interface{}{
									"name":  "worker",
									"image": "example/horovod-mnist:latest",
									"resources": map[string]interface{}{
										"limits": map[string]interface{}{"nvidia.com/gpu": "2"},
									},
								},
							},
						},
					},
				},
			},
		},
		"status": map[string]interface{}{
			"conditions": conditions,
			"replicaStatuses": map[string]interface{}{
				"Worker": map[string]interface{}{"active": activeWorkers},
			},
		},
	}}
	obj.SetCreationTimestamp(metav1.NewTime(created))
	return obj
}

func condition(conditionType string) interface{} {
	return map[string]interface{}{"type": conditionType, "status": "True"}
}

func TestToJobSummary(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	obj := mpiJobObject("mnist-training", "default", created, []interface{}{condition("Created"), condition("Running")}, 3)

	summary, err := kube.ToJobSummary(obj)
	require.NoError(t, err)
	assert.Equal(t, modelsv1.JobSummary{
		Name:         "mnist-training",
		Namespace:    "default",
		Status:       modelsv1.JobStatusRunning,
		Type:         modelsv1.JobTypeMPIJob,
		WorkersReady: 3,
		WorkersTotal: 4,
		GPUCount:     8,
		Created:      created,
	}, summary)
}

func TestToJobSummary_Statuses(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		conditions []interface{}
		expected   modelsv1.JobStatus
	}{
		{name: "no conditions", conditions: []interface{}{}, expected: modelsv1.JobStatusPending},
		{name: "created", conditions: []interface{}{condition("Created")}, expected: modelsv1.JobStatusPending},
		{name: "succeeded", conditions: []interface{}{condition("Created"), condition("Running"), condition("Succeeded")}, expected: modelsv1.JobStatusSucceeded},
		{name: "failed", conditions: []interface{}{condition("Created"), condition("Failed")}, expected: modelsv1.JobStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := kube.ToJobSummary(mpiJobObject("job", "default", created, tt.conditions, 0))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, summary.Status)
		})
	}
}

func TestToJobSummary_OtherTrainingJobKinds(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		kind         string
		apiVersion   string
		replicaSpecs string
		expectedType modelsv1.JobType
	}{
		{kind: "TFJob", apiVersion: "kubeflow.org/v1", replicaSpecs: "tfReplicaSpecs", expectedType: modelsv1.JobTypeTFJob},
		{kind: "PyTorchJob", apiVersion: "kubeflow.org/v1", replicaSpecs: "pytorchReplicaSpecs", expectedType: modelsv1.JobTypePyTorchJob},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			obj := &unstructured.Unstructured{Object: map[string]interface{}{
				"apiVersion": tt.apiVersion,
				"kind":       tt.kind,
				"metadata": map[string]interface{}{
					"name":      "bert-finetuning",
					"namespace": "ai-models",
				},
				"spec": map[string]interface{}{
					tt.replicaSpecs: map[string]interface{}{
						"Worker": map[string]interface{}{
							"replicas": int64(2),
							"template": map[string]interface{}{
								"spec": map[string]interface{}{
									"containers": []interface{}{
										map[string]interface{}{
											"name":      "trainer",
											"resources": map[string]interface{}{"limits": map[string]interface{}{"nvidia.com/gpu": "4"}},
										},
									},
								},
							},
						},
					},
				},
				"status": map[string]interface{}{
					"conditions":      []interface{}{condition("Created"), condition("Succeeded")},
					"replicaStatuses": map[string]interface{}{"Worker": map[string]interface{}{"succeeded": int64(2)}},
				},
			}}
			obj.SetCreationTimestamp(metav1.NewTime(created))

			summary, err := kube.ToJobSummary(obj)
			require.NoError(t, err)
			assert.Equal(t, modelsv1.JobSummary{
				Name:         "bert-finetuning",
				Namespace:    "ai-models",
				Status:       modelsv1.JobStatusSucceeded,
				Type:         tt.expectedType,
				WorkersReady: 0,
				WorkersTotal: 2,
				GPUCount:     8,
				Created:      created,
			}, summary)
		})
	}
}

func TestToJobSummary_UnsupportedKind(t *testing.T) {
	obj := &unstructured.Unstructured{}
	obj.SetKind("Deployment")
	_, err := kube.ToJobSummary(obj)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	client := newFakeClient(
		mpiJobObject("mnist-training", "default", created, []interface{}{condition("Running")}, 4),
		mpiJobObject("resnet-training", "vision-models", created, []interface{}{condition("Failed")}, 0),
	)

	all, err := kube.New(client, "").List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	namespaced, err := kube.New(client, "vision-models").List(context.Background())
	require.NoError(t, err)
	require.Len(t, namespaced, 1)
	assert.Equal(t, "resnet-training", namespaced[0].Name)
	assert.Equal(t, modelsv1.JobStatusFailed, namespaced[0].Status)
}
