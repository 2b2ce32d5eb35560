package kube

import (
	"fmt"

	"github.com/equinor/radix-training-console/internal/manifest"
	"github.com/equinor/radix-training-console/internal/status"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

type trainingJob struct {
	Spec   trainingJobSpec   `json:"spec"`
	Status trainingJobStatus `json:"status"`
}

type trainingJobSpec struct {
	MPIReplicaSpecs     map[string]replicaSpec `json:"mpiReplicaSpecs,omitempty"`
	TFReplicaSpecs      map[string]replicaSpec `json:"tfReplicaSpecs,omitempty"`
	PyTorchReplicaSpecs map[string]replicaSpec `json:"pytorchReplicaSpecs,omitempty"`
}

type replicaSpec struct {
	Replicas *int32                 `json:"replicas,omitempty"`
	Template corev1.PodTemplateSpec `json:"template"`
}

type trainingJobStatus struct {
	Conditions      []jobCondition           `json:"conditions,omitempty"`
	ReplicaStatuses map[string]replicaStatus `json:"replicaStatuses,omitempty"`
}

type jobCondition struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

type replicaStatus struct {
	Active    int32 `json:"active,omitempty"`
	Succeeded int32 `json:"succeeded,omitempty"`
	Failed    int32 `json:"failed,omitempty"`
}

// ToJobSummary converts a Kubeflow training job object to a JobSummary
func ToJobSummary(obj *unstructured.Unstructured) (modelsv1.JobSummary, error) {
	jobType, err := jobTypeOf(obj.GetKind())
	if err != nil {
		return modelsv1.JobSummary{}, err
	}
	var job trainingJob
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(obj.Object, &job); err != nil {
		return modelsv1.JobSummary{}, fmt.Errorf("failed to convert %s %s/%s: %w", obj.GetKind(), obj.GetNamespace(), obj.GetName(), err)
	}

	conditions := make([]status.Condition, 0, len(job.Status.Conditions))
	for _, condition := range job.Status.Conditions {
		conditions = append(conditions, status.Condition{Type: condition.Type, Status: condition.Status})
	}
	worker := job.Spec.replicaSpecs(jobType)[manifest.ReplicaTypeWorker]
	workersTotal := 0
	if worker.Replicas != nil {
		workersTotal = int(*worker.Replicas)
	}
	return modelsv1.JobSummary{
		Name:         obj.GetName(),
		Namespace:    obj.GetNamespace(),
		Status:       status.FromConditions(conditions),
		Type:         jobType,
		WorkersReady: int(job.Status.ReplicaStatuses[manifest.ReplicaTypeWorker].Active),
		WorkersTotal: workersTotal,
		GPUCount:     int64(workersTotal) * gpusPerReplica(worker),
		Created:      obj.GetCreationTimestamp().UTC(),
	}, nil
}

func (s trainingJobSpec) replicaSpecs(jobType modelsv1.JobType) map[string]replicaSpec {
	switch jobType {
	case modelsv1.JobTypeTFJob:
		return s.TFReplicaSpecs
	case modelsv1.JobTypePyTorchJob:
		return s.PyTorchReplicaSpecs
	default:
		return s.MPIReplicaSpecs
	}
}

func jobTypeOf(kind string) (modelsv1.JobType, error) {
	switch jobType := modelsv1.JobType(kind); jobType {
	case modelsv1.JobTypeMPIJob, modelsv1.JobTypeTFJob, modelsv1.JobTypePyTorchJob:
		return jobType, nil
	default:
		return "", fmt.Errorf("unsupported job kind %q", kind)
	}
}

func gpusPerReplica(spec replicaSpec) int64 {
	var gpus int64
	for _, container := range spec.Template.Spec.Containers {
		if limit, ok := container.Resources.Limits[manifest.ResourceGPU]; ok {
			gpus += limit.Value()
		}
	}
	return gpus
}
