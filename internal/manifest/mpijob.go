package manifest

import (
	"fmt"
	"strings"

	"github.com/equinor/radix-training-console/internal/defaults"
	"github.com/equinor/radix-training-console/internal/jobspec"
	"github.com/equinor/radix-training-console/pkg/quantity"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"
)

const (
	Group   = "kubeflow.org"
	Version = "v2beta1"
	Kind    = "MPIJob"

	ReplicaTypeLauncher = "Launcher"
	ReplicaTypeWorker   = "Worker"

	// ResourceGPU extended resource name of NVIDIA GPUs
	ResourceGPU corev1.ResourceName = "nvidia.com/gpu"

	LabelManagedBy   = "app.kubernetes.io/managed-by"
	LabelJobName     = "training.console/job-name"
	LabelReplicaType = "training.console/replica-type"
	ManagedByValue   = "radix-training-console"

	cleanPodPolicyRunning = "Running"
)

// GroupVersionResource of the MPIJob custom resource
var GroupVersionResource = schema.GroupVersionResource{Group: Group, Version: Version, Resource: "mpijobs"}

type mpiJob struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`
	Spec              mpiJobSpec `json:"spec"`
}

type mpiJobSpec struct {
	SlotsPerWorker    *int32                 `json:"slotsPerWorker"`
	MPIImplementation string                 `json:"mpiImplementation"`
	RunPolicy         runPolicy              `json:"runPolicy"`
	MPIReplicaSpecs   map[string]replicaSpec `json:"mpiReplicaSpecs"`
}

type runPolicy struct {
	CleanPodPolicy string `json:"cleanPodPolicy"`
}

type replicaSpec struct {
	Replicas      *int32                 `json:"replicas"`
	RestartPolicy corev1.RestartPolicy   `json:"restartPolicy"`
	Template      corev1.PodTemplateSpec `json:"template"`
}

// Render builds the MPIJob custom resource for the job spec
func Render(spec *jobspec.JobSpec) (*unstructured.Unstructured, error) {
	job, err := buildMPIJob(spec)
	if err != nil {
		return nil, err
	}
	object, err := runtime.DefaultUnstructuredConverter.ToUnstructured(job)
	if err != nil {
		return nil, fmt.Errorf("failed to convert MPIJob %s: %w", spec.GeneratedName(), err)
	}
	return &unstructured.Unstructured{Object: object}, nil
}

// RenderYAML renders the MPIJob custom resource for the job spec as YAML
func RenderYAML(spec *jobspec.JobSpec) ([]byte, error) {
	job, err := Render(spec)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(job.Object)
}

func buildMPIJob(spec *jobspec.JobSpec) (*mpiJob, error) {
	draft := spec.Draft()
	workerResources, err := resourceList(draft.CPURequest, draft.MemoryRequest, int64(draft.GPUCount))
	if err != nil {
		return nil, err
	}
	launcherCPU, launcherMemory := defaults.LauncherCPU, defaults.LauncherMemory
	if draft.AdvancedOptions {
		launcherCPU, launcherMemory = draft.LauncherCPU, draft.LauncherMemory
	}
	launcherResources, err := resourceList(launcherCPU, launcherMemory, 0)
	if err != nil {
		return nil, err
	}

	labels := map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelJobName:   spec.Name(),
	}
	return &mpiJob{
		TypeMeta: metav1.TypeMeta{APIVersion: Group + "/" + Version, Kind: Kind},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.GeneratedName(),
			Namespace: spec.Namespace(),
			Labels:    labels,
		},
		Spec: mpiJobSpec{
			SlotsPerWorker:    ptr.To(int32(spec.SlotsPerWorker())),
			MPIImplementation: string(draft.MPIImplementation),
			RunPolicy:         runPolicy{CleanPodPolicy: cleanPodPolicyRunning},
			MPIReplicaSpecs: map[string]replicaSpec{
				ReplicaTypeLauncher: buildReplicaSpec(ReplicaTypeLauncher, 1, draft.Image, strings.Fields(draft.Command), launcherResources, labels),
				ReplicaTypeWorker:   buildReplicaSpec(ReplicaTypeWorker, int32(draft.WorkerCount), draft.Image, nil, workerResources, labels),
			},
		},
	}, nil
}

func buildReplicaSpec(replicaType string, replicas int32, image string, command []string, resources corev1.ResourceList, jobLabels map[string]string) replicaSpec {
	podLabels := map[string]string{LabelReplicaType: strings.ToLower(replicaType)}
	for key, value := range jobLabels {
		podLabels[key] = value
	}
	return replicaSpec{
		Replicas:      ptr.To(replicas),
		RestartPolicy: corev1.RestartPolicyNever,
		Template: corev1.PodTemplateSpec{
			ObjectMeta: metav1.ObjectMeta{Labels: podLabels},
			Spec: corev1.PodSpec{
				Containers: []corev1.Container{
					{
						Name:    strings.ToLower(replicaType),
						Image:   image,
						Command: command,
						Resources: corev1.ResourceRequirements{
							Requests: resources,
							Limits:   resources.DeepCopy(),
						},
					},
				},
			},
		},
	}
}

func resourceList(cpu, memory string, gpus int64) (corev1.ResourceList, error) {
	millicores, err := quantity.Parse(cpu, quantity.CPU)
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}
	bytes, err := quantity.Parse(memory, quantity.Memory)
	if err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	resources := corev1.ResourceList{
		corev1.ResourceCPU:    *resource.NewMilliQuantity(millicores, resource.DecimalSI),
		corev1.ResourceMemory: *resource.NewQuantity(bytes, resource.BinarySI),
	}
	if gpus > 0 {
		resources[ResourceGPU] = *resource.NewQuantity(gpus, resource.DecimalSI)
	}
	return resources, nil
}
