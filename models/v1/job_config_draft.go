package v1

// MPIImplementation MPI flavour used by the launcher and workers
type MPIImplementation string

const (
	OpenMPI  MPIImplementation = "OpenMPI"
	IntelMPI MPIImplementation = "IntelMPI"
	MPICH    MPIImplementation = "MPICH"
)

// MPIImplementations lists the supported MPI implementations
var MPIImplementations = []MPIImplementation{OpenMPI, IntelMPI, MPICH}

// JobConfigDraft holds the user editable configuration of an MPIJob before validation
// swagger:model JobConfigDraft
type JobConfigDraft struct {
	// Name of the job
	//
	// required: true
	// example: mnist-training
	Name string `json:"name" yaml:"name"`

	// Namespace the job is submitted to
	//
	// required: true
	// example: default
	Namespace string `json:"namespace" yaml:"namespace"`

	// Image of the launcher and worker containers
	//
	// required: true
	// example: example/horovod-mnist:latest
	Image string `json:"image" yaml:"image"`

	// Command run by the launcher
	//
	// required: false
	// example: python /train.py
	Command string `json:"command,omitempty" yaml:"command"`

	// WorkerCount number of worker replicas
	//
	// required: true
	// minimum: 1
	// example: 4
	WorkerCount int `json:"workerCount" yaml:"workerCount"`

	// GPUCount number of GPUs per worker
	//
	// required: true
	// minimum: 0
	// example: 2
	GPUCount int `json:"gpuCount" yaml:"gpuCount"`

	// CPURequest CPU request per worker
	//
	// required: true
	// example: 4
	CPURequest string `json:"cpuRequest" yaml:"cpuRequest"`

	// MemoryRequest memory request per worker
	//
	// required: true
	// example: 16Gi
	MemoryRequest string `json:"memoryRequest" yaml:"memoryRequest"`

	// MPIImplementation MPI implementation
	//
	// required: false
	// Enum: OpenMPI,IntelMPI,MPICH
	// example: OpenMPI
	MPIImplementation MPIImplementation `json:"mpiImplementation,omitempty" yaml:"mpiImplementation"`

	// AdvancedOptions enables the slot and launcher settings
	//
	// required: false
	AdvancedOptions bool `json:"advancedOptions" yaml:"advancedOptions"`

	// SlotCount MPI slots per worker, used with advanced options
	//
	// required: false
	// minimum: 1
	// example: 1
	SlotCount int `json:"slotCount" yaml:"slotCount"`

	// LauncherCPU CPU request of the launcher, used with advanced options
	//
	// required: false
	// example: 1
	LauncherCPU string `json:"launcherCpu" yaml:"launcherCpu"`

	// LauncherMemory memory request of the launcher, used with advanced options
	//
	// required: false
	// example: 1Gi
	LauncherMemory string `json:"launcherMemory" yaml:"launcherMemory"`
}
