package kubeclient

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// NewDynamicClient creates a dynamic client for the cluster in the kubeconfig file,
// falling back to the in-cluster configuration when the file cannot be used.
// An empty path means $HOME/.kube/config.
func NewDynamicClient(kubeconfig string) (dynamic.Interface, error) {
	config, err := GetClientConfig(kubeconfig)
	if err != nil {
		return nil, err
	}
	client, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}
	return client, nil
}

// GetClientConfig rest config from the kubeconfig file or the in-cluster service account
func GetClientConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig == "" {
		kubeconfig = filepath.Join(os.Getenv("HOME"), ".kube", "config")
	}
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err == nil {
		log.Debug().Msgf("Using kubeconfig %s", kubeconfig)
		return config, nil
	}
	log.Debug().Err(err).Msg("kubeconfig not usable, trying in-cluster configuration")
	config, err = rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get cluster configuration: %w", err)
	}
	return config, nil
}
