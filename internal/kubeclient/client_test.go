package kubeclient

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kubeconfig = `apiVersion: v1
kind: Config
clusters:
- name: training
  cluster:
    server: https://training.example.com:6443
contexts:
- name: training
  context:
    cluster: training
    user: trainer
current-context: training
users:
- name: trainer
  user:
    token: secret-token
`

func TestGetClientConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(kubeconfig), 0o600))

	config, err := GetClientConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://training.example.com:6443", config.Host)
	assert.Equal(t, "secret-token", config.BearerToken)

	client, err := NewDynamicClient(path)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestGetClientConfig_NoKubeconfigOutsideCluster(t *testing.T) {
	t.Setenv("KUBERNETES_SERVICE_HOST", "")
	t.Setenv("KUBERNETES_SERVICE_PORT", "")
	_, err := GetClientConfig(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
