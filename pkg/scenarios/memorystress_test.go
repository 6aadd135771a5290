package scenarios

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

func TestMemoryStress_SubmitsJobManifest(t *testing.T) {
	cluster := newFakeCluster()
	stress := NewMemoryStress(cluster, "backend", "polinux/stress")

	outcome := stress.Execute(context.Background(), 90*time.Second)

	assert.Equal(t, StatusExecuted, outcome.Status)
	require.Len(t, cluster.applied, 1)

	var job map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(cluster.applied[0]), &job))
	assert.Equal(t, "Job", job["kind"])
	assert.Contains(t, cluster.applied[0], "namespace: backend")
	assert.Contains(t, cluster.applied[0], "image: polinux/stress")
	assert.Contains(t, cluster.applied[0], "- 90s")

	require.NotEmpty(t, outcome.Actions)
	assert.Contains(t, outcome.Actions[0], "90 seconds")
}

func TestMemoryStress_DurationFlooredToWholeSeconds(t *testing.T) {
	cluster := newFakeCluster()
	stress := NewMemoryStress(cluster, "backend", "polinux/stress")

	outcome := stress.Execute(context.Background(), 5500*time.Millisecond)

	require.Len(t, cluster.applied, 1)
	assert.Contains(t, cluster.applied[0], "- 5s")
	assert.NotContains(t, cluster.applied[0], "5500")
	assert.Contains(t, outcome.Actions[0], "5 seconds")
}

func TestMemoryStress_UniqueJobNames(t *testing.T) {
	cluster := newFakeCluster()
	stress := NewMemoryStress(cluster, "backend", "polinux/stress")

	stress.Execute(context.Background(), 10*time.Second)
	stress.Execute(context.Background(), 10*time.Second)

	require.Len(t, cluster.applied, 2)
	assert.NotEqual(t, jobNameOf(t, cluster.applied[0]), jobNameOf(t, cluster.applied[1]))
}

func TestMemoryStress_SimulatedOnApplyFailure(t *testing.T) {
	cluster := newFakeCluster()
	cluster.applyErr = unreachableErr("no cluster")
	stress := NewMemoryStress(cluster, "backend", "polinux/stress")

	outcome := stress.Execute(context.Background(), 30*time.Second)

	assert.Equal(t, StatusSimulated, outcome.Status)
	require.NotEmpty(t, outcome.Actions)
	assert.Contains(t, strings.ToLower(outcome.Actions[0]), "simulated")
	assert.Contains(t, outcome.Actions[0], "30 second")
	assert.Contains(t, strings.ToLower(outcome.Details), "simulated")
}

func TestStressJobManifest_RejectsZeroSeconds(t *testing.T) {
	_, err := StressJobManifest("x", "backend", "polinux/stress", 0)
	assert.Error(t, err)
}

func jobNameOf(t *testing.T, manifest string) string {
	t.Helper()
	var job struct {
		Metadata struct {
			Name string `yaml:"name"`
		} `yaml:"metadata"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(manifest), &job))
	return job.Metadata.Name
}
