package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chaos-service/pkg/cerrors"
	"chaos-service/pkg/environment"
	"chaos-service/pkg/scheduler"
)

func defaultTestRegistry(cluster *fakeCluster, sched scheduler.Scheduler) *Registry {
	settings := environment.Settings{
		PrimaryNamespace:   "backend",
		SecondaryNamespace: "frontend",
		StressNamespace:    "backend",
		StressImage:        "polinux/stress",
		FrontendNamespace:  "frontend",
		FrontendDeployment: "frontend",
		BaselineReplicas:   2,
		SurgeReplicas:      5,
	}
	return NewDefaultRegistry(settings, cluster, sched)
}

func TestRegistry_HoldsTheClosedScenarioSet(t *testing.T) {
	registry := defaultTestRegistry(newFakeCluster(), &fakeScheduler{})

	ids := registry.ValidIDs()
	assert.Equal(t, []string{"pod-killer", "memory-stress", "network-partition", "traffic-surge"}, ids)

	descriptors := registry.List()
	require.Len(t, descriptors, 4)
	for _, d := range descriptors {
		assert.NotEmpty(t, d.DisplayName)
		assert.Greater(t, int64(d.DefaultDuration), int64(0))
		assert.NotEmpty(t, d.ExpectedEffects)
	}
}

func TestRegistry_ResolveKnownScenario(t *testing.T) {
	registry := defaultTestRegistry(newFakeCluster(), &fakeScheduler{})

	descriptor, executor, err := registry.Resolve("pod-killer")

	require.NoError(t, err)
	assert.Equal(t, "pod-killer", descriptor.ID)
	assert.NotNil(t, executor)
}

func TestRegistry_ResolveUnknownScenarioIsValidationFailure(t *testing.T) {
	registry := defaultTestRegistry(newFakeCluster(), &fakeScheduler{})

	_, _, err := registry.Resolve("disk-fill")

	require.Error(t, err)
	assert.Equal(t, cerrors.ErrorTypeScenarioValidation, cerrors.GetErrorType(err))
	// the failure names the whole valid id set
	for _, id := range registry.ValidIDs() {
		assert.Contains(t, err.Error(), id)
	}
}
