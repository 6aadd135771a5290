package scenarios

import (
	"fmt"
	"strings"
	"time"

	"chaos-service/pkg/cerrors"
	"chaos-service/pkg/cluster"
	"chaos-service/pkg/environment"
	"chaos-service/pkg/scheduler"
)

// Registry maps scenario ids to their descriptor and executor. It is built
// once at startup and immutable afterwards; concurrent reads need no locking.
type Registry struct {
	order   []string
	entries map[string]entry
}

type entry struct {
	descriptor Descriptor
	executor   Executor
}

func NewRegistry() *Registry {
	return &Registry{
		entries: map[string]entry{},
	}
}

func (r *Registry) register(d Descriptor, e Executor) {
	if _, ok := r.entries[d.ID]; !ok {
		r.order = append(r.order, d.ID)
	}
	r.entries[d.ID] = entry{descriptor: d, executor: e}
}

// Resolve returns the descriptor and executor for the given scenario id. An
// unknown id yields a validation failure naming the valid id set, before any
// cluster interaction is attempted.
func (r *Registry) Resolve(id string) (Descriptor, Executor, error) {
	e, ok := r.entries[id]
	if !ok {
		return Descriptor{}, nil, cerrors.Error{
			ErrorCode: cerrors.ErrorTypeScenarioValidation,
			Phase:     "Validation",
			Target:    id,
			Reason:    fmt.Sprintf("unknown scenario, valid scenarios: %s", strings.Join(r.ValidIDs(), ", ")),
		}
	}
	return e.descriptor, e.executor, nil
}

//List returns every descriptor in registration order, for discovery
func (r *Registry) List() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		descriptors = append(descriptors, r.entries[id].descriptor)
	}
	return descriptors
}

//ValidIDs returns the closed set of scenario ids in registration order
func (r *Registry) ValidIDs() []string {
	return append([]string(nil), r.order...)
}

// NewDefaultRegistry wires the four scenarios of the platform against the
// given cluster client and compensation scheduler.
func NewDefaultRegistry(settings environment.Settings, client cluster.Client, sched scheduler.Scheduler) *Registry {
	r := NewRegistry()

	r.register(Descriptor{
		ID:              "pod-killer",
		DisplayName:     "Pod Killer",
		Description:     "Terminates a randomly chosen workload to verify self-healing",
		DefaultDuration: 30 * time.Second,
		ExpectedEffects: []string{
			"One pod is deleted and recreated by its controller",
			"Brief error spike while the replacement pod starts",
		},
	}, NewPodKiller(client, settings.PrimaryNamespace, settings.SecondaryNamespace))

	r.register(Descriptor{
		ID:              "memory-stress",
		DisplayName:     "Memory Stress",
		Description:     "Runs a one-shot stress job that allocates memory inside the cluster",
		DefaultDuration: 60 * time.Second,
		ExpectedEffects: []string{
			"Memory pressure on the node running the stress job",
			"Possible OOM kills of low-priority pods",
		},
	}, NewMemoryStress(client, settings.StressNamespace, settings.StressImage))

	r.register(Descriptor{
		ID:              "network-partition",
		DisplayName:     "Network Partition",
		Description:     "Isolates backend workloads from the frontend (simulation only)",
		DefaultDuration: 45 * time.Second,
		ExpectedEffects: []string{
			"Frontend requests to the backend time out",
			"Circuit breakers open on the frontend",
		},
	}, NewNetworkPartition(settings.PrimaryNamespace, settings.SecondaryNamespace))

	r.register(Descriptor{
		ID:              "traffic-surge",
		DisplayName:     "Traffic Surge",
		Description:     "Scales the frontend up to surge capacity, then back down",
		DefaultDuration: 120 * time.Second,
		ExpectedEffects: []string{
			"Frontend replica count increases to the surge level",
			"Scale-down back to baseline after the duration elapses",
		},
	}, NewTrafficSurge(client, sched, settings.FrontendNamespace, settings.FrontendDeployment, settings.BaselineReplicas, settings.SurgeReplicas))

	return r
}
