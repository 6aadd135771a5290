package scenarios

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"chaos-service/pkg/cluster"
	"chaos-service/pkg/log"
)

// PodKiller deletes one randomly chosen workload. Tier 1 acts on the primary
// namespace, tier 2 on the secondary namespace, tier 3 simulates. Skipped is
// reached only when listing succeeded in every namespace checked and found
// nothing to delete.
type PodKiller struct {
	client    cluster.Client
	primary   string
	secondary string
}

func NewPodKiller(client cluster.Client, primary, secondary string) *PodKiller {
	return &PodKiller{
		client:    client,
		primary:   primary,
		secondary: secondary,
	}
}

func (p *PodKiller) Execute(ctx context.Context, duration time.Duration) *Outcome {
	outcome := &Outcome{}

	primaryNames, primaryErr := p.client.ListWorkloads(ctx, p.primary)
	if primaryErr == nil && len(primaryNames) > 0 {
		return p.killOne(ctx, outcome, p.primary, primaryNames, false)
	}
	if primaryErr != nil {
		log.Warnf("[Fallback]: Unable to list workloads in namespace %v, trying %v, %v", p.primary, p.secondary, primaryErr)
	} else {
		log.Infof("[Fallback]: No workloads found in namespace %v, trying %v", p.primary, p.secondary)
	}

	secondaryNames, secondaryErr := p.client.ListWorkloads(ctx, p.secondary)
	if secondaryErr == nil && len(secondaryNames) > 0 {
		outcome.Actions = append(outcome.Actions, fmt.Sprintf("Primary namespace %q yielded no target, used secondary namespace %q", p.primary, p.secondary))
		return p.killOne(ctx, outcome, p.secondary, secondaryNames, true)
	}

	// Both namespaces were reachable and empty: nothing to act on.
	if primaryErr == nil && secondaryErr == nil {
		outcome.Status = StatusSkipped
		outcome.Actions = append(outcome.Actions, fmt.Sprintf("No workloads found in namespaces %q and %q, nothing to delete", p.primary, p.secondary))
		outcome.Details = "Cluster is reachable but holds no valid target, scenario skipped"
		return outcome
	}

	return p.simulate(outcome)
}

func (p *PodKiller) killOne(ctx context.Context, outcome *Outcome, namespace string, names []string, secondary bool) *Outcome {
	// uniform pick over the listed names, same as deleting a random replica
	target := names[rand.Intn(len(names))]

	log.InfoWithValues("[Chaos]: Killing the following pod", map[string]interface{}{
		"PodName":   target,
		"Namespace": namespace,
	})

	if err := p.client.DeleteWorkload(ctx, namespace, target); err != nil {
		log.Warnf("[Fallback]: Unable to delete workload %v in namespace %v, %v", target, namespace, err)
		return p.simulate(outcome)
	}

	outcome.Status = StatusExecuted
	if secondary {
		outcome.Actions = append(outcome.Actions, fmt.Sprintf("Deleted workload %q in secondary namespace %q", target, namespace))
	} else {
		outcome.Actions = append(outcome.Actions, fmt.Sprintf("Deleted workload %q in namespace %q", target, namespace))
	}
	outcome.Details = fmt.Sprintf("Workload %q was terminated; its controller is expected to reschedule it", target)
	return outcome
}

func (p *PodKiller) simulate(outcome *Outcome) *Outcome {
	outcome.Status = StatusSimulated
	outcome.Actions = append(outcome.Actions, fmt.Sprintf("Simulated pod termination: would delete one randomly chosen workload in namespace %q", p.primary))
	outcome.Details = "Cluster not reachable, pod termination was simulated"
	return outcome
}
