package scenarios

import (
	"context"
	"fmt"
	"time"

	"chaos-service/pkg/cluster"
	"chaos-service/pkg/log"
	"chaos-service/pkg/scheduler"
)

// TrafficSurge scales the frontend deployment up to surge capacity. On
// success it registers a compensating scale-down back to the baseline
// replica count, firing after the scenario duration elapses. The baseline
// comes from configuration, not from the cluster, so the compensating action
// stays deterministic even if the cluster changes in between.
type TrafficSurge struct {
	client     cluster.Client
	sched      scheduler.Scheduler
	namespace  string
	deployment string
	baseline   int
	surge      int
}

func NewTrafficSurge(client cluster.Client, sched scheduler.Scheduler, namespace, deployment string, baseline, surge int) *TrafficSurge {
	return &TrafficSurge{
		client:     client,
		sched:      sched,
		namespace:  namespace,
		deployment: deployment,
		baseline:   baseline,
		surge:      surge,
	}
}

func (t *TrafficSurge) Execute(ctx context.Context, duration time.Duration) *Outcome {
	outcome := &Outcome{}
	seconds := wholeSeconds(duration)

	log.InfoWithValues("[Chaos]: Scaling deployment to surge capacity", map[string]interface{}{
		"Deployment": t.deployment,
		"Namespace":  t.namespace,
		"Replicas":   t.surge,
	})

	if err := t.client.ScaleDeployment(ctx, t.namespace, t.deployment, t.surge); err != nil {
		log.Warnf("[Fallback]: Unable to scale deployment %v, %v", t.deployment, err)
		outcome.Status = StatusSimulated
		outcome.Actions = append(outcome.Actions, fmt.Sprintf("Simulated traffic surge: would scale deployment %q in namespace %q from %d to %d replicas for %d seconds", t.deployment, t.namespace, t.baseline, t.surge, seconds))
		outcome.Details = "Cluster not reachable, traffic surge was simulated"
		return outcome
	}

	namespace, deployment, baseline := t.namespace, t.deployment, t.baseline
	t.sched.Schedule(scheduler.CompensatingAction{
		Description: fmt.Sprintf("scale deployment %s/%s back to %d replicas", namespace, deployment, baseline),
		Run: func(ctx context.Context) error {
			return t.client.ScaleDeployment(ctx, namespace, deployment, baseline)
		},
	}, duration)

	outcome.Status = StatusExecuted
	outcome.Actions = append(outcome.Actions,
		fmt.Sprintf("Scaled deployment %q in namespace %q up to %d replicas", t.deployment, t.namespace, t.surge),
		fmt.Sprintf("Scheduled scale-down back to %d replicas after %d seconds", t.baseline, seconds),
	)
	outcome.Details = fmt.Sprintf("Deployment %q is running at surge capacity until the compensating scale-down fires", t.deployment)
	return outcome
}
