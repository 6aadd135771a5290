package scenarios

import (
	"context"
	"fmt"
	"time"

	"chaos-service/pkg/cluster"
	"chaos-service/pkg/log"
	"chaos-service/pkg/utils/stringutils"
)

// MemoryStress submits a one-shot stress job to the cluster. The job name is
// derived from the current time plus a short run id to avoid collisions
// between back-to-back requests.
type MemoryStress struct {
	client    cluster.Client
	namespace string
	image     string
}

func NewMemoryStress(client cluster.Client, namespace, image string) *MemoryStress {
	return &MemoryStress{
		client:    client,
		namespace: namespace,
		image:     image,
	}
}

func (m *MemoryStress) Execute(ctx context.Context, duration time.Duration) *Outcome {
	outcome := &Outcome{}

	seconds := wholeSeconds(duration)
	jobName := fmt.Sprintf("memory-stress-%d-%s", time.Now().Unix(), stringutils.GetRunID())

	manifest, err := StressJobManifest(jobName, m.namespace, m.image, seconds)
	if err != nil {
		log.Warnf("[Fallback]: Unable to render stress job manifest, %v", err)
		return m.simulate(outcome, seconds)
	}

	log.InfoWithValues("[Chaos]: Submitting memory stress job", map[string]interface{}{
		"JobName":   jobName,
		"Namespace": m.namespace,
		"Duration":  fmt.Sprintf("%ds", seconds),
	})

	if err := m.client.ApplyManifest(ctx, manifest); err != nil {
		log.Warnf("[Fallback]: Unable to submit stress job %v, %v", jobName, err)
		return m.simulate(outcome, seconds)
	}

	outcome.Status = StatusExecuted
	outcome.Actions = append(outcome.Actions, fmt.Sprintf("Submitted memory stress job %q to namespace %q for %d seconds", jobName, m.namespace, seconds))
	outcome.Details = fmt.Sprintf("Stress job %q allocates memory inside the cluster until its %d second timeout", jobName, seconds)
	return outcome
}

func (m *MemoryStress) simulate(outcome *Outcome, seconds int) *Outcome {
	outcome.Status = StatusSimulated
	outcome.Actions = append(outcome.Actions, fmt.Sprintf("Simulated memory stress: would run a %d second stress job in namespace %q", seconds, m.namespace))
	outcome.Details = "Cluster not reachable, memory stress was simulated"
	return outcome
}
