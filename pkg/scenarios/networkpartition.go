package scenarios

import (
	"context"
	"fmt"
	"time"

	"chaos-service/pkg/log"
)

// NetworkPartition is a placeholder scenario: no real network policy is
// mutated, the outcome is always simulated. It still reports what a real
// partition would have done so the scenario stays demonstrable.
type NetworkPartition struct {
	isolated string
	peer     string
}

func NewNetworkPartition(isolated, peer string) *NetworkPartition {
	return &NetworkPartition{
		isolated: isolated,
		peer:     peer,
	}
}

func (n *NetworkPartition) Execute(_ context.Context, duration time.Duration) *Outcome {
	seconds := wholeSeconds(duration)

	log.Infof("[Chaos]: Simulating a %ds network partition between %v and %v", seconds, n.isolated, n.peer)

	return &Outcome{
		Status: StatusSimulated,
		Actions: []string{
			fmt.Sprintf("Simulated network partition: would apply a deny-all policy isolating namespace %q from %q for %d seconds", n.isolated, n.peer, seconds),
		},
		Details: "Network partition is a simulated placeholder, no network policy was changed",
	}
}
