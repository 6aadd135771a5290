package scenarios

import (
	"context"
	"time"
)

// Status is the confidence level of a scenario outcome, in decreasing order
// of real-world effect. An executor degrades top-down and never upgrades
// mid-attempt.
type Status string

const (
	// StatusExecuted means the real effect was applied to the cluster
	StatusExecuted Status = "Executed"
	// StatusSimulated means no real effect was possible and the scenario
	// reported what it would have done
	StatusSimulated Status = "Simulated"
	// StatusSkipped means the cluster was reachable but held nothing to act on
	StatusSkipped Status = "Skipped"
)

// Descriptor is the static identity of a chaos scenario. Descriptors are
// built once at process start and never mutated.
type Descriptor struct {
	ID              string        `json:"id"`
	DisplayName     string        `json:"displayName"`
	Description     string        `json:"description"`
	DefaultDuration time.Duration `json:"-"`
	ExpectedEffects []string      `json:"expectedEffects"`
}

// Request is one inbound execution request. Duration <= 0 means "use the
// descriptor's default".
type Request struct {
	ScenarioID string
	Duration   time.Duration
}

// Outcome is the result of running one scenario. Actions is append-only
// during execution and never empty on return: every path records at least
// what was attempted. Timestamps are stamped by the orchestrator.
type Outcome struct {
	Status        Status
	Actions       []string
	Details       string
	StartedAt     time.Time
	ExpectedEndAt time.Time
}

// Executor runs one scenario through its tiered degradation strategy. It
// never returns an error: simulation is the unconditional floor.
type Executor interface {
	Execute(ctx context.Context, duration time.Duration) *Outcome
}

// wholeSeconds floors a duration to whole seconds for manifests and messages
func wholeSeconds(d time.Duration) int {
	return int(d / time.Second)
}
