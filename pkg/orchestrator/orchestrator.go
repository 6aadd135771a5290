package orchestrator

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/kyokomi/emoji"

	"chaos-service/pkg/cerrors"
	"chaos-service/pkg/log"
	"chaos-service/pkg/scenarios"
)

// Result is the envelope returned to the API boundary for one executed
// scenario. Timestamps marshal as ISO-8601, the duration as milliseconds.
type Result struct {
	Success         bool             `json:"success"`
	Scenario        string           `json:"scenario"`
	Duration        int64            `json:"duration"`
	StartTime       time.Time        `json:"startTime"`
	ExpectedEndTime time.Time        `json:"expectedEndTime"`
	Actions         []string         `json:"actions"`
	Status          scenarios.Status `json:"status"`
	Details         string           `json:"details"`
}

// Orchestrator validates incoming requests, resolves the executor and
// assembles the result envelope. It is the only component exposed to the API
// boundary.
//
// Concurrent requests are intentionally not deduplicated: the cluster is an
// uncontrolled external system and the read-then-act gap is an accepted
// race, so two simultaneous identical scenarios may contend on the same
// resources.
type Orchestrator struct {
	registry *scenarios.Registry
}

func New(registry *scenarios.Registry) *Orchestrator {
	return &Orchestrator{
		registry: registry,
	}
}

// Execute runs one scenario synchronously through its tiers. The caller
// waits for tier resolution, never for a compensating action. An invalid
// scenario id is rejected before any cluster interaction; the only hard
// error past validation is an unexpected internal fault, recovered here.
func (o *Orchestrator) Execute(ctx context.Context, request scenarios.Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorWithValues("[Orchestrator]: Recovered from internal fault", map[string]interface{}{
				"Scenario": request.ScenarioID,
				"Fault":    fmt.Sprintf("%v", r),
				"Stack":    string(debug.Stack()),
			})
			result = nil
			err = cerrors.Error{
				ErrorCode: cerrors.ErrorTypeGeneric,
				Phase:     "Execute",
				Target:    request.ScenarioID,
				Reason:    fmt.Sprintf("internal fault while executing scenario: %v", r),
			}
		}
	}()

	descriptor, executor, err := o.registry.Resolve(request.ScenarioID)
	if err != nil {
		log.Warnf("[Validation]: Rejected chaos request, %v", err)
		return nil, err
	}

	duration := request.Duration
	if duration <= 0 {
		duration = descriptor.DefaultDuration
	}

	startedAt := time.Now().UTC()
	log.InfoWithValues("[Chaos]: Executing scenario", map[string]interface{}{
		"Scenario": descriptor.ID,
		"Duration": duration.String(),
	})

	outcome := executor.Execute(ctx, duration)
	outcome.StartedAt = startedAt
	outcome.ExpectedEndAt = startedAt.Add(duration)

	o.logVerdict(descriptor.ID, outcome.Status)

	return &Result{
		Success:         true,
		Scenario:        descriptor.ID,
		Duration:        duration.Milliseconds(),
		StartTime:       outcome.StartedAt,
		ExpectedEndTime: outcome.ExpectedEndAt,
		Actions:         outcome.Actions,
		Status:          outcome.Status,
		Details:         outcome.Details,
	}, nil
}

//Scenarios returns the descriptors of every registered scenario
func (o *Orchestrator) Scenarios() []scenarios.Descriptor {
	return o.registry.List()
}

func (o *Orchestrator) logVerdict(scenario string, status scenarios.Status) {
	switch status {
	case scenarios.StatusExecuted:
		log.Infof("[Status]: %v chaos injected for real%v", scenario, emoji.Sprint(" :fire:"))
	case scenarios.StatusSimulated:
		log.Infof("[Status]: %v degraded to simulation%v", scenario, emoji.Sprint(" :cloud:"))
	default:
		log.Infof("[Status]: %v skipped, nothing to act on", scenario)
	}
}
