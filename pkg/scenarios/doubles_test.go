package scenarios

import (
	"context"
	"time"

	"chaos-service/pkg/cerrors"
	"chaos-service/pkg/scheduler"
)

// fakeCluster scripts the cluster client per namespace and records every
// invocation so tests can assert tier transitions and side-effect ordering.
type fakeCluster struct {
	workloads map[string][]string
	listErr   map[string]error
	deleteErr error
	applyErr  error
	scaleErr  error

	listCalls  []string
	deleted    []string
	applied    []string
	scaleCalls []scaleCall
	totalCalls int
}

type scaleCall struct {
	namespace  string
	deployment string
	replicas   int
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		workloads: map[string][]string{},
		listErr:   map[string]error{},
	}
}

func unreachableErr(reason string) error {
	return cerrors.Error{ErrorCode: cerrors.ErrorTypeClusterUnreachable, Reason: reason}
}

func (f *fakeCluster) ListWorkloads(_ context.Context, namespace string) ([]string, error) {
	f.totalCalls++
	f.listCalls = append(f.listCalls, namespace)
	if err := f.listErr[namespace]; err != nil {
		return nil, err
	}
	return f.workloads[namespace], nil
}

func (f *fakeCluster) DeleteWorkload(_ context.Context, namespace, name string) error {
	f.totalCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, namespace+"/"+name)
	return nil
}

func (f *fakeCluster) ApplyManifest(_ context.Context, manifest string) error {
	f.totalCalls++
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, manifest)
	return nil
}

func (f *fakeCluster) ScaleDeployment(_ context.Context, namespace, name string, replicas int) error {
	f.totalCalls++
	if f.scaleErr != nil {
		return f.scaleErr
	}
	f.scaleCalls = append(f.scaleCalls, scaleCall{namespace: namespace, deployment: name, replicas: replicas})
	return nil
}

// fakeScheduler captures registered compensating actions instead of waiting
// for real time.
type fakeScheduler struct {
	actions []scheduler.CompensatingAction
	delays  []time.Duration
}

func (f *fakeScheduler) Schedule(action scheduler.CompensatingAction, delay time.Duration) {
	f.actions = append(f.actions, action)
	f.delays = append(f.delays, delay)
}
