package cluster

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"chaos-service/pkg/cerrors"
	"chaos-service/pkg/command"
	"chaos-service/pkg/log"
)

// Client is the capability surface the scenario executors use to touch the
// target cluster. An empty workload list is a valid result, distinct from
// failure. Every operation maps underlying command failures to the
// CLUSTER_UNREACHABLE composite so callers degrade uniformly.
type Client interface {
	ListWorkloads(ctx context.Context, namespace string) ([]string, error)
	DeleteWorkload(ctx context.Context, namespace, name string) error
	ApplyManifest(ctx context.Context, manifest string) error
	ScaleDeployment(ctx context.Context, namespace, name string, replicas int) error
}

// KubectlClient implements Client by shelling out to kubectl through the
// command runner. Cluster credentials are ambient (kubeconfig of the host),
// the client does not manage them.
type KubectlClient struct {
	runner  command.Runner
	binary  string
	timeout time.Duration
}

func NewKubectlClient(runner command.Runner, binary string, timeout time.Duration) *KubectlClient {
	return &KubectlClient{
		runner:  runner,
		binary:  binary,
		timeout: timeout,
	}
}

//ListWorkloads returns the names of the pods running inside the given namespace
func (c *KubectlClient) ListWorkloads(ctx context.Context, namespace string) ([]string, error) {
	out, err := c.runner.Run(ctx, c.binary, []string{"get", "pods", "-n", namespace, "-o", "jsonpath={.items[*].metadata.name}"}, c.timeout)
	if err != nil {
		return nil, unreachable("ListWorkloads", namespace, err)
	}

	names := strings.Fields(strings.TrimSpace(out))
	return names, nil
}

//DeleteWorkload deletes a single pod inside the given namespace
func (c *KubectlClient) DeleteWorkload(ctx context.Context, namespace, name string) error {
	if _, err := c.runner.Run(ctx, c.binary, []string{"delete", "pod", name, "-n", namespace, "--wait=false"}, c.timeout); err != nil {
		return unreachable("DeleteWorkload", namespace+"/"+name, err)
	}
	return nil
}

// ApplyManifest submits a caller-generated manifest to the cluster. The
// manifest is treated as an opaque blob: it is written to a transient file
// which is removed on both the success and the failure path.
func (c *KubectlClient) ApplyManifest(ctx context.Context, manifest string) error {
	file, err := os.CreateTemp("", "chaos-manifest-*.yaml")
	if err != nil {
		return cerrors.Error{
			ErrorCode: cerrors.ErrorTypeGeneric,
			Phase:     "ApplyManifest",
			Reason:    fmt.Sprintf("unable to stage manifest, %v", err),
		}
	}
	defer func() {
		if rerr := os.Remove(file.Name()); rerr != nil {
			log.Warnf("[Cleanup]: Unable to remove transient manifest %v, %v", file.Name(), rerr)
		}
	}()

	if _, err := file.WriteString(manifest); err != nil {
		file.Close()
		return cerrors.Error{
			ErrorCode: cerrors.ErrorTypeGeneric,
			Phase:     "ApplyManifest",
			Reason:    fmt.Sprintf("unable to stage manifest, %v", err),
		}
	}
	if err := file.Close(); err != nil {
		return cerrors.Error{
			ErrorCode: cerrors.ErrorTypeGeneric,
			Phase:     "ApplyManifest",
			Reason:    fmt.Sprintf("unable to stage manifest, %v", err),
		}
	}

	if _, err := c.runner.Run(ctx, c.binary, []string{"apply", "-f", file.Name()}, c.timeout); err != nil {
		return unreachable("ApplyManifest", "", err)
	}
	return nil
}

//ScaleDeployment sets the replica count of a deployment inside the given namespace
func (c *KubectlClient) ScaleDeployment(ctx context.Context, namespace, name string, replicas int) error {
	if _, err := c.runner.Run(ctx, c.binary, []string{"scale", "deployment", name, "-n", namespace, "--replicas=" + strconv.Itoa(replicas)}, c.timeout); err != nil {
		return unreachable("ScaleDeployment", namespace+"/"+name, err)
	}
	return nil
}

// unreachable wraps any command failure into the composite cluster failure,
// keeping the underlying reason for the logs
func unreachable(phase, target string, err error) error {
	return cerrors.Error{
		ErrorCode: cerrors.ErrorTypeClusterUnreachable,
		Phase:     phase,
		Target:    target,
		Reason:    err.Error(),
	}
}
