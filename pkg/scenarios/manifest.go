package scenarios

import (
	"fmt"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// The stress job manifest is rendered by the executor and handed to the
// cluster client as an opaque blob.

type jobManifest struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Metadata   objectMeta `yaml:"metadata"`
	Spec       jobSpec    `yaml:"spec"`
}

type objectMeta struct {
	Name      string            `yaml:"name"`
	Namespace string            `yaml:"namespace"`
	Labels    map[string]string `yaml:"labels,omitempty"`
}

type jobSpec struct {
	BackoffLimit            int             `yaml:"backoffLimit"`
	TTLSecondsAfterFinished int             `yaml:"ttlSecondsAfterFinished"`
	Template                podTemplateSpec `yaml:"template"`
}

type podTemplateSpec struct {
	Spec podSpec `yaml:"spec"`
}

type podSpec struct {
	RestartPolicy string          `yaml:"restartPolicy"`
	Containers    []containerSpec `yaml:"containers"`
}

type containerSpec struct {
	Name  string   `yaml:"name"`
	Image string   `yaml:"image"`
	Args  []string `yaml:"args"`
}

// StressJobManifest renders a one-shot batch job that allocates memory for
// the given number of whole seconds and then exits.
func StressJobManifest(name, namespace, image string, seconds int) (string, error) {
	if seconds <= 0 {
		return "", errors.Errorf("stress duration must be at least one second, got %ds", seconds)
	}

	job := jobManifest{
		APIVersion: "batch/v1",
		Kind:       "Job",
		Metadata: objectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				"app.kubernetes.io/managed-by": "chaos-service",
				"chaos-scenario":               "memory-stress",
			},
		},
		Spec: jobSpec{
			BackoffLimit:            0,
			TTLSecondsAfterFinished: 120,
			Template: podTemplateSpec{
				Spec: podSpec{
					RestartPolicy: "Never",
					Containers: []containerSpec{
						{
							Name:  "stress",
							Image: image,
							Args: []string{
								"--vm", "1",
								"--vm-bytes", "256M",
								"--timeout", fmt.Sprintf("%ds", seconds),
							},
						},
					},
				},
			},
		},
	}

	out, err := yaml.Marshal(job)
	if err != nil {
		return "", errors.Wrap(err, "unable to marshal stress job manifest")
	}
	return string(out), nil
}
