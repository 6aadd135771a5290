package environment

import (
	"os"
	"strconv"
	"time"
)

// Settings holds every knob of the orchestrator that comes from the runtime
// environment. It is populated once in main and passed down by value.
type Settings struct {
	Port     int
	LogLevel string

	KubectlBinary  string
	CommandTimeout time.Duration

	PrimaryNamespace   string
	SecondaryNamespace string

	StressImage     string
	StressNamespace string

	FrontendNamespace  string
	FrontendDeployment string
	BaselineReplicas   int
	SurgeReplicas      int
}

//GetENV fetches all the env variables of the orchestrator
func GetENV() Settings {
	return Settings{
		Port:               getEnvAsInt("PORT", 8084),
		LogLevel:           Getenv("LOG_LEVEL", "info"),
		KubectlBinary:      Getenv("KUBECTL_BINARY", "kubectl"),
		CommandTimeout:     time.Duration(getEnvAsInt("COMMAND_TIMEOUT", 15)) * time.Second,
		PrimaryNamespace:   Getenv("CHAOS_PRIMARY_NAMESPACE", "backend"),
		SecondaryNamespace: Getenv("CHAOS_SECONDARY_NAMESPACE", "frontend"),
		StressImage:        Getenv("STRESS_IMAGE", "polinux/stress"),
		StressNamespace:    Getenv("STRESS_NAMESPACE", "backend"),
		FrontendNamespace:  Getenv("FRONTEND_NAMESPACE", "frontend"),
		FrontendDeployment: Getenv("FRONTEND_DEPLOYMENT", "frontend"),
		BaselineReplicas:   getEnvAsInt("BASELINE_REPLICAS", 2),
		SurgeReplicas:      getEnvAsInt("SURGE_REPLICAS", 5),
	}
}

// Getenv fetches the env and sets the default value if env contains empty value
func Getenv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
