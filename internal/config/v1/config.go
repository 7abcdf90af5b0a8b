// Package v1 contains the configuration file schema of the operator. The configuration only
// covers manager-level settings, everything specific to a DNS record lives on the resources
// themselves.
package v1

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"sigs.k8s.io/yaml"
)

// Config is the schema of the operator's configuration file.
type Config struct {
	Health         HealthConfig         `json:"health,omitempty"`
	LeaderElection LeaderElectionConfig `json:"leaderElection,omitempty"`
	Metrics        MetricsConfig        `json:"metrics,omitempty"`
}

// HealthConfig provides configuration for the controller health checks.
type HealthConfig struct {
	HealthProbeBindAddress string `json:"healthProbeBindAddress,omitempty"`
}

// LeaderElectionConfig provides configuration for the leader election.
type LeaderElectionConfig struct {
	LeaderElect       bool   `json:"leaderElect,omitempty"`
	ResourceName      string `json:"resourceName,omitempty"`
	ResourceNamespace string `json:"resourceNamespace,omitempty"`
}

// MetricsConfig provides configuration for the controller metrics.
type MetricsConfig struct {
	BindAddress string `json:"bindAddress,omitempty"`
}

// Load reads the configuration from the file at the given path and fills unset fields with
// defaults. An empty path yields the default configuration.
func Load(path string) (Config, error) {
	var config Config
	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(contents, &config); err != nil {
			return config, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := mergo.Merge(&config, defaultConfig()); err != nil {
		return config, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return config, nil
}

func defaultConfig() Config {
	return Config{
		Health: HealthConfig{
			HealthProbeBindAddress: ":8081",
		},
		LeaderElection: LeaderElectionConfig{
			ResourceName:      "cloudflare-dns-operator.borchero.com",
			ResourceNamespace: "kube-system",
		},
		Metrics: MetricsConfig{
			BindAddress: ":9090",
		},
	}
}
