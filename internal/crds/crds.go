// Package crds gives access to the custom resource definitions served by the operator. The
// manifests are embedded so that the `crd` subcommand can print them without talking to a
// cluster.
package crds

import (
	_ "embed"
	"fmt"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"sigs.k8s.io/yaml"
)

//go:embed manifests/dns.cloudflare.com_cloudflarednsrecords.yaml
var dnsRecordManifest []byte

// Manifest returns the raw YAML manifest of all custom resource definitions.
func Manifest() []byte {
	return dnsRecordManifest
}

// Definitions returns the parsed custom resource definitions.
func Definitions() ([]apiextensionsv1.CustomResourceDefinition, error) {
	var crd apiextensionsv1.CustomResourceDefinition
	if err := yaml.Unmarshal(dnsRecordManifest, &crd); err != nil {
		return nil, fmt.Errorf("failed to parse embedded crd manifest: %w", err)
	}
	return []apiextensionsv1.CustomResourceDefinition{crd}, nil
}
