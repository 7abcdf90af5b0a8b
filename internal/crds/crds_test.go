package crds

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

func TestDefinitions(t *testing.T) {
	definitions, err := Definitions()
	require.Nil(t, err)
	require.Len(t, definitions, 1)

	crd := definitions[0]
	assert.Equal(t, "cloudflarednsrecords.dns.cloudflare.com", crd.Name)
	assert.Equal(t, "dns.cloudflare.com", crd.Spec.Group)
	assert.Equal(t, "CloudflareDNSRecord", crd.Spec.Names.Kind)
	require.Len(t, crd.Spec.Versions, 1)
	assert.Equal(t, "v1alpha1", crd.Spec.Versions[0].Name)
	// The status subresource must be enabled for status patches to work
	require.NotNil(t, crd.Spec.Versions[0].Subresources)
	assert.NotNil(t, crd.Spec.Versions[0].Subresources.Status)
}

func TestSchemaMatchesReferenceFieldNames(t *testing.T) {
	zone := specSchema(t).Properties["zone"]

	// Structural-schema pruning silently drops any property that the schema does not declare,
	// so the union arm names must match the JSON tags of the Go types exactly
	expected := jsonFieldNames(reflect.TypeOf(v1alpha1.Reference{}))
	require.ElementsMatch(t, []string{"configMap", "secret"}, expected)
	for _, arm := range []string{"name", "id"} {
		from := zone.Properties[arm].Properties["from"]
		keys := make([]string, 0, len(from.Properties))
		for key := range from.Properties {
			keys = append(keys, key)
		}
		assert.ElementsMatch(t, expected, keys, "zone.%s.from", arm)
	}
}

func TestSchemaAllowsAutomaticTTL(t *testing.T) {
	ttl := specSchema(t).Properties["ttl"]

	// Cloudflare accepts ttl 1 as "automatic", the schema must not reject it
	assert.Nil(t, ttl.Minimum)
}

//-------------------------------------------------------------------------------------------------

func specSchema(t *testing.T) apiextensionsv1.JSONSchemaProps {
	t.Helper()
	definitions, err := Definitions()
	require.Nil(t, err)
	require.Len(t, definitions, 1)
	schema := definitions[0].Spec.Versions[0].Schema
	require.NotNil(t, schema)
	require.NotNil(t, schema.OpenAPIV3Schema)
	return schema.OpenAPIV3Schema.Properties["spec"]
}

func jsonFieldNames(typ reflect.Type) []string {
	names := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("json")
		names = append(names, strings.Split(tag, ",")[0])
	}
	return names
}
