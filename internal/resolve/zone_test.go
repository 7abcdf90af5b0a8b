package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
	"github.com/borchero/cloudflare-dns-operator/internal/cloudflare"
	"github.com/borchero/cloudflare-dns-operator/internal/cloudflare/cloudflaretest"
	"github.com/borchero/cloudflare-dns-operator/internal/k8tests"
)

func TestZoneIDPassthrough(t *testing.T) {
	ctx := context.Background()
	id := "023e105f4ecef8ad9ca31a8372d0c353"

	zoneID, err := ZoneID(ctx, nil, nil, zap.NewNop(), "default", v1alpha1.ZoneNameOrID{
		ID: &v1alpha1.ValueOrReference{Value: &id},
	})
	require.Nil(t, err)
	require.NotNil(t, zoneID)
	assert.Equal(t, id, *zoneID)
}

func TestZoneIDFromName(t *testing.T) {
	ctx := context.Background()
	cfClient := cloudflaretest.NewFakeClient(
		cloudflare.Zone{ID: "zone-1", Name: "example.com"},
		cloudflare.Zone{ID: "zone-2", Name: "example.org"},
	)
	name := "example.org"

	zoneID, err := ZoneID(ctx, nil, cfClient, zap.NewNop(), "default", v1alpha1.ZoneNameOrID{
		Name: &v1alpha1.ValueOrReference{Value: &name},
	})
	require.Nil(t, err)
	require.NotNil(t, zoneID)
	assert.Equal(t, "zone-2", *zoneID)

	// An unknown zone name must resolve to nil, not an error
	unknown := "unknown.com"
	zoneID, err = ZoneID(ctx, nil, cfClient, zap.NewNop(), "default", v1alpha1.ZoneNameOrID{
		Name: &v1alpha1.ValueOrReference{Value: &unknown},
	})
	require.Nil(t, err)
	assert.Nil(t, zoneID)
}

func TestZoneIDFromReferencedName(t *testing.T) {
	ctx := context.Background()
	ctrlClient := k8tests.NewClient(k8tests.NewScheme(), &v1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "zones", Namespace: "default"},
		Data:       map[string]string{"zone": "example.com"},
	})
	cfClient := cloudflaretest.NewFakeClient(
		cloudflare.Zone{ID: "zone-1", Name: "example.com"},
	)

	zoneID, err := ZoneID(ctx, ctrlClient, cfClient, zap.NewNop(), "default", v1alpha1.ZoneNameOrID{
		Name: &v1alpha1.ValueOrReference{
			From: &v1alpha1.Reference{
				ConfigMap: &v1.ConfigMapKeySelector{
					LocalObjectReference: v1.LocalObjectReference{Name: "zones"},
					Key:                  "zone",
				},
			},
		},
	})
	require.Nil(t, err)
	require.NotNil(t, zoneID)
	assert.Equal(t, "zone-1", *zoneID)
}
