package resolve

import (
	"context"

	"go.uber.org/zap"
	ctrlclient "sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
	"github.com/borchero/cloudflare-dns-operator/internal/cloudflare"
)

// ZoneID resolves the given zone reference to a concrete Cloudflare zone ID. A reference by ID
// is passed through; a reference by name is matched against the zone listing (served through the
// client's cache). If the reference cannot be resolved or no zone matches the name, nil is
// returned without an error.
func ZoneID(
	ctx context.Context,
	ctrlClient ctrlclient.Client,
	cfClient cloudflare.Client,
	logger *zap.Logger,
	namespace string,
	zone v1alpha1.ZoneNameOrID,
) (*string, error) {
	switch {
	case zone.ID != nil:
		return Value(ctx, ctrlClient, logger, namespace, *zone.ID)
	case zone.Name != nil:
		name, err := Value(ctx, ctrlClient, logger, namespace, *zone.Name)
		if err != nil || name == nil {
			return nil, err
		}
		zones, err := cfClient.ListZones(ctx)
		if err != nil {
			return nil, err
		}
		for _, zone := range zones {
			if zone.Name == *name {
				return &zone.ID, nil
			}
		}
		logger.Warn("no zone found with the referenced name", zap.String("zone", *name))
		return nil, nil
	default:
		return nil, nil
	}
}
