package resolve

import (
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"
	"go.uber.org/zap"
	v1 "k8s.io/api/core/v1"
	apierrs "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

// Content resolves the desired content of the given record. A verbatim value resolves to itself;
// a service reference resolves to one of the referenced service's public IP addresses, selected
// by the record type's address family. If the content cannot be determined yet (missing service,
// no public address), nil is returned without an error.
func Content(
	ctx context.Context,
	ctrlClient client.Client,
	logger *zap.Logger,
	record *v1alpha1.CloudflareDNSRecord,
) (*string, error) {
	spec := record.Spec
	switch {
	case spec.Content.Value != nil:
		return spec.Content.Value, nil
	case spec.Content.Service != nil:
		namespace := record.Namespace
		if spec.Content.Service.Namespace != nil {
			namespace = *spec.Content.Service.Namespace
		}
		return servicePublicIP(
			ctx, ctrlClient, logger,
			types.NamespacedName{Name: spec.Content.Service.Name, Namespace: namespace},
			spec.Type,
		)
	default:
		return nil, nil
	}
}

func servicePublicIP(
	ctx context.Context,
	ctrlClient client.Client,
	logger *zap.Logger,
	name types.NamespacedName,
	recordType *v1alpha1.RecordType,
) (*string, error) {
	logger = logger.With(zap.String("service", name.String()))

	var service v1.Service
	if err := ctrlClient.Get(ctx, name, &service); err != nil {
		if apierrs.IsNotFound(err) {
			logger.Warn("referenced service does not exist")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query service: %w", err)
	}

	if service.Spec.Type == v1.ServiceTypeLoadBalancer {
		ingress := service.Status.LoadBalancer.Ingress
		if len(ingress) == 0 {
			// The load balancer has not been provisioned yet, this resolves itself over time
			return nil, fmt.Errorf("load balancer of service %q has no ingress yet", name)
		}
		ips := make([]string, 0, len(ingress))
		for _, item := range ingress {
			if item.IP != "" {
				ips = append(ips, item.IP)
			}
		}
		return selectAddress(logger, ips, recordType), nil
	}

	if len(service.Spec.ExternalIPs) > 0 {
		return selectAddress(logger, service.Spec.ExternalIPs, recordType), nil
	}

	logger.Warn("service is not a load balancer and has no external IPs")
	return nil, nil
}

// selectAddress deterministically picks a single address from the given candidates. A record
// type of A or AAAA acts as an address family hint; with multiple candidates, the first address
// of the hinted family wins, falling back to the first candidate overall. Without a hint, the
// first IPv4 address wins.
func selectAddress(
	logger *zap.Logger, ips []string, recordType *v1alpha1.RecordType,
) *string {
	switch {
	case len(ips) == 0:
		logger.Warn("service has no candidate IP address")
		return nil
	case len(ips) == 1:
		return &ips[0]
	}

	if recordType != nil {
		switch *recordType {
		case v1alpha1.RecordTypeA:
			return firstAddressOfFamily(ips, govalidator.IsIPv4)
		case v1alpha1.RecordTypeAAAA:
			return firstAddressOfFamily(ips, govalidator.IsIPv6)
		}
	}
	logger.Warn("service has multiple candidate IPs, using the first IPv4 one or the first one")
	return firstAddressOfFamily(ips, govalidator.IsIPv4)
}

func firstAddressOfFamily(ips []string, isFamily func(string) bool) *string {
	for i := range ips {
		if isFamily(ips[i]) {
			return &ips[i]
		}
	}
	return &ips[0]
}
