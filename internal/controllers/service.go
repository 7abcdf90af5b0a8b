package controllers

import (
	"context"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	ctrlreconcile "sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

// publiclyExposedService filters service events to those services which may actually carry a
// public address, i.e. load balancers and services with explicit external IPs.
func publiclyExposedService() predicate.Predicate {
	return predicate.NewPredicateFuncs(func(object client.Object) bool {
		service, ok := object.(*corev1.Service)
		if !ok {
			return false
		}
		return service.Spec.Type == corev1.ServiceTypeLoadBalancer ||
			len(service.Spec.ExternalIPs) > 0
	})
}

// recordsForService maps a service event to reconciliation requests for all records whose content
// references the service.
func (r *DNSRecordReconciler) recordsForService(
	ctx context.Context, object client.Object,
) []ctrlreconcile.Request {
	var records v1alpha1.CloudflareDNSRecordList
	if err := r.List(ctx, &records); err != nil {
		r.logger.Error("failed to list dns records for service mapping", zap.Error(err))
		return nil
	}

	requests := make([]ctrlreconcile.Request, 0)
	for i := range records.Items {
		record := &records.Items[i]
		if referencesService(record, object.GetName(), object.GetNamespace()) {
			requests = append(requests, ctrlreconcile.Request{
				NamespacedName: types.NamespacedName{
					Name:      record.Name,
					Namespace: record.Namespace,
				},
			})
		}
	}
	return requests
}

func referencesService(record *v1alpha1.CloudflareDNSRecord, name, namespace string) bool {
	ref := record.Spec.Content.Service
	if ref == nil || ref.Name != name {
		return false
	}
	refNamespace := record.Namespace
	if ref.Namespace != nil {
		refNamespace = *ref.Namespace
	}
	return refNamespace == namespace
}
