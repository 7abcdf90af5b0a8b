package k8tests

import (
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

// DummyLoadBalancerService returns a dummy load balancer service with the specified name in the
// given namespace whose ingress reports the provided IPs.
func DummyLoadBalancerService(name, namespace string, ips ...string) v1.Service {
	ingress := make([]v1.LoadBalancerIngress, 0, len(ips))
	for _, ip := range ips {
		ingress = append(ingress, v1.LoadBalancerIngress{IP: ip})
	}
	return v1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Spec: v1.ServiceSpec{
			Type: v1.ServiceTypeLoadBalancer,
			Ports: []v1.ServicePort{{
				Port: 80,
				Name: "http",
			}},
		},
		Status: v1.ServiceStatus{
			LoadBalancer: v1.LoadBalancerStatus{Ingress: ingress},
		},
	}
}

// DummyDNSRecord returns a dummy CloudflareDNSRecord with the specified name in the given
// namespace, mapping the given DNS name to a verbatim content value in a zone referenced by ID.
func DummyDNSRecord(name, namespace, dnsName, content string) v1alpha1.CloudflareDNSRecord {
	zoneID := "023e105f4ecef8ad9ca31a8372d0c353"
	return v1alpha1.CloudflareDNSRecord{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
		Spec: v1alpha1.CloudflareDNSRecordSpec{
			Name:    dnsName,
			Content: v1alpha1.StringOrService{Value: &content},
			Zone: v1alpha1.ZoneNameOrID{
				ID: &v1alpha1.ValueOrReference{Value: &zoneID},
			},
		},
	}
}
