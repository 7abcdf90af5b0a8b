package k8tests

import (
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

// NewScheme returns a newly configured scheme which registers all types that are relevant for
// the operator.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	// >>> core types
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	// >>> our own types
	utilruntime.Must(v1alpha1.AddToScheme(scheme))
	return scheme
}

// NewClient returns a fake Kubernetes client that tracks the given objects and serves the status
// subresource of CloudflareDNSRecord resources.
func NewClient(scheme *runtime.Scheme, objects ...client.Object) client.Client {
	return fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objects...).
		WithStatusSubresource(&v1alpha1.CloudflareDNSRecord{}).
		Build()
}
