package v1alpha1

import (
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// RecordType enumerates the Cloudflare DNS record types that may be managed. See
// https://developers.cloudflare.com/dns/manage-dns-records/reference/dns-record-types/ for
// reference.
// +kubebuilder:validation:Enum=A;AAAA;CNAME;MX;TXT;SRV;LOC;SPF;NS
type RecordType string

const (
	// RecordTypeA describes an IPv4 address record.
	RecordTypeA = RecordType("A")
	// RecordTypeAAAA describes an IPv6 address record.
	RecordTypeAAAA = RecordType("AAAA")
	// RecordTypeCNAME describes a canonical name record.
	RecordTypeCNAME = RecordType("CNAME")
	// RecordTypeMX describes a mail exchange record.
	RecordTypeMX = RecordType("MX")
	// RecordTypeTXT describes a text record.
	RecordTypeTXT = RecordType("TXT")
	// RecordTypeSRV describes a service locator record.
	RecordTypeSRV = RecordType("SRV")
	// RecordTypeLOC describes a location record.
	RecordTypeLOC = RecordType("LOC")
	// RecordTypeSPF describes a sender policy framework record.
	RecordTypeSPF = RecordType("SPF")
	// RecordTypeNS describes a name server record.
	RecordTypeNS = RecordType("NS")
)

// CloudflareDNSRecord represents a single DNS record that ought to be maintained at Cloudflare.
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
type CloudflareDNSRecord struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata"`

	Spec   CloudflareDNSRecordSpec   `json:"spec"`
	Status CloudflareDNSRecordStatus `json:"status,omitempty"`
}

// CloudflareDNSRecordSpec defines the desired state of a single Cloudflare DNS record.
type CloudflareDNSRecordSpec struct {
	// Name is the full DNS name of the record (e.g. `www.example.com`).
	Name string `json:"name"`
	// Type is the type of the record. Defaults to `A` if unset.
	// +kubebuilder:default=A
	Type *RecordType `json:"type,omitempty"`
	// Content provides the value of the record, either verbatim or derived from a service's
	// public IP address.
	Content StringOrService `json:"content"`
	// TTL provides the time-to-live of the record in seconds. If unset, Cloudflare applies its
	// automatic TTL.
	TTL *int64 `json:"ttl,omitempty"`
	// Proxied determines whether the record is proxied through Cloudflare.
	Proxied *bool `json:"proxied,omitempty"`
	// Comment is an arbitrary comment attached to the record.
	Comment *string `json:"comment,omitempty"`
	// Tags is a list of tags attached to the record.
	Tags []string `json:"tags,omitempty"`
	// Zone references the Cloudflare zone that the record is created in.
	Zone ZoneNameOrID `json:"zone"`
}

// CloudflareDNSRecordStatus describes the most recently observed state of a record. It is
// exclusively written by the controller.
type CloudflareDNSRecordStatus struct {
	// RecordID is the ID that Cloudflare assigned to the managed record. Cleanup deletes exactly
	// this record, regardless of the current spec.
	RecordID string `json:"recordID,omitempty"`
	// ZoneID is the ID of the zone that the managed record lives in.
	ZoneID string `json:"zoneID,omitempty"`
	// RecordName is the DNS name that the record was last applied with. It is used to clean up
	// the old record when the spec's name changes.
	RecordName string `json:"recordName,omitempty"`
	// Pending indicates whether the record's content has not yet been confirmed via live DNS
	// resolution. It is always false if DNS checking is disabled.
	Pending bool `json:"pending,omitempty"`
	// Conditions provides the record's status conditions.
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// CloudflareDNSRecordList represents multiple CloudflareDNSRecord resources.
// +kubebuilder:object:root=true
type CloudflareDNSRecordList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CloudflareDNSRecord `json:"items"`
}

//-------------------------------------------------------------------------------------------------

// StringOrService provides the content of a record, either as a verbatim value or as a reference
// to a service whose public IP address is used. Exactly one of the fields must be set.
type StringOrService struct {
	// Value is the verbatim content of the record.
	Value *string `json:"value,omitempty"`
	// Service references a service whose public IP address provides the record's content.
	Service *ServiceRef `json:"service,omitempty"`
}

// ServiceRef references a (load-balanced) service within the cluster.
type ServiceRef struct {
	// Name is the name of the service.
	Name string `json:"name"`
	// Namespace is the namespace of the service. Defaults to the namespace of the referent.
	Namespace *string `json:"namespace,omitempty"`
}

// ZoneNameOrID references a Cloudflare zone either by its name or by its ID. Exactly one of the
// fields must be set.
type ZoneNameOrID struct {
	// Name references the zone by its name (e.g. `example.com`).
	Name *ValueOrReference `json:"name,omitempty"`
	// ID references the zone by its Cloudflare zone ID.
	ID *ValueOrReference `json:"id,omitempty"`
}

// ValueOrReference provides a string either verbatim or via a key of a config map or secret.
// Exactly one of the fields must be set.
type ValueOrReference struct {
	// Value is the verbatim value.
	Value *string `json:"value,omitempty"`
	// From reads the value from another object.
	From *Reference `json:"from,omitempty"`
}

// Reference points to a key of either a config map or a secret. Exactly one of the fields must
// be set.
type Reference struct {
	// ConfigMap selects a key of a config map in the referent's namespace.
	ConfigMap *v1.ConfigMapKeySelector `json:"configMap,omitempty"`
	// Secret selects a key of a secret in the referent's namespace.
	Secret *v1.SecretKeySelector `json:"secret,omitempty"`
}

//-------------------------------------------------------------------------------------------------

// RecordTypeOrDefault returns the record's type, falling back to the default type `A` if the type
// is not set explicitly.
func (s CloudflareDNSRecordSpec) RecordTypeOrDefault() RecordType {
	if s.Type == nil {
		return RecordTypeA
	}
	return *s.Type
}
