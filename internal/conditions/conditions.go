// Package conditions computes the Ready status condition of CloudflareDNSRecord resources. The
// condition's lastTransitionTime only advances when the Ready value actually flips; repeated
// writes of the same status carry the previous timestamp forward while reason and message are
// always overwritten.
package conditions

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
)

// Ready is the type of the single condition maintained on CloudflareDNSRecord resources.
const Ready = "Ready"

// ReasonApplied is the reason attached to a successful Ready condition.
const ReasonApplied = "Applied"

// Error returns a Ready=False condition for the given record with the given reason and message.
func Error(record *v1alpha1.CloudflareDNSRecord, reason, message string) metav1.Condition {
	wasReady, previous := lastReadyCondition(record)

	transitionTime := metav1.NewTime(time.Now())
	if !wasReady && previous != nil {
		transitionTime = previous.LastTransitionTime
	}

	return metav1.Condition{
		Type:               Ready,
		Status:             metav1.ConditionFalse,
		Reason:             reason,
		Message:            message,
		LastTransitionTime: transitionTime,
		ObservedGeneration: record.Generation,
	}
}

// Success returns a Ready=True condition for the given record.
func Success(record *v1alpha1.CloudflareDNSRecord) metav1.Condition {
	wasReady, previous := lastReadyCondition(record)

	transitionTime := metav1.NewTime(time.Now())
	if wasReady && previous != nil {
		transitionTime = previous.LastTransitionTime
	}

	return metav1.Condition{
		Type:               Ready,
		Status:             metav1.ConditionTrue,
		Reason:             ReasonApplied,
		Message:            "DNS record ready",
		LastTransitionTime: transitionTime,
		ObservedGeneration: record.Generation,
	}
}

// lastReadyCondition returns the most recently recorded Ready condition along with its boolean
// value. A record without any Ready condition counts as "was ready" so that the very first error
// sets a fresh transition time instead of claiming a long-standing failure.
func lastReadyCondition(record *v1alpha1.CloudflareDNSRecord) (bool, *metav1.Condition) {
	for i := range record.Status.Conditions {
		condition := &record.Status.Conditions[i]
		if condition.Type == Ready {
			return condition.Status == metav1.ConditionTrue, condition
		}
	}
	return true, nil
}
