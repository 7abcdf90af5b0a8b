// Package controllers implements the reconciliation loop that keeps Cloudflare DNS records in
// sync with CloudflareDNSRecord resources.
package controllers

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	apierrs "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/handler"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
	"github.com/borchero/cloudflare-dns-operator/internal/cloudflare"
	"github.com/borchero/cloudflare-dns-operator/internal/conditions"
	"github.com/borchero/cloudflare-dns-operator/internal/dnscheck"
	"github.com/borchero/cloudflare-dns-operator/internal/resolve"
)

// finalizer guards resource deletion until the upstream DNS record has been cleaned up.
const finalizer = "dns.cloudflare.com/delete-dns-record"

const (
	// successRequeueInterval is the interval at which successfully applied records are drifted
	// back into their desired state.
	successRequeueInterval = 5 * time.Minute
	// failureRequeueInterval is the interval after which a failed reconciliation is retried.
	failureRequeueInterval = 15 * time.Second
)

// DNSRecordReconciler reconciles CloudflareDNSRecord resources against the Cloudflare API.
type DNSRecordReconciler struct {
	client.Client
	logger   *zap.Logger
	cfClient cloudflare.Client
	checker  *dnscheck.Checker
	state    *dnscheck.MatchState
}

// NewDNSRecordReconciler creates a new DNSRecordReconciler.
func NewDNSRecordReconciler(
	ctrlClient client.Client,
	logger *zap.Logger,
	cfClient cloudflare.Client,
	checker *dnscheck.Checker,
	state *dnscheck.MatchState,
) *DNSRecordReconciler {
	return &DNSRecordReconciler{
		Client:   ctrlClient,
		logger:   logger,
		cfClient: cfClient,
		checker:  checker,
		state:    state,
	}
}

// Reconcile is part of the main kubernetes reconciliation loop which aims to move the current
// state of the cluster closer to the desired state.
func (r *DNSRecordReconciler) Reconcile(
	ctx context.Context, req ctrl.Request,
) (ctrl.Result, error) {
	logger := r.logger.With(zap.String("name", req.String()))

	// First, we retrieve the full resource
	var record v1alpha1.CloudflareDNSRecord
	if err := r.Get(ctx, req.NamespacedName, &record); err != nil {
		if !apierrs.IsNotFound(err) {
			logger.Error("unable to query for dns record", zap.Error(err))
		}
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	// A resource that is being deleted only requires upstream cleanup
	if record.DeletionTimestamp != nil {
		if controllerutil.ContainsFinalizer(&record, finalizer) {
			r.cleanup(ctx, logger, &record)
			controllerutil.RemoveFinalizer(&record, finalizer)
			if err := r.Update(ctx, &record); err != nil {
				logger.Error("failed to remove finalizer", zap.Error(err))
				return ctrl.Result{}, err
			}
			logger.Info("cleaned up dns record")
		}
		return ctrl.Result{}, nil
	}

	// Otherwise, the finalizer must be in place before any upstream state is created
	if !controllerutil.ContainsFinalizer(&record, finalizer) {
		controllerutil.AddFinalizer(&record, finalizer)
		if err := r.Update(ctx, &record); err != nil {
			logger.Error("failed to add finalizer", zap.Error(err))
			return ctrl.Result{}, err
		}
	}

	return r.apply(ctx, logger, &record)
}

// apply drives the upstream DNS record towards the resource's desired state and persists the
// outcome in the resource's status.
func (r *DNSRecordReconciler) apply(
	ctx context.Context, logger *zap.Logger, record *v1alpha1.CloudflareDNSRecord,
) (ctrl.Result, error) {
	original := record.DeepCopy()

	// If the DNS name changed since the last successful apply, the record under the old name must
	// be removed or it would linger upstream forever
	previousName := record.Status.RecordName
	if previousName != "" && previousName != record.Spec.Name && record.Status.ZoneID != "" {
		err := r.cfClient.DeleteRecordByName(ctx, record.Status.ZoneID, previousName)
		switch {
		case err == nil:
			logger.Info("deleted record under previous name", zap.String("record", previousName))
		case cloudflare.IsNotFound(err) || errors.Is(err, cloudflare.ErrRecordNotFound):
			logger.Warn("record under previous name is already gone",
				zap.String("record", previousName))
		default:
			logger.Error("failed to delete record under previous name", zap.Error(err))
			return ctrl.Result{RequeueAfter: failureRequeueInterval}, nil
		}
	}

	// Resolve the desired content, typically a verbatim value or a service IP
	content, err := resolve.Content(ctx, r.Client, logger, record)
	if err != nil {
		logger.Error("failed to resolve record content", zap.Error(err))
		return ctrl.Result{RequeueAfter: failureRequeueInterval}, nil
	}
	if content == nil {
		logger.Warn("record content cannot be determined")
		return r.persistStatus(ctx, logger, original, record, conditions.Error(
			record, "MissingContent", "the record's content cannot be determined",
		))
	}

	// Resolve the target zone
	zoneID, err := resolve.ZoneID(
		ctx, r.Client, r.cfClient, logger, record.Namespace, record.Spec.Zone,
	)
	if err != nil {
		logger.Error("failed to resolve zone", zap.Error(err))
		return ctrl.Result{RequeueAfter: failureRequeueInterval}, nil
	}
	if zoneID == nil {
		logger.Warn("record zone cannot be determined")
		return r.persistStatus(ctx, logger, original, record, conditions.Error(
			record, "MissingZone", "the record's zone cannot be determined",
		))
	}

	// Upsert the record upstream
	upstream, err := r.cfClient.CreateOrReplaceRecord(ctx, *zoneID, cloudflare.CreateRecordParams{
		Name:    record.Spec.Name,
		Type:    string(record.Spec.RecordTypeOrDefault()),
		Content: *content,
		TTL:     record.Spec.TTL,
		Proxied: record.Spec.Proxied,
		Comment: record.Spec.Comment,
		Tags:    record.Spec.Tags,
	})
	switch {
	case err == nil:
		record.Status.RecordID = upstream.ID
		record.Status.ZoneID = *zoneID
		record.Status.RecordName = record.Spec.Name
	case cloudflare.IsConflict(err):
		// Another record with the same name is managed outside of this controller, a retry on
		// the regular schedule may succeed once it is gone
		logger.Warn("record conflicts with an unmanaged upstream record", zap.Error(err))
		return r.persistStatus(ctx, logger, original, record, conditions.Error(
			record, "Conflict", "the record conflicts with an existing upstream record",
		))
	case cloudflare.IsNotFound(err):
		logger.Warn("upstream state changed concurrently during upsert", zap.Error(err))
		return r.persistStatus(ctx, logger, original, record, conditions.Error(
			record, "UpstreamGone", "the upstream state changed concurrently, retrying",
		))
	default:
		logger.Error("failed to upsert record", zap.Error(err))
		return ctrl.Result{RequeueAfter: failureRequeueInterval}, nil
	}

	// Compute the pending flag from the most recent DNS query, pessimistically assuming that a
	// freshly created record has not propagated yet
	pending := false
	if r.checker.Enabled() {
		pending = !r.state.Matches(dnscheck.Key(record.Namespace, record.Name))
	}
	record.Status.Pending = pending

	condition := conditions.Success(record)
	if pending {
		condition = conditions.Error(
			record, "Pending", "the record has been applied but dns propagation may take some time",
		)
	}
	result, err := r.persistStatus(ctx, logger, original, record, condition)
	if err != nil {
		return result, err
	}

	// A record that has just been applied for the first time is checked eagerly so that its
	// pending flag does not have to wait for the next periodic pass
	if original.Status.RecordID == "" && record.Status.RecordID != "" {
		r.checker.RequestCheck(record.Name, record.Namespace)
	}

	logger.Info("dns record is up to date", zap.Bool("pending", pending))
	return result, nil
}

// persistStatus writes the given condition into the resource's status and patches the status
// subresource relative to the original object.
func (r *DNSRecordReconciler) persistStatus(
	ctx context.Context,
	logger *zap.Logger,
	original, record *v1alpha1.CloudflareDNSRecord,
	condition metav1.Condition,
) (ctrl.Result, error) {
	record.Status.Conditions = []metav1.Condition{condition}
	if err := r.Status().Patch(ctx, record, client.MergeFrom(original)); err != nil {
		logger.Error("failed to update status", zap.Error(err))
		return ctrl.Result{}, err
	}
	return ctrl.Result{RequeueAfter: successRequeueInterval}, nil
}

// cleanup deletes the upstream record that was created for the given resource, if any. Failures
// are logged but never block resource deletion, the upstream record then requires manual cleanup.
func (r *DNSRecordReconciler) cleanup(
	ctx context.Context, logger *zap.Logger, record *v1alpha1.CloudflareDNSRecord,
) {
	defer r.state.Forget(dnscheck.Key(record.Namespace, record.Name))

	if record.Status.RecordID == "" || record.Status.ZoneID == "" {
		logger.Debug("no upstream record to clean up")
		return
	}
	err := r.cfClient.DeleteRecord(ctx, record.Status.ZoneID, record.Status.RecordID)
	switch {
	case err == nil:
	case cloudflare.IsNotFound(err):
		logger.Warn("upstream record is already gone")
	default:
		logger.Error("failed to delete upstream record, manual cleanup required",
			zap.String("zone", record.Status.ZoneID),
			zap.String("record", record.Status.RecordID),
			zap.Error(err))
	}
}

// SetupWithManager sets up the controller with the Manager.
func (r *DNSRecordReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.CloudflareDNSRecord{}).
		Watches(
			&corev1.Service{},
			handler.EnqueueRequestsFromMapFunc(r.recordsForService),
			builder.WithPredicates(publiclyExposedService()),
		).
		WatchesRawSource(r.checker.TriggerSource()).
		Complete(r)
}
