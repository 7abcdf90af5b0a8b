// Package dnscheck periodically verifies whether managed DNS records have propagated to a public
// resolver. Whenever the propagation state of a record flips, the checker emits a generic event
// that re-triggers the record's reconciliation so that the pending flag in its status converges
// quickly.
package dnscheck

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/source"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
	"github.com/borchero/cloudflare-dns-operator/internal/resolve"
)

const checkTimeout = 10 * time.Second

// Request asks the checker to verify a single resource outside its periodic schedule. Requests
// are submitted on first apply so that a freshly created record does not have to wait a full
// interval for its pending flag to clear.
type Request struct {
	Name      string
	Namespace string
}

// Checker periodically queries a public resolver for all managed DNS records and tracks, per
// resource, whether the answer matches the record's desired content. It is run as a manager
// runnable.
type Checker struct {
	client   client.Client
	logger   *zap.Logger
	interval time.Duration
	resolver string
	lookup   LookupFunc
	state    *MatchState
	requests chan Request
	triggers chan event.GenericEvent
}

// CheckerOption customizes the behavior of a checker.
type CheckerOption func(*Checker)

// WithResolver sets the resolver address that DNS queries are issued against.
func WithResolver(resolver string) CheckerOption {
	return func(c *Checker) {
		c.resolver = resolver
	}
}

// WithLookup replaces the function used to perform DNS queries.
func WithLookup(lookup LookupFunc) CheckerOption {
	return func(c *Checker) {
		c.lookup = lookup
	}
}

// NewChecker creates a new checker which runs a verification pass every interval. An interval of
// zero disables checking entirely.
func NewChecker(
	ctrlClient client.Client,
	logger *zap.Logger,
	interval time.Duration,
	state *MatchState,
	options ...CheckerOption,
) *Checker {
	checker := &Checker{
		client:   ctrlClient,
		logger:   logger,
		interval: interval,
		resolver: DefaultResolver,
		lookup:   Lookup,
		state:    state,
		requests: make(chan Request, 64),
		triggers: make(chan event.GenericEvent, 64),
	}
	for _, option := range options {
		option(checker)
	}
	return checker
}

// Enabled returns whether the checker performs any work.
func (c *Checker) Enabled() bool {
	return c.interval > 0
}

// RequestCheck asks the checker to verify the given resource as soon as possible. The request is
// dropped if the checker is disabled or its queue is full, the next periodic pass covers the
// resource regardless.
func (c *Checker) RequestCheck(name, namespace string) {
	if !c.Enabled() {
		return
	}
	select {
	case c.requests <- Request{Name: name, Namespace: namespace}:
	default:
		c.logger.Debug("dropping check request, queue is full",
			zap.String("name", name), zap.String("namespace", namespace))
	}
}

// TriggerSource returns an event source which emits a reconciliation request whenever the
// propagation state of a resource flips. It is meant to be registered as a raw watch source on
// the record controller.
func (c *Checker) TriggerSource() source.Source {
	return source.Channel(c.triggers, &handler.EnqueueRequestForObject{})
}

// Start runs the checker until the given context is cancelled. It implements the
// manager.Runnable interface.
func (c *Checker) Start(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	c.logger.Info("starting dns checker",
		zap.Duration("interval", c.interval), zap.String("resolver", c.resolver))

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.checkAll(ctx)
		case request := <-c.requests:
			c.checkOne(ctx, request)
		}
	}
}

func (c *Checker) checkAll(ctx context.Context) {
	var list v1alpha1.CloudflareDNSRecordList
	if err := c.client.List(ctx, &list); err != nil {
		c.logger.Error("failed to list dns records for checking", zap.Error(err))
		return
	}
	for i := range list.Items {
		c.check(ctx, &list.Items[i])
	}
}

func (c *Checker) checkOne(ctx context.Context, request Request) {
	var record v1alpha1.CloudflareDNSRecord
	name := types.NamespacedName{Name: request.Name, Namespace: request.Namespace}
	if err := c.client.Get(ctx, name, &record); err != nil {
		// The resource may have been deleted in the meantime, nothing to do
		return
	}
	c.check(ctx, &record)
}

// check queries the resolver for a single record and updates the match state. A state flip emits
// a trigger event for the record's reconciler.
func (c *Checker) check(ctx context.Context, record *v1alpha1.CloudflareDNSRecord) {
	if record.Status.RecordID == "" {
		// The record has not been applied upstream yet, a query cannot succeed
		return
	}
	logger := c.logger.With(
		zap.String("name", record.Name), zap.String("namespace", record.Namespace),
	)

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	content, err := resolve.Content(ctx, c.client, logger, record)
	if err != nil || content == nil {
		logger.Error("cannot determine expected content, skipping check", zap.Error(err))
		return
	}

	matched := false
	answers, err := c.lookup(ctx, record.Spec.Name, record.Spec.RecordTypeOrDefault(), c.resolver)
	switch {
	case errors.Is(err, ErrUnsupportedType):
		logger.Warn("record type cannot be checked via dns query",
			zap.String("type", string(record.Spec.RecordTypeOrDefault())))
		return
	case err != nil:
		// A failed query counts as "not yet propagated", it resolves itself on a later pass
		logger.Debug("dns query failed", zap.Error(err))
	default:
		matched = slices.Contains(answers, *content)
	}

	if c.state.Update(Key(record.Namespace, record.Name), matched) {
		logger.Debug("dns propagation state changed", zap.Bool("matched", matched))
		c.emitTrigger(record.Name, record.Namespace)
	}
}

func (c *Checker) emitTrigger(name, namespace string) {
	trigger := event.GenericEvent{
		Object: &v1alpha1.CloudflareDNSRecord{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		},
	}
	select {
	case c.triggers <- trigger:
	default:
		c.logger.Warn("dropping reconciliation trigger, channel is full",
			zap.String("name", name), zap.String("namespace", namespace))
	}
}
