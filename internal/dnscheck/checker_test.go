package dnscheck

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/borchero/cloudflare-dns-operator/api/v1alpha1"
	"github.com/borchero/cloudflare-dns-operator/internal/k8tests"
)

func staticLookup(answers []string, err error) LookupFunc {
	return func(
		ctx context.Context, name string, recordType v1alpha1.RecordType, resolver string,
	) ([]string, error) {
		return answers, err
	}
}

func appliedDummyRecord(name, namespace, dnsName, content string) *v1alpha1.CloudflareDNSRecord {
	record := k8tests.DummyDNSRecord(name, namespace, dnsName, content)
	record.Status.RecordID = "record-1"
	return &record
}

func TestCheckEmitsTriggerOnStateFlip(t *testing.T) {
	ctx := context.Background()
	record := appliedDummyRecord("record", "default", "www.example.com", "10.0.0.1")
	ctrlClient := k8tests.NewClient(k8tests.NewScheme(), record)
	state := NewMatchState()

	checker := NewChecker(
		ctrlClient, zap.NewNop(), time.Minute, state,
		WithLookup(staticLookup([]string{"10.0.0.1"}, nil)),
	)

	// The first match flips the state and emits a trigger
	checker.check(ctx, record)
	assert.True(t, state.Matches(Key("default", "record")))
	require.Len(t, checker.triggers, 1)
	trigger := <-checker.triggers
	assert.Equal(t, "record", trigger.Object.GetName())
	assert.Equal(t, "default", trigger.Object.GetNamespace())

	// A repeated match does not emit another trigger
	checker.check(ctx, record)
	assert.Len(t, checker.triggers, 0)

	// A mismatch flips the state back and emits a trigger again
	checker.lookup = staticLookup([]string{"10.0.0.2"}, nil)
	checker.check(ctx, record)
	assert.False(t, state.Matches(Key("default", "record")))
	assert.Len(t, checker.triggers, 1)
}

func TestCheckSkipsUnappliedRecords(t *testing.T) {
	ctx := context.Background()
	record := k8tests.DummyDNSRecord("record", "default", "www.example.com", "10.0.0.1")
	ctrlClient := k8tests.NewClient(k8tests.NewScheme(), &record)
	state := NewMatchState()

	checker := NewChecker(
		ctrlClient, zap.NewNop(), time.Minute, state,
		WithLookup(staticLookup([]string{"10.0.0.1"}, nil)),
	)
	checker.check(ctx, &record)

	assert.False(t, state.Matches(Key("default", "record")))
	assert.Len(t, checker.triggers, 0)
}

func TestCheckTreatsQueryErrorsAsMismatch(t *testing.T) {
	ctx := context.Background()
	record := appliedDummyRecord("record", "default", "www.example.com", "10.0.0.1")
	ctrlClient := k8tests.NewClient(k8tests.NewScheme(), record)
	state := NewMatchState()
	state.Update(Key("default", "record"), true)

	checker := NewChecker(
		ctrlClient, zap.NewNop(), time.Minute, state,
		WithLookup(staticLookup(nil, context.DeadlineExceeded)),
	)
	checker.check(ctx, record)

	// A failed query flips a previously matching record back to pending
	assert.False(t, state.Matches(Key("default", "record")))
	assert.Len(t, checker.triggers, 1)
}

func TestCheckAllCoversAllRecords(t *testing.T) {
	ctx := context.Background()
	first := appliedDummyRecord("first", "default", "a.example.com", "10.0.0.1")
	second := appliedDummyRecord("second", "other", "b.example.com", "10.0.0.1")
	ctrlClient := k8tests.NewClient(k8tests.NewScheme(), first, second)
	state := NewMatchState()

	checker := NewChecker(
		ctrlClient, zap.NewNop(), time.Minute, state,
		WithLookup(staticLookup([]string{"10.0.0.1"}, nil)),
	)
	checker.checkAll(ctx)

	assert.True(t, state.Matches(Key("default", "first")))
	assert.True(t, state.Matches(Key("other", "second")))
	assert.Len(t, checker.triggers, 2)
}

func TestRequestCheckNoopWhenDisabled(t *testing.T) {
	checker := NewChecker(nil, zap.NewNop(), 0, NewMatchState())
	assert.False(t, checker.Enabled())

	checker.RequestCheck("record", "default")
	assert.Len(t, checker.requests, 0)

	// A disabled checker returns from Start immediately
	require.Nil(t, checker.Start(context.Background()))
}

func TestRequestCheckQueuesRequest(t *testing.T) {
	checker := NewChecker(nil, zap.NewNop(), time.Minute, NewMatchState())
	checker.RequestCheck("record", "default")
	require.Len(t, checker.requests, 1)
	request := <-checker.requests
	assert.Equal(t, Request{Name: "record", Namespace: "default"}, request)
}

func TestCheckSkipsUncheckableTypes(t *testing.T) {
	ctx := context.Background()
	record := appliedDummyRecord("record", "default", "www.example.com", "content")
	srv := v1alpha1.RecordTypeSRV
	record.Spec.Type = &srv
	ctrlClient := k8tests.NewClient(k8tests.NewScheme(), record)
	state := NewMatchState()
	state.Update(Key("default", "record"), true)

	checker := NewChecker(
		ctrlClient, zap.NewNop(), time.Minute, state,
		WithLookup(staticLookup(nil, ErrUnsupportedType)),
	)
	checker.check(ctx, record)

	// The previous match state must remain untouched and no trigger may be emitted
	assert.True(t, state.Matches(Key("default", "record")))
	assert.Len(t, checker.triggers, 0)
}

func TestLookupUnsupportedType(t *testing.T) {
	_, err := Lookup(
		context.Background(), "www.example.com", v1alpha1.RecordTypeLOC, DefaultResolver,
	)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
