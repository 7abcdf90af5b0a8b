// Package cloudflaretest provides an in-memory implementation of the Cloudflare client for use
// in tests.
package cloudflaretest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/borchero/cloudflare-dns-operator/internal/cloudflare"
)

// FakeClient is an in-memory implementation of cloudflare.Client which records all mutating
// calls. It is safe for concurrent use.
type FakeClient struct {
	mu      sync.Mutex
	zones   []cloudflare.Zone
	records map[string][]cloudflare.DNSRecord

	// CreateCalls lists the names of all records passed to create calls, in order.
	CreateCalls []string
	// DeleteCalls lists the IDs of all records passed to delete calls, in order.
	DeleteCalls []string
	// Err is returned verbatim by all calls if set.
	Err error
}

// NewFakeClient creates a new fake client serving the given zones.
func NewFakeClient(zones ...cloudflare.Zone) *FakeClient {
	return &FakeClient{
		zones:   zones,
		records: make(map[string][]cloudflare.DNSRecord),
	}
}

// SetRecords replaces the records of the given zone.
func (c *FakeClient) SetRecords(zoneID string, records []cloudflare.DNSRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[zoneID] = records
}

// Records returns a copy of the records of the given zone.
func (c *FakeClient) Records(zoneID string) []cloudflare.DNSRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]cloudflare.DNSRecord, len(c.records[zoneID]))
	copy(records, c.records[zoneID])
	return records
}

// ListZones implements the cloudflare.Client interface.
func (c *FakeClient) ListZones(ctx context.Context) ([]cloudflare.Zone, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	return c.zones, nil
}

// ListRecords implements the cloudflare.Client interface.
func (c *FakeClient) ListRecords(
	ctx context.Context, zoneID string,
) ([]cloudflare.DNSRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, c.Err
	}
	return c.records[zoneID], nil
}

// CreateRecord implements the cloudflare.Client interface.
func (c *FakeClient) CreateRecord(
	ctx context.Context, zoneID string, params cloudflare.CreateRecordParams,
) (cloudflare.DNSRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return cloudflare.DNSRecord{}, c.Err
	}
	return c.create(zoneID, params), nil
}

// DeleteRecord implements the cloudflare.Client interface.
func (c *FakeClient) DeleteRecord(ctx context.Context, zoneID, recordID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	return c.delete(zoneID, recordID)
}

// DeleteRecordByName implements the cloudflare.Client interface.
func (c *FakeClient) DeleteRecordByName(ctx context.Context, zoneID, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	for _, record := range c.records[zoneID] {
		if record.Name == name {
			return c.delete(zoneID, record.ID)
		}
	}
	return fmt.Errorf("%w: %q", cloudflare.ErrRecordNotFound, name)
}

// CreateOrReplaceRecord implements the cloudflare.Client interface.
func (c *FakeClient) CreateOrReplaceRecord(
	ctx context.Context, zoneID string, params cloudflare.CreateRecordParams,
) (cloudflare.DNSRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return cloudflare.DNSRecord{}, c.Err
	}
	for _, record := range c.records[zoneID] {
		if record.Name != params.Name {
			continue
		}
		if record.Content == params.Content {
			return record, nil
		}
		if err := c.delete(zoneID, record.ID); err != nil {
			return cloudflare.DNSRecord{}, err
		}
		break
	}
	return c.create(zoneID, params), nil
}

func (c *FakeClient) create(
	zoneID string, params cloudflare.CreateRecordParams,
) cloudflare.DNSRecord {
	c.CreateCalls = append(c.CreateCalls, params.Name)
	record := cloudflare.DNSRecord{
		ID:      uuid.NewString(),
		Name:    params.Name,
		Type:    params.Type,
		Content: params.Content,
		TTL:     1,
		ZoneID:  zoneID,
	}
	if params.TTL != nil {
		record.TTL = *params.TTL
	}
	c.records[zoneID] = append(c.records[zoneID], record)
	return record
}

func (c *FakeClient) delete(zoneID, recordID string) error {
	c.DeleteCalls = append(c.DeleteCalls, recordID)
	for i, record := range c.records[zoneID] {
		if record.ID == recordID {
			c.records[zoneID] = append(c.records[zoneID][:i], c.records[zoneID][i+1:]...)
			return nil
		}
	}
	return &cloudflare.APIError{StatusCode: 404, Body: "record not found"}
}
