// Package cloudflare provides a client for the subset of the Cloudflare v4 API that is required
// to manage DNS records. All read operations are served through TTL caches which are invalidated
// whenever a mutating call targets the corresponding zone.
package cloudflare

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Client allows to manage zones and DNS records at Cloudflare.
type Client interface {
	// ListZones returns all zones that are accessible with the client's API token.
	ListZones(ctx context.Context) ([]Zone, error)

	// ListRecords returns all DNS records in the zone with the given ID.
	ListRecords(ctx context.Context, zoneID string) ([]DNSRecord, error)

	// CreateRecord creates a new DNS record in the zone with the given ID.
	CreateRecord(ctx context.Context, zoneID string, params CreateRecordParams) (DNSRecord, error)

	// DeleteRecord deletes the DNS record with the given ID from the given zone.
	DeleteRecord(ctx context.Context, zoneID, recordID string) error

	// DeleteRecordByName looks up the record with the given DNS name in the given zone and
	// deletes it. If no record with the given name exists, an error wrapping
	// ErrRecordNotFound is returned.
	DeleteRecordByName(ctx context.Context, zoneID, name string) error

	// CreateOrReplaceRecord ensures that the given zone contains a record as described by the
	// given parameters. If a record with the same name already exists with identical content, it
	// is returned unchanged and no mutating call is issued. If it exists with different content,
	// it is deleted and a new record is created: the Cloudflare API in use here provides no
	// partial update, so every content change is briefly visible as a missing record.
	CreateOrReplaceRecord(
		ctx context.Context, zoneID string, params CreateRecordParams,
	) (DNSRecord, error)
}

// Zone describes a Cloudflare zone.
type Zone struct {
	// ID is the zone's unique identifier.
	ID string `json:"id"`
	// Name is the zone's domain name.
	Name string `json:"name"`
}

// DNSRecord describes a DNS record as returned by the Cloudflare API.
type DNSRecord struct {
	// ID is the record's unique identifier.
	ID string `json:"id"`
	// Name is the record's full DNS name.
	Name string `json:"name"`
	// Type is the record's type (e.g. `A`).
	Type string `json:"type"`
	// Content is the record's content.
	Content string `json:"content"`
	// TTL is the record's time-to-live in seconds (1 for Cloudflare's automatic TTL).
	TTL int64 `json:"ttl"`
	// Proxied indicates whether the record is proxied through Cloudflare.
	Proxied bool `json:"proxied"`
	// Comment is the comment attached to the record, if any.
	Comment string `json:"comment,omitempty"`
	// Tags is the list of tags attached to the record.
	Tags []string `json:"tags,omitempty"`
	// ZoneID is the ID of the zone that the record lives in.
	ZoneID string `json:"zone_id"`
	// ZoneName is the domain name of the zone that the record lives in.
	ZoneName string `json:"zone_name"`
}

// CreateRecordParams bundles the parameters for creating a DNS record.
type CreateRecordParams struct {
	// Name is the record's full DNS name.
	Name string `json:"name"`
	// Type is the record's type.
	Type string `json:"type"`
	// Content is the record's content.
	Content string `json:"content"`
	// TTL optionally overrides Cloudflare's automatic TTL.
	TTL *int64 `json:"ttl,omitempty"`
	// Proxied determines whether the record is proxied through Cloudflare.
	Proxied *bool `json:"proxied,omitempty"`
	// Comment is an arbitrary comment attached to the record.
	Comment *string `json:"comment,omitempty"`
	// Tags is a list of tags attached to the record.
	Tags []string `json:"tags,omitempty"`
}

//-------------------------------------------------------------------------------------------------

// ErrRecordNotFound is returned when a record that is referenced by its DNS name does not exist.
var ErrRecordNotFound = errors.New("no record found with the given name")

// APIError describes a non-success response of the Cloudflare API.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Body is the raw response body.
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("cloudflare api error: status=%d, body=%q", e.StatusCode, e.Body)
}

// IsNotFound returns whether the given error is an API error with HTTP status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict returns whether the given error is an API error with HTTP status 409.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}
