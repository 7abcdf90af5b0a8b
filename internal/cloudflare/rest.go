package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.cloudflare.com/client/v4"
	zoneCacheTTL   = 5 * time.Minute
	recordCacheTTL = time.Minute
	zoneCacheKey   = "zones"
)

type restClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger
	zones   *cache[[]Zone]
	records *cache[[]DNSRecord]
}

// Option allows to customize the client returned by NewClient.
type Option func(*restClient)

// WithBaseURL overrides the URL that API requests are sent to. This is primarily useful for
// testing against a local HTTP server.
func WithBaseURL(url string) Option {
	return func(c *restClient) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for API requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *restClient) {
		c.client = client
	}
}

// WithClock overrides the clock that cache expiry is measured against.
func WithClock(now func() time.Time) Option {
	return func(c *restClient) {
		c.zones = newCache[[]Zone](zoneCacheTTL, now)
		c.records = newCache[[]DNSRecord](recordCacheTTL, now)
	}
}

// NewClient creates a new client which authenticates against the Cloudflare API with the given
// token.
func NewClient(token string, logger *zap.Logger, options ...Option) Client {
	client := &restClient{
		baseURL: defaultBaseURL,
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		zones:   newCache[[]Zone](zoneCacheTTL, time.Now),
		records: newCache[[]DNSRecord](recordCacheTTL, time.Now),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// ListZones implements the Client interface.
func (c *restClient) ListZones(ctx context.Context) ([]Zone, error) {
	if zones, ok := c.zones.get(zoneCacheKey); ok {
		return zones, nil
	}
	zones, err := request[[]Zone](ctx, c, http.MethodGet, "/zones", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	c.zones.put(zoneCacheKey, zones)
	return zones, nil
}

// ListRecords implements the Client interface.
func (c *restClient) ListRecords(ctx context.Context, zoneID string) ([]DNSRecord, error) {
	if records, ok := c.records.get(zoneID); ok {
		return records, nil
	}
	records, err := request[[]DNSRecord](
		ctx, c, http.MethodGet, fmt.Sprintf("/zones/%s/dns_records", zoneID), nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records of zone %q: %w", zoneID, err)
	}
	c.records.put(zoneID, records)
	return records, nil
}

// CreateRecord implements the Client interface.
func (c *restClient) CreateRecord(
	ctx context.Context, zoneID string, params CreateRecordParams,
) (DNSRecord, error) {
	// The cache must be invalidated regardless of the outcome: a failed request may still have
	// mutated state at the provider.
	defer c.records.invalidate(zoneID)

	c.logger.Info("creating dns record",
		zap.String("zone", zoneID), zap.String("name", params.Name), zap.String("type", params.Type))
	body := createRecordBody{CreateRecordParams: params, ID: newRecordID()}
	record, err := request[DNSRecord](
		ctx, c, http.MethodPost, fmt.Sprintf("/zones/%s/dns_records", zoneID), body,
	)
	if err != nil {
		return DNSRecord{}, fmt.Errorf("failed to create record %q: %w", params.Name, err)
	}
	return record, nil
}

// DeleteRecord implements the Client interface.
func (c *restClient) DeleteRecord(ctx context.Context, zoneID, recordID string) error {
	defer c.records.invalidate(zoneID)

	c.logger.Info("deleting dns record",
		zap.String("zone", zoneID), zap.String("record", recordID))
	_, err := request[json.RawMessage](
		ctx, c, http.MethodDelete, fmt.Sprintf("/zones/%s/dns_records/%s", zoneID, recordID), nil,
	)
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", recordID, err)
	}
	return nil
}

// DeleteRecordByName implements the Client interface.
func (c *restClient) DeleteRecordByName(ctx context.Context, zoneID, name string) error {
	records, err := c.ListRecords(ctx, zoneID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if record.Name == name {
			return c.DeleteRecord(ctx, zoneID, record.ID)
		}
	}
	return fmt.Errorf("%w: %q", ErrRecordNotFound, name)
}

// CreateOrReplaceRecord implements the Client interface.
func (c *restClient) CreateOrReplaceRecord(
	ctx context.Context, zoneID string, params CreateRecordParams,
) (DNSRecord, error) {
	records, err := c.ListRecords(ctx, zoneID)
	if err != nil {
		return DNSRecord{}, err
	}

	for _, record := range records {
		if record.Name != params.Name {
			continue
		}
		if record.Content == params.Content {
			c.logger.Debug("dns record already up to date",
				zap.String("name", params.Name), zap.String("content", params.Content))
			return record, nil
		}
		// No partial update: until the new record is created below, no record exists under this
		// name at the provider.
		c.logger.Warn("replacing existing dns record",
			zap.String("name", params.Name),
			zap.String("oldContent", record.Content),
			zap.String("newContent", params.Content))
		if err := c.DeleteRecord(ctx, zoneID, record.ID); err != nil {
			return DNSRecord{}, fmt.Errorf("failed to delete record being replaced: %w", err)
		}
		break
	}

	return c.CreateRecord(ctx, zoneID, params)
}

//-------------------------------------------------------------------------------------------------
// UTILS
//-------------------------------------------------------------------------------------------------

// createRecordBody augments the create parameters with a client-generated record ID. Cloudflare
// limits IDs to 32 characters, which a dash-less UUID fits exactly.
type createRecordBody struct {
	CreateRecordParams
	ID string `json:"id"`
}

func newRecordID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// apiResponse is the envelope that wraps every response of the Cloudflare API.
type apiResponse[T any] struct {
	Errors   json.RawMessage `json:"errors"`
	Messages json.RawMessage `json:"messages"`
	Result   T               `json:"result"`
	Success  bool            `json:"success"`
}

func request[T any](
	ctx context.Context, c *restClient, method, path string, body any,
) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("failed to perform request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return zero, fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return zero, &APIError{StatusCode: res.StatusCode, Body: string(data)}
	}

	var response apiResponse[T]
	if err := json.Unmarshal(data, &response); err != nil {
		return zero, fmt.Errorf("failed to decode response body: %w", err)
	}
	if !response.Success {
		return zero, &APIError{StatusCode: res.StatusCode, Body: string(data)}
	}
	return response.Result, nil
}
