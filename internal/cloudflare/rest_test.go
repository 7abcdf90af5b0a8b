package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListZonesCache(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.zones = []Zone{{ID: "zone-1", Name: "example.com"}}
	server := httptest.NewServer(api)
	defer server.Close()

	clock := &fakeClock{current: time.Now()}
	client := NewClient(
		"token", zap.NewNop(), WithBaseURL(server.URL), WithClock(clock.Now),
	)

	// Two listings within the TTL window must be served by a single API call
	zones, err := client.ListZones(ctx)
	require.Nil(t, err)
	assert.Equal(t, []Zone{{ID: "zone-1", Name: "example.com"}}, zones)
	zones, err = client.ListZones(ctx)
	require.Nil(t, err)
	assert.Equal(t, []Zone{{ID: "zone-1", Name: "example.com"}}, zones)
	assert.Equal(t, 1, api.calls("GET /zones"))

	// Once the TTL expired, a fresh API call must be issued
	clock.Advance(zoneCacheTTL + time.Second)
	_, err = client.ListZones(ctx)
	require.Nil(t, err)
	assert.Equal(t, 2, api.calls("GET /zones"))
}

func TestListRecordsCacheInvalidationOnWrite(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.records["zone-1"] = []DNSRecord{}
	server := httptest.NewServer(api)
	defer server.Close()

	client := NewClient("token", zap.NewNop(), WithBaseURL(server.URL))

	_, err := client.ListRecords(ctx, "zone-1")
	require.Nil(t, err)
	_, err = client.ListRecords(ctx, "zone-1")
	require.Nil(t, err)
	assert.Equal(t, 1, api.calls("GET /zones/zone-1/dns_records"))

	// A mutating call must invalidate the cache even though the TTL has not expired
	_, err = client.CreateRecord(ctx, "zone-1", CreateRecordParams{
		Name: "www.example.com", Type: "A", Content: "10.0.0.1",
	})
	require.Nil(t, err)
	_, err = client.ListRecords(ctx, "zone-1")
	require.Nil(t, err)
	assert.Equal(t, 2, api.calls("GET /zones/zone-1/dns_records"))
}

func TestCreateOrReplaceRecordIdempotent(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.records["zone-1"] = []DNSRecord{}
	server := httptest.NewServer(api)
	defer server.Close()

	client := NewClient("token", zap.NewNop(), WithBaseURL(server.URL))
	params := CreateRecordParams{Name: "www.example.com", Type: "A", Content: "10.0.0.1"}

	first, err := client.CreateOrReplaceRecord(ctx, "zone-1", params)
	require.Nil(t, err)
	assert.Equal(t, "10.0.0.1", first.Content)

	// The second upsert must not issue any write call and return the identical record
	second, err := client.CreateOrReplaceRecord(ctx, "zone-1", params)
	require.Nil(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Content, second.Content)
	assert.Equal(t, 1, api.calls("POST /zones/zone-1/dns_records"))
	assert.Equal(t, 0, api.deleteCalls())
}

func TestCreateOrReplaceRecordContentChange(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.records["zone-1"] = []DNSRecord{{
		ID: "old-record", Name: "www.example.com", Type: "A", Content: "10.0.0.1",
		ZoneID: "zone-1",
	}}
	server := httptest.NewServer(api)
	defer server.Close()

	client := NewClient("token", zap.NewNop(), WithBaseURL(server.URL))
	record, err := client.CreateOrReplaceRecord(ctx, "zone-1", CreateRecordParams{
		Name: "www.example.com", Type: "A", Content: "10.0.0.2",
	})
	require.Nil(t, err)

	// Exactly one delete followed by exactly one create
	assert.Equal(t, 1, api.deleteCalls())
	assert.Equal(t, 1, api.calls("POST /zones/zone-1/dns_records"))
	assert.Equal(t, "10.0.0.2", record.Content)
	assert.NotEqual(t, "old-record", record.ID)
}

func TestDeleteRecordByName(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.records["zone-1"] = []DNSRecord{{
		ID: "record-1", Name: "www.example.com", Type: "A", Content: "10.0.0.1",
		ZoneID: "zone-1",
	}}
	server := httptest.NewServer(api)
	defer server.Close()

	client := NewClient("token", zap.NewNop(), WithBaseURL(server.URL))
	err := client.DeleteRecordByName(ctx, "zone-1", "www.example.com")
	require.Nil(t, err)
	assert.Equal(t, 1, api.deleteCalls())

	err = client.DeleteRecordByName(ctx, "zone-1", "www.example.com")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestAPIErrorStatusCodes(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodDelete:
				w.WriteHeader(http.StatusNotFound)
			default:
				w.WriteHeader(http.StatusConflict)
			}
			fmt.Fprint(w, `{"errors": [], "messages": [], "result": null, "success": false}`)
		}),
	)
	defer server.Close()

	client := NewClient("token", zap.NewNop(), WithBaseURL(server.URL))

	err := client.DeleteRecord(ctx, "zone-1", "record-1")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))

	_, err = client.CreateRecord(ctx, "zone-1", CreateRecordParams{Name: "www.example.com"})
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

//-------------------------------------------------------------------------------------------------
// FAKES
//-------------------------------------------------------------------------------------------------

type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// fakeAPI is an in-memory implementation of the consumed subset of the Cloudflare API which
// counts the calls made to each endpoint.
type fakeAPI struct {
	mu        sync.Mutex
	zones     []Zone
	records   map[string][]DNSRecord
	callCount map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		records:   make(map[string][]DNSRecord),
		callCount: make(map[string]int),
	}
}

func (f *fakeAPI) calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount[route]
}

func (f *fakeAPI) deleteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for route, n := range f.callCount {
		if len(route) > 6 && route[:6] == "DELETE" {
			count += n
		}
	}
	return count
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount[r.Method+" "+r.URL.Path]++

	mux := http.NewServeMux()
	mux.HandleFunc("GET /zones", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, f.zones)
	})
	mux.HandleFunc("GET /zones/{zone}/dns_records", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, f.records[r.PathValue("zone")])
	})
	mux.HandleFunc("POST /zones/{zone}/dns_records", func(w http.ResponseWriter, r *http.Request) {
		zone := r.PathValue("zone")
		var body createRecordBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		record := DNSRecord{
			ID:      body.ID,
			Name:    body.Name,
			Type:    body.Type,
			Content: body.Content,
			TTL:     1,
			ZoneID:  zone,
		}
		if body.TTL != nil {
			record.TTL = *body.TTL
		}
		f.records[zone] = append(f.records[zone], record)
		writeEnvelope(w, record)
	})
	mux.HandleFunc(
		"DELETE /zones/{zone}/dns_records/{record}",
		func(w http.ResponseWriter, r *http.Request) {
			zone, recordID := r.PathValue("zone"), r.PathValue("record")
			for i, record := range f.records[zone] {
				if record.ID == recordID {
					f.records[zone] = append(f.records[zone][:i], f.records[zone][i+1:]...)
					writeEnvelope(w, map[string]string{"id": recordID})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"errors": [], "messages": [], "result": null, "success": false}`)
		},
	)
	mux.ServeHTTP(w, r)
}

func writeEnvelope(w http.ResponseWriter, result any) {
	payload, _ := json.Marshal(result)
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"errors": [], "messages": [], "result": %s, "success": true}`, payload)
}
