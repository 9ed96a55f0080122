package pricing

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDiskTierBreakpoints(t *testing.T) {
	tests := []struct {
		sizeGB int
		tier   string
	}{
		{1, "P4"},
		{32, "P4"},
		{33, "P6"},
		{64, "P6"},
		{65, "P10"},
		{100, "P10"},
		{128, "P10"},
		{129, "P15"},
		{256, "P15"},
		{257, "P20"},
		{512, "P20"},
		{1024, "P20"},
	}

	for _, tt := range tests {
		if got := DiskTier(tt.sizeGB); got != tt.tier {
			t.Errorf("DiskTier(%d) = %s, want %s", tt.sizeGB, got, tt.tier)
		}
	}
}

func TestVMPriceStaticTable(t *testing.T) {
	client := NewClient()

	tests := []struct {
		size string
		rate string
	}{
		{"Standard_D2s_v3", "0.096"},
		{"Standard_D4s_v3", "0.192"},
		{"Standard_D8s_v3", "0.384"},
	}

	for _, tt := range tests {
		price := client.VMPrice(tt.size, "eastus")
		if price == nil {
			t.Fatalf("VMPrice(%s) = nil, want static rate", tt.size)
		}
		if !price.RetailPrice.Equal(decimal.RequireFromString(tt.rate)) {
			t.Errorf("VMPrice(%s) = %s, want %s", tt.size, price.RetailPrice, tt.rate)
		}
		if price.Currency != "USD" {
			t.Errorf("VMPrice(%s) currency = %s, want USD", tt.size, price.Currency)
		}
		if price.Type != "Consumption" {
			t.Errorf("VMPrice(%s) type = %s, want Consumption", tt.size, price.Type)
		}
	}
}

func TestStoragePriceStaticTable(t *testing.T) {
	client := NewClient()

	price := client.StoragePrice("Standard_LRS", "eastus")
	if price == nil {
		t.Fatal("StoragePrice(Standard_LRS) = nil, want static rate")
	}
	if !price.RetailPrice.Equal(decimal.RequireFromString("0.0184")) {
		t.Errorf("StoragePrice(Standard_LRS) = %s, want 0.0184", price.RetailPrice)
	}
}

func TestManagedDiskStaticTable(t *testing.T) {
	client := NewClient()

	tests := []struct {
		storageType string
		sizeGB      int
		rate        string
	}{
		// any size within a tier bucket prices the same
		{"Standard_LRS", 65, "19.71"},
		{"Standard_LRS", 100, "19.71"},
		{"Standard_LRS", 128, "19.71"},
		{"Standard_LRS", 32, "5.28"},
		{"Premium_LRS", 100, "59.13"},
		{"Premium_LRS", 512, "219.66"},
	}

	for _, tt := range tests {
		price := client.ManagedDiskPrice(tt.storageType, tt.sizeGB, "eastus")
		if price == nil {
			t.Fatalf("ManagedDiskPrice(%s, %d) = nil, want static rate", tt.storageType, tt.sizeGB)
		}
		if !price.RetailPrice.Equal(decimal.RequireFromString(tt.rate)) {
			t.Errorf("ManagedDiskPrice(%s, %d) = %s, want %s",
				tt.storageType, tt.sizeGB, price.RetailPrice, tt.rate)
		}
	}
}

func TestStaticHitSkipsRemote(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{"Items": []}`))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))

	if price := client.VMPrice("Standard_D2s_v3", "eastus"); price == nil {
		t.Fatal("expected static price")
	}
	if price := client.StoragePrice("Premium_LRS", "eastus"); price == nil {
		t.Fatal("expected static price")
	}

	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Errorf("static lookups made %d remote requests, want 0", n)
	}
}

func TestRemoteFetchAndCache(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if filter := r.URL.Query().Get("$filter"); filter == "" {
			t.Error("request missing $filter query parameter")
		}
		w.Write([]byte(`{"Items": [{"retailPrice": 0.123, "unitPrice": 0.123, "currencyCode": "USD", "type": "Consumption"}]}`))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))

	first := client.VMPrice("Standard_X99", "eastus")
	if first == nil {
		t.Fatal("expected remote price")
	}
	if !first.RetailPrice.Equal(decimal.NewFromFloat(0.123)) {
		t.Errorf("remote price = %s, want 0.123", first.RetailPrice)
	}

	second := client.VMPrice("Standard_X99", "eastus")
	if second == nil {
		t.Fatal("expected cached price")
	}
	if !second.RetailPrice.Equal(first.RetailPrice) {
		t.Errorf("cached price = %s, want %s", second.RetailPrice, first.RetailPrice)
	}

	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("made %d remote requests, want 1 (second lookup should hit cache)", n)
	}
}

func TestCacheExpiry(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{"Items": [{"retailPrice": 0.5, "unitPrice": 0.5, "currencyCode": "USD", "type": "Consumption"}]}`))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))

	current := time.Now()
	client.now = func() time.Time { return current }

	client.VMPrice("Standard_X99", "eastus")

	// still fresh just before the TTL
	current = current.Add(defaultCacheTTL - time.Second)
	client.VMPrice("Standard_X99", "eastus")
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Fatalf("made %d remote requests before expiry, want 1", n)
	}

	// stale entries are treated as absent, not served
	current = current.Add(2 * time.Second)
	client.VMPrice("Standard_X99", "eastus")
	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("made %d remote requests after expiry, want 2", n)
	}
}

func TestClearCache(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`{"Items": [{"retailPrice": 0.5, "unitPrice": 0.5, "currencyCode": "USD", "type": "Consumption"}]}`))
	}))
	defer server.Close()

	client := NewClient(WithEndpoint(server.URL))

	client.VMPrice("Standard_X99", "eastus")
	if client.CacheSize() != 1 {
		t.Fatalf("cache size = %d, want 1", client.CacheSize())
	}

	client.ClearCache()
	if client.CacheSize() != 0 {
		t.Fatalf("cache size after clear = %d, want 0", client.CacheSize())
	}

	client.VMPrice("Standard_X99", "eastus")
	if n := atomic.LoadInt32(&requests); n != 2 {
		t.Errorf("made %d remote requests, want 2 after cache clear", n)
	}
}

func TestRemoteFailureFailOpen(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "no items",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"Items": []}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(WithEndpoint(server.URL))
			if price := client.VMPrice("Standard_X99", "eastus"); price != nil {
				t.Errorf("got price %v, want nil", price)
			}
		})
	}
}

func TestUnreachableEndpointFailOpen(t *testing.T) {
	client := NewClient(WithEndpoint("http://127.0.0.1:1"))
	if price := client.VMPrice("Standard_X99", "eastus"); price != nil {
		t.Errorf("got price %v, want nil", price)
	}
}

func TestCacheKeyCanonical(t *testing.T) {
	a := cacheKey(map[string]string{"serviceName": "Storage", "armRegionName": "eastus"})
	b := cacheKey(map[string]string{"armRegionName": "eastus", "serviceName": "Storage"})
	if a != b {
		t.Errorf("cache keys differ for same filters: %q vs %q", a, b)
	}
	if a != "armRegionName=eastus|serviceName=Storage" {
		t.Errorf("cache key = %q, want sorted pipe-joined pairs", a)
	}
}

func TestFilterString(t *testing.T) {
	got := filterString(map[string]string{
		"serviceName":   "Managed Disks",
		"armRegionName": "EastUS",
		"skuName":       "Standard_LRS",
		"tierName":      "P10",
	})
	want := "armRegionName eq 'eastus' and serviceName eq 'Managed Disks' and contains(skuName, 'Standard_LRS') and contains(productName, 'P10')"
	if got != want {
		t.Errorf("filterString = %q, want %q", got, want)
	}
}
