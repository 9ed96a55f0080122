// Package pricing provides the Azure retail price source.
// Lookups resolve in order: static table, in-memory cache, retail prices API.
// Every stage is fail-open: a price that cannot be resolved is reported as
// absent, never as an error.
package pricing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"terrafin/internal/logging"
)

// defaultEndpoint is the Azure Retail Prices API
const defaultEndpoint = "https://prices.azure.com/api/retail/prices"

// defaultCacheTTL is how long a fetched price stays fresh
const defaultCacheTTL = time.Hour

// Price is a resolved unit price
type Price struct {
	// RetailPrice is the list price
	RetailPrice decimal.Decimal `json:"retailPrice"`

	// UnitPrice is the effective price per unit
	UnitPrice decimal.Decimal `json:"unitPrice"`

	// Currency is the currency code
	Currency string `json:"currencyCode"`

	// Type is the price type (e.g., "Consumption")
	Type string `json:"type"`
}

type cacheEntry struct {
	price      Price
	insertedAt time.Time
}

// Client resolves Azure resource prices
type Client struct {
	httpClient *http.Client
	endpoint   string
	ttl        time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry

	// now is replaceable for expiry tests
	now func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the retail prices endpoint
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithCacheTTL overrides the cache freshness window
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a pricing client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   defaultEndpoint,
		ttl:        defaultCacheTTL,
		cache:      make(map[string]cacheEntry),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VMPrice returns the hourly rate for a VM size, or nil if no price could
// be resolved.
func (c *Client) VMPrice(size, region string) *Price {
	logging.Debug("resolving VM price", zap.String("size", size), zap.String("region", region))

	if rate, ok := vmHourlyRates[size]; ok {
		return staticPrice(rate)
	}

	return c.fetchPrice(map[string]string{
		"serviceName":   "Virtual Machines",
		"armRegionName": region,
		"skuName":       size,
	})
}

// StoragePrice returns the per-GB monthly rate for a storage account type
// (e.g., "Standard_LRS"), or nil if no price could be resolved.
func (c *Client) StoragePrice(accountType, region string) *Price {
	logging.Debug("resolving storage price", zap.String("accountType", accountType), zap.String("region", region))

	if rate, ok := storageGBRates[accountType]; ok {
		return staticPrice(rate)
	}

	return c.fetchPrice(map[string]string{
		"serviceName":   "Storage",
		"armRegionName": region,
		"skuName":       accountType,
	})
}

// ManagedDiskPrice returns the monthly rate for a managed disk. The disk
// tier is bucketed from sizeGB, so any size within a bucket prices the same.
func (c *Client) ManagedDiskPrice(storageType string, sizeGB int, region string) *Price {
	tier := DiskTier(sizeGB)
	logging.Debug("resolving managed disk price",
		zap.String("storageType", storageType),
		zap.Int("sizeGB", sizeGB),
		zap.String("tier", tier))

	if tiers, ok := diskMonthlyRates[storageType]; ok {
		if rate, ok := tiers[tier]; ok {
			return staticPrice(rate)
		}
	}

	return c.fetchPrice(map[string]string{
		"serviceName":   "Managed Disks",
		"armRegionName": region,
		"skuName":       storageType,
		"tierName":      tier,
	})
}

// DiskTier buckets a disk size into its pricing tier.
func DiskTier(sizeGB int) string {
	switch {
	case sizeGB <= 32:
		return "P4"
	case sizeGB <= 64:
		return "P6"
	case sizeGB <= 128:
		return "P10"
	case sizeGB <= 256:
		return "P15"
	default:
		return "P20"
	}
}

// ClearCache empties the price cache
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
	logging.Debug("pricing cache cleared")
}

// CacheSize returns the number of cached entries
func (c *Client) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func staticPrice(rate decimal.Decimal) *Price {
	return &Price{
		RetailPrice: rate,
		UnitPrice:   rate,
		Currency:    "USD",
		Type:        "Consumption",
	}
}

// cacheKey builds a canonical key from sorted filter pairs
func cacheKey(filters map[string]string) string {
	parts := make([]string, 0, len(filters))
	for k, v := range filters {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// filterString builds the OData $filter expression
func filterString(filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := filters[k]
		switch k {
		case "armRegionName":
			parts = append(parts, fmt.Sprintf("armRegionName eq '%s'", strings.ToLower(v)))
		case "serviceName":
			parts = append(parts, fmt.Sprintf("serviceName eq '%s'", v))
		case "skuName":
			parts = append(parts, fmt.Sprintf("contains(skuName, '%s')", v))
		case "tierName":
			parts = append(parts, fmt.Sprintf("contains(productName, '%s')", v))
		}
	}
	return strings.Join(parts, " and ")
}

type retailItem struct {
	RetailPrice  float64 `json:"retailPrice"`
	UnitPrice    float64 `json:"unitPrice"`
	CurrencyCode string  `json:"currencyCode"`
	Type         string  `json:"type"`
}

type retailResponse struct {
	Items []retailItem `json:"Items"`
}

// fetchPrice queries the retail prices API, consulting the cache first.
// All failure modes collapse into a nil result.
func (c *Client) fetchPrice(filters map[string]string) *Price {
	key := cacheKey(filters)

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok {
		if c.now().Sub(entry.insertedAt) < c.ttl {
			c.mu.Unlock()
			price := entry.price
			return &price
		}
	}
	c.mu.Unlock()

	filter := filterString(filters)
	query := url.Values{}
	query.Set("$filter", filter)
	reqURL := c.endpoint + "?" + query.Encode()

	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		logging.Warn("retail price request failed", zap.String("filter", filter), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.Warn("retail price request returned non-success status",
			zap.String("filter", filter),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	var payload retailResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logging.Warn("retail price response decode failed", zap.String("filter", filter), zap.Error(err))
		return nil
	}

	if len(payload.Items) == 0 {
		logging.Warn("no retail price found", zap.String("filter", filter))
		return nil
	}

	item := payload.Items[0]
	price := Price{
		RetailPrice: decimal.NewFromFloat(item.RetailPrice),
		UnitPrice:   decimal.NewFromFloat(item.UnitPrice),
		Currency:    item.CurrencyCode,
		Type:        item.Type,
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{price: price, insertedAt: c.now()}
	c.mu.Unlock()

	return &price
}
