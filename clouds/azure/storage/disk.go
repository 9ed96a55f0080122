// Package storage - Managed disk cost handler
package storage

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"terrafin/core/pricing"
	"terrafin/core/types"
	"terrafin/internal/logging"
)

// DiskHandler prices azurerm_managed_disk resources
type DiskHandler struct {
	pricing *pricing.Client
}

// NewDiskHandler creates a managed disk handler
func NewDiskHandler(client *pricing.Client) *DiskHandler {
	return &DiskHandler{pricing: client}
}

// CalculateCost returns the monthly cost for a managed disk. The rate is
// bucketed by disk tier, so any size inside a tier prices the same.
func (h *DiskHandler) CalculateCost(res types.ResourceChange) (*decimal.Decimal, error) {
	storageType := res.Attr("storage_account_type")
	sizeGB := res.AttrInt("disk_size_gb", 0)
	location := res.Location()

	if storageType == "" || sizeGB == 0 || location == "" {
		logging.Warn("missing required disk parameters",
			zap.String("address", res.Address),
			zap.String("storageType", storageType),
			zap.Int("sizeGB", sizeGB),
			zap.String("location", location))
		return nil, nil
	}

	price := h.pricing.ManagedDiskPrice(storageType, sizeGB, location)
	if price == nil {
		logging.Warn("no pricing data for managed disk",
			zap.String("address", res.Address),
			zap.String("storageType", storageType),
			zap.Int("sizeGB", sizeGB))
		return nil, nil
	}

	monthly := price.RetailPrice
	return &monthly, nil
}
