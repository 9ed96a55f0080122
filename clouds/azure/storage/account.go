// Package storage - Azure storage cost handlers
package storage

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"terrafin/core/pricing"
	"terrafin/core/types"
	"terrafin/internal/logging"
)

// estimatedAccountGB is the assumed stored volume for a storage account.
// Actual usage is not knowable from a plan; this is a documented assumption.
var estimatedAccountGB = decimal.NewFromInt(100)

// AccountHandler prices azurerm_storage_account resources
type AccountHandler struct {
	pricing *pricing.Client
}

// NewAccountHandler creates a storage account handler
func NewAccountHandler(client *pricing.Client) *AccountHandler {
	return &AccountHandler{pricing: client}
}

// CalculateCost returns the monthly cost for a storage account based on the
// per-GB rate of its tier/replication combination and an assumed 100 GB.
func (h *AccountHandler) CalculateCost(res types.ResourceChange) (*decimal.Decimal, error) {
	tier := res.Attr("account_tier")
	replication := res.Attr("account_replication_type")
	location := res.Location()

	if tier == "" || replication == "" || location == "" {
		logging.Warn("missing required storage parameters",
			zap.String("address", res.Address),
			zap.String("tier", tier),
			zap.String("replication", replication),
			zap.String("location", location))
		return nil, nil
	}

	accountType := tier + "_" + replication

	price := h.pricing.StoragePrice(accountType, location)
	if price == nil {
		logging.Warn("no pricing data for storage account",
			zap.String("address", res.Address),
			zap.String("accountType", accountType))
		return nil, nil
	}

	monthly := price.RetailPrice.Mul(estimatedAccountGB)
	return &monthly, nil
}
