// Package compute - Azure virtual machine cost handler
// Prices compute hours by VM size plus the OS disk as a separate component.
package compute

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"terrafin/core/pricing"
	"terrafin/core/types"
	"terrafin/internal/logging"
)

// hoursPerMonth is the assumed number of billable hours in a month
var hoursPerMonth = decimal.NewFromInt(730)

// defaultOSDiskGB is the assumed OS disk size when the plan does not say
const defaultOSDiskGB = 128

// VMHandler prices azurerm virtual machine resources
type VMHandler struct {
	pricing *pricing.Client
}

// NewVMHandler creates a VM handler
func NewVMHandler(client *pricing.Client) *VMHandler {
	return &VMHandler{pricing: client}
}

// CalculateCost returns the monthly cost for a virtual machine: the hourly
// compute rate over a month plus the OS disk, when one is declared.
func (h *VMHandler) CalculateCost(res types.ResourceChange) (*decimal.Decimal, error) {
	size := res.Attr("size")
	location := res.Location()

	if size == "" || location == "" {
		logging.Warn("missing required VM parameters",
			zap.String("address", res.Address),
			zap.String("size", size),
			zap.String("location", location))
		return nil, nil
	}

	price := h.pricing.VMPrice(size, location)
	if price == nil {
		logging.Warn("could not determine base VM cost",
			zap.String("address", res.Address),
			zap.String("size", size))
		return nil, nil
	}

	monthly := price.RetailPrice.Mul(hoursPerMonth)

	if osDisk := res.Block("os_disk"); osDisk != nil {
		if diskType, _ := osDisk["storage_account_type"].(string); diskType != "" {
			diskPrice := h.pricing.ManagedDiskPrice(diskType, defaultOSDiskGB, location)
			if diskPrice != nil {
				monthly = monthly.Add(diskPrice.RetailPrice)
			} else {
				logging.Warn("could not determine OS disk cost",
					zap.String("address", res.Address),
					zap.String("diskType", diskType))
			}
		}
	}

	return &monthly, nil
}
