// Package network - Azure networking cost handlers
// Network interfaces, virtual networks, and subnets have no direct cost.
package network

import (
	"github.com/shopspring/decimal"

	"terrafin/core/types"
)

// FreeHandler covers resource categories with no direct monthly cost
type FreeHandler struct{}

// NewFreeHandler creates a free resource handler
func NewFreeHandler() *FreeHandler {
	return &FreeHandler{}
}

// CalculateCost always returns zero
func (h *FreeHandler) CalculateCost(res types.ResourceChange) (*decimal.Decimal, error) {
	zero := decimal.Zero
	return &zero, nil
}
