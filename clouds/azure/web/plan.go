// Package web - App service plan cost handler
// Flat tiered pricing for the basic plan SKUs.
package web

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"terrafin/core/types"
	"terrafin/internal/logging"
)

// planMonthlyRates are USD monthly rates per basic plan SKU
var planMonthlyRates = map[string]decimal.Decimal{
	"B1": decimal.RequireFromString("54.75"),
	"B2": decimal.RequireFromString("109.50"),
	"B3": decimal.RequireFromString("218.99"),
}

// ServicePlanHandler prices azurerm_service_plan and the legacy
// azurerm_app_service_plan resources
type ServicePlanHandler struct{}

// NewServicePlanHandler creates a service plan handler
func NewServicePlanHandler() *ServicePlanHandler {
	return &ServicePlanHandler{}
}

// CalculateCost returns the flat monthly rate for the plan's SKU. The SKU
// is read from sku_name, or from the legacy sku block (size, then name).
func (h *ServicePlanHandler) CalculateCost(res types.ResourceChange) (*decimal.Decimal, error) {
	sku := res.Attr("sku_name")
	if sku == "" {
		if block := res.Block("sku"); block != nil {
			if v, _ := block["size"].(string); v != "" {
				sku = v
			} else if v, _ := block["name"].(string); v != "" {
				sku = v
			}
		}
	}
	location := res.Location()

	if sku == "" || location == "" {
		logging.Warn("missing required service plan parameters",
			zap.String("address", res.Address),
			zap.String("sku", sku),
			zap.String("location", location))
		return nil, nil
	}

	rate, ok := planMonthlyRates[strings.ToUpper(sku)]
	if !ok {
		logging.Warn("no pricing for service plan SKU",
			zap.String("address", res.Address),
			zap.String("sku", sku))
		return nil, nil
	}

	return &rate, nil
}
