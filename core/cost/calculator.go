// Package cost aggregates per-resource estimates into a cost breakdown.
// No per-resource problem may abort a calculation run: failed rules and
// unrecognized types degrade that one resource to unknown cost.
package cost

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"terrafin/clouds"
	"terrafin/core/output"
	"terrafin/core/types"
	"terrafin/internal/logging"
)

// detailKeys are the attributes captured into a resource's details map
var detailKeys = []string{"location", "size", "sku", "tier"}

// Calculator computes cost breakdowns for planned resource changes
type Calculator struct {
	registry  *clouds.Registry
	threshold *decimal.Decimal
}

// NewCalculator creates a calculator dispatching through the given registry
func NewCalculator(registry *clouds.Registry) *Calculator {
	return &Calculator{registry: registry}
}

// SetCostThreshold sets the maximum allowed monthly cost in USD
func (c *Calculator) SetCostThreshold(threshold decimal.Decimal) {
	c.threshold = &threshold
}

// CalculateCosts estimates the monthly cost of every resource change, in
// plan order. Each change lands in exactly one of Resources or UnknownCosts.
func (c *Calculator) CalculateCosts(changes []types.ResourceChange) *types.CostBreakdown {
	logging.Info("calculating costs", zap.Int("resourceChanges", len(changes)))

	breakdown := &types.CostBreakdown{
		Resources:        make([]types.ResourceCost, 0, len(changes)),
		TotalMonthlyCost: decimal.Zero,
		UnknownCosts:     make([]string, 0),
	}

	for _, res := range changes {
		handler, ok := c.registry.HandlerFor(res.Type)
		if !ok {
			logging.Warn("no cost handler for resource type",
				zap.String("address", res.Address),
				zap.String("type", res.Type))
			breakdown.UnknownCosts = append(breakdown.UnknownCosts, res.DisplayName())
			continue
		}

		monthlyCost, err := invoke(handler, res)
		if err != nil {
			logging.Error("cost calculation failed",
				zap.String("address", res.Address),
				zap.Error(err))
			breakdown.UnknownCosts = append(breakdown.UnknownCosts, res.DisplayName())
			continue
		}

		if monthlyCost == nil {
			logging.Warn("could not determine cost", zap.String("address", res.Address))
			breakdown.UnknownCosts = append(breakdown.UnknownCosts, res.DisplayName())
			continue
		}

		breakdown.TotalMonthlyCost = breakdown.TotalMonthlyCost.Add(*monthlyCost)
		breakdown.Resources = append(breakdown.Resources, types.ResourceCost{
			Address:     res.Address,
			Type:        res.Type,
			Name:        res.Name,
			MonthlyCost: monthlyCost,
			Details:     extractDetails(res),
		})
	}

	return breakdown
}

// invoke runs a handler, converting panics into errors so one bad resource
// cannot abort the run.
func invoke(handler clouds.Handler, res types.ResourceChange) (cost *decimal.Decimal, err error) {
	defer func() {
		if r := recover(); r != nil {
			cost = nil
			err = errorsFromPanic(r)
		}
	}()
	return handler.CalculateCost(res)
}

// ValidateCostThreshold reports whether the breakdown's total is within the
// configured threshold. A total exactly equal to the threshold passes.
func (c *Calculator) ValidateCostThreshold(breakdown *types.CostBreakdown) bool {
	if c.threshold == nil {
		return true
	}
	return breakdown.TotalMonthlyCost.LessThanOrEqual(*c.threshold)
}

// Threshold returns the configured threshold, if any
func (c *Calculator) Threshold() *decimal.Decimal {
	return c.threshold
}

// FormatReport renders the breakdown in the given format
func (c *Calculator) FormatReport(breakdown *types.CostBreakdown, format output.Format) (string, error) {
	return output.Render(breakdown, format, !c.ValidateCostThreshold(breakdown))
}

// extractDetails captures cost-relevant attributes for reporting, omitting
// absent ones.
func extractDetails(res types.ResourceChange) map[string]string {
	details := make(map[string]string)
	for _, key := range detailKeys {
		if v := res.Attr(key); v != "" {
			details[key] = v
		}
	}
	return details
}
