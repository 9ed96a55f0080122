// Package types - Cost breakdown types
package types

import "github.com/shopspring/decimal"

// ResourceCost is the estimated monthly cost for a single planned resource.
type ResourceCost struct {
	// Address is the Terraform resource address
	Address string `json:"address"`

	// Type is the resource type
	Type string `json:"type"`

	// Name is the resource name
	Name string `json:"name"`

	// MonthlyCost is the estimated monthly cost in USD. Nil means the rule
	// could not determine a cost.
	MonthlyCost *decimal.Decimal `json:"monthly_cost"`

	// Details are cost-relevant attributes (location, size, sku, tier)
	Details map[string]string `json:"details"`
}

// CostBreakdown is the aggregated result of one calculation run. Every
// resource change in the plan lands in exactly one of Resources or
// UnknownCosts, in plan order.
type CostBreakdown struct {
	// Resources are the successfully costed resources
	Resources []ResourceCost `json:"resources"`

	// TotalMonthlyCost is the sum of all resource monthly costs
	TotalMonthlyCost decimal.Decimal `json:"total_monthly_cost"`

	// UnknownCosts lists addresses of resources with no determinable cost
	UnknownCosts []string `json:"unknown_costs"`
}
