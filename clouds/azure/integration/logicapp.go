// Package integration - Logic app cost handlers
// A workflow is priced from an assumed execution volume; its actions and
// triggers carry zero cost because the workflow already counts them.
package integration

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"terrafin/core/types"
	"terrafin/internal/logging"
)

// estimatedExecutions is the assumed monthly execution count for a workflow.
// Plan data cannot tell us the real volume; this is a point estimate.
var estimatedExecutions = decimal.NewFromInt(100000)

// standardConnectorRate is the USD cost per standard connector execution
var standardConnectorRate = decimal.RequireFromString("0.000125")

// WorkflowHandler prices azurerm_logic_app_workflow resources
type WorkflowHandler struct{}

// NewWorkflowHandler creates a workflow handler
func NewWorkflowHandler() *WorkflowHandler {
	return &WorkflowHandler{}
}

// CalculateCost returns the estimated monthly cost for a logic app workflow
func (h *WorkflowHandler) CalculateCost(res types.ResourceChange) (*decimal.Decimal, error) {
	monthly := estimatedExecutions.Mul(standardConnectorRate)
	logging.Debug("logic app workflow estimate",
		zap.String("address", res.Address),
		zap.String("monthly", monthly.StringFixed(2)))
	return &monthly, nil
}

// StepHandler prices logic app actions and triggers. Their cost is already
// counted at the parent workflow, so each step is zero.
type StepHandler struct{}

// NewStepHandler creates a step handler
func NewStepHandler() *StepHandler {
	return &StepHandler{}
}

// CalculateCost returns zero: steps are included in the workflow cost
func (h *StepHandler) CalculateCost(res types.ResourceChange) (*decimal.Decimal, error) {
	zero := decimal.Zero
	return &zero, nil
}
