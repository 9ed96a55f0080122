package cost

import (
	"testing"

	"github.com/shopspring/decimal"

	"terrafin/clouds/azure"
	"terrafin/core/pricing"
	"terrafin/core/types"
)

// newAzureCalculator wires the real Azure registry against a client whose
// endpoint is unreachable, so only static-table pricing can resolve.
func newAzureCalculator() *Calculator {
	client := pricing.NewClient(pricing.WithEndpoint("http://127.0.0.1:1"))
	return NewCalculator(azure.NewRegistry(client))
}

func TestPipelineMixedPlan(t *testing.T) {
	calc := newAzureCalculator()

	changes := []types.ResourceChange{
		{
			Address: "azurerm_linux_virtual_machine.web",
			Type:    "azurerm_linux_virtual_machine",
			Name:    "web",
			Values: map[string]interface{}{
				"size":     "Standard_D2s_v3",
				"location": "eastus",
			},
		},
		{
			Address: "azurerm_resource_group.main",
			Type:    "azurerm_resource_group",
			Name:    "main",
			Values:  map[string]interface{}{"location": "eastus"},
		},
		{
			Address: "azurerm_storage_account.data",
			Type:    "azurerm_storage_account",
			Name:    "data",
			Values: map[string]interface{}{
				"account_tier":             "Standard",
				"account_replication_type": "LRS",
				"location":                 "eastus",
			},
		},
		{
			Address: "azurerm_managed_disk.data",
			Type:    "azurerm_managed_disk",
			Name:    "data",
			Values: map[string]interface{}{
				"storage_account_type": "Standard_LRS",
				"disk_size_gb":         float64(100),
				"location":             "eastus",
			},
		},
	}

	breakdown := calc.CalculateCosts(changes)

	// the resource group has no rule: unknown cost, not zero cost
	if len(breakdown.UnknownCosts) != 1 || breakdown.UnknownCosts[0] != "azurerm_resource_group.main" {
		t.Errorf("unknown costs = %v, want [azurerm_resource_group.main]", breakdown.UnknownCosts)
	}
	if len(breakdown.Resources) != 3 {
		t.Fatalf("priced resources = %d, want 3", len(breakdown.Resources))
	}

	// 70.08 (VM) + 1.84 (storage) + 19.71 (disk)
	want := decimal.RequireFromString("91.63")
	if !breakdown.TotalMonthlyCost.Equal(want) {
		t.Errorf("total = %s, want %s", breakdown.TotalMonthlyCost, want)
	}
}

func TestPipelineFailureIsolation(t *testing.T) {
	calc := newAzureCalculator()

	changes := []types.ResourceChange{
		{
			// missing size: the VM rule cannot determine a cost
			Address: "azurerm_linux_virtual_machine.broken",
			Type:    "azurerm_linux_virtual_machine",
			Name:    "broken",
			Values:  map[string]interface{}{"location": "eastus"},
		},
		{
			Address: "azurerm_managed_disk.ok",
			Type:    "azurerm_managed_disk",
			Name:    "ok",
			Values: map[string]interface{}{
				"storage_account_type": "Standard_LRS",
				"disk_size_gb":         float64(64),
				"location":             "eastus",
			},
		},
	}

	breakdown := calc.CalculateCosts(changes)

	if len(breakdown.UnknownCosts) != 1 {
		t.Fatalf("unknown costs = %v, want one entry", breakdown.UnknownCosts)
	}
	if len(breakdown.Resources) != 1 {
		t.Fatalf("resources = %d, want 1; one bad resource must not affect others", len(breakdown.Resources))
	}
	if !breakdown.TotalMonthlyCost.Equal(decimal.RequireFromString("10.21")) {
		t.Errorf("total = %s, want 10.21", breakdown.TotalMonthlyCost)
	}
}

func TestPipelineZeroCostResources(t *testing.T) {
	calc := newAzureCalculator()

	changes := []types.ResourceChange{
		{
			Address: "azurerm_virtual_network.main",
			Type:    "azurerm_virtual_network",
			Name:    "main",
			Values:  map[string]interface{}{"location": "eastus"},
		},
		{
			Address: "azurerm_logic_app_trigger_custom.on_order",
			Type:    "azurerm_logic_app_trigger_custom",
			Name:    "on_order",
			Values:  map[string]interface{}{},
		},
	}

	breakdown := calc.CalculateCosts(changes)

	if len(breakdown.Resources) != 2 {
		t.Fatalf("resources = %d, want 2; zero-cost resources appear in the breakdown", len(breakdown.Resources))
	}
	if len(breakdown.UnknownCosts) != 0 {
		t.Errorf("unknown costs = %v, want none", breakdown.UnknownCosts)
	}
	if !breakdown.TotalMonthlyCost.IsZero() {
		t.Errorf("total = %s, want 0", breakdown.TotalMonthlyCost)
	}
}
