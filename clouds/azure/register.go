// Package azure - Azure handler registration
package azure

import (
	"terrafin/clouds"
	"terrafin/clouds/azure/compute"
	"terrafin/clouds/azure/integration"
	"terrafin/clouds/azure/network"
	"terrafin/clouds/azure/storage"
	"terrafin/clouds/azure/web"
	"terrafin/core/pricing"
)

// NewRegistry builds a registry with all Azure handlers wired to the given
// pricing client. Resource types without a handler (resource groups among
// them) are reported as unknown cost by the calculator.
func NewRegistry(client *pricing.Client) *clouds.Registry {
	r := clouds.NewRegistry()

	vm := compute.NewVMHandler(client)
	r.Register("azurerm_virtual_machine", vm)
	r.Register("azurerm_linux_virtual_machine", vm)
	r.Register("azurerm_windows_virtual_machine", vm)

	r.Register("azurerm_storage_account", storage.NewAccountHandler(client))
	r.Register("azurerm_managed_disk", storage.NewDiskHandler(client))

	free := network.NewFreeHandler()
	r.Register("azurerm_network_interface", free)
	r.Register("azurerm_virtual_network", free)
	r.Register("azurerm_subnet", free)

	r.Register("azurerm_logic_app_workflow", integration.NewWorkflowHandler())
	step := integration.NewStepHandler()
	r.Register("azurerm_logic_app_action_custom", step)
	r.Register("azurerm_logic_app_trigger_custom", step)

	plan := web.NewServicePlanHandler()
	r.Register("azurerm_service_plan", plan)
	r.Register("azurerm_app_service_plan", plan)

	return r
}
