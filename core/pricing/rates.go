// Package pricing - Static rate tables
// Known list prices for common SKUs. A static hit never queries the API.
package pricing

import "github.com/shopspring/decimal"

// vmHourlyRates are USD hourly rates for common VM sizes
var vmHourlyRates = map[string]decimal.Decimal{
	"Standard_D2s_v3": decimal.RequireFromString("0.096"),
	"Standard_D4s_v3": decimal.RequireFromString("0.192"),
	"Standard_D8s_v3": decimal.RequireFromString("0.384"),
}

// storageGBRates are USD per-GB monthly rates for storage account types
var storageGBRates = map[string]decimal.Decimal{
	"Standard_LRS": decimal.RequireFromString("0.0184"),
	"Standard_GRS": decimal.RequireFromString("0.0368"),
	"Premium_LRS":  decimal.RequireFromString("0.15"),
	"Premium_ZRS":  decimal.RequireFromString("0.175"),
}

// diskMonthlyRates are USD monthly rates for managed disks, keyed by
// storage account type and pricing tier
var diskMonthlyRates = map[string]map[string]decimal.Decimal{
	"Standard_LRS": {
		"P4":  decimal.RequireFromString("5.28"),   // 32 GB
		"P6":  decimal.RequireFromString("10.21"),  // 64 GB
		"P10": decimal.RequireFromString("19.71"),  // 128 GB
		"P15": decimal.RequireFromString("38.44"),  // 256 GB
		"P20": decimal.RequireFromString("73.22"),  // 512 GB
	},
	"Premium_LRS": {
		"P4":  decimal.RequireFromString("15.84"),
		"P6":  decimal.RequireFromString("30.63"),
		"P10": decimal.RequireFromString("59.13"),
		"P15": decimal.RequireFromString("115.32"),
		"P20": decimal.RequireFromString("219.66"),
	},
}
