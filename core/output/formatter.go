// Package output renders cost breakdowns as reports.
// Rendering is pure string construction; nothing here mutates the breakdown.
package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"terrafin/core/types"
	"terrafin/internal/errors"
)

// Format represents a report format
type Format string

const (
	// FormatText is a plain text report
	FormatText Format = "text"

	// FormatMarkdown is a markdown table report
	FormatMarkdown Format = "markdown"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat validates a format selector
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatMarkdown, FormatJSON:
		return Format(s), nil
	}
	return "", errors.Newf(errors.TypeInput, "unsupported output format: %s", s)
}

// Render produces a report for the breakdown in the given format.
// thresholdExceeded adds a breach note where the format supports one.
func Render(breakdown *types.CostBreakdown, format Format, thresholdExceeded bool) (string, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(breakdown, thresholdExceeded), nil
	case FormatJSON:
		return renderJSON(breakdown, thresholdExceeded)
	case FormatText:
		return renderText(breakdown, thresholdExceeded), nil
	}
	return "", errors.Newf(errors.TypeInput, "unsupported output format: %s", format)
}

func costString(cost *types.ResourceCost) string {
	if cost.MonthlyCost == nil {
		return "Unknown"
	}
	return "$" + cost.MonthlyCost.StringFixed(2)
}

// sortedDetailKeys gives deterministic detail ordering across runs
func sortedDetailKeys(details map[string]string) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderText(breakdown *types.CostBreakdown, thresholdExceeded bool) string {
	var b strings.Builder
	b.WriteString("Azure Resource Cost Estimation Report\n")
	b.WriteString(strings.Repeat("=", 35) + "\n\n")

	b.WriteString("Resource Costs:\n")
	b.WriteString(strings.Repeat("-", 15) + "\n")
	for _, res := range breakdown.Resources {
		fmt.Fprintf(&b, "%s: %s/month\n", res.Address, costString(&res))
		for _, key := range sortedDetailKeys(res.Details) {
			fmt.Fprintf(&b, "  %s: %s\n", key, res.Details[key])
		}
		b.WriteString("\n")
	}

	if len(breakdown.UnknownCosts) > 0 {
		b.WriteString("Resources with Unknown Costs:\n")
		b.WriteString(strings.Repeat("-", 28) + "\n")
		for _, name := range breakdown.UnknownCosts {
			fmt.Fprintf(&b, "- %s\n", name)
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("=", 35) + "\n")
	fmt.Fprintf(&b, "Total Estimated Monthly Cost: $%s\n", breakdown.TotalMonthlyCost.StringFixed(2))

	if len(breakdown.UnknownCosts) > 0 {
		b.WriteString("(Note: Some resource costs could not be determined)\n")
	}
	if thresholdExceeded {
		b.WriteString("(Warning: Total cost exceeds the configured threshold)\n")
	}

	return b.String()
}

func renderMarkdown(breakdown *types.CostBreakdown, thresholdExceeded bool) string {
	var b strings.Builder
	b.WriteString("# Azure Resource Cost Estimation Report\n\n")
	b.WriteString("## Resource Costs\n\n")
	b.WriteString("| Resource | Type | Monthly Cost | Details |\n")
	b.WriteString("|----------|------|--------------|----------|\n")

	for _, res := range breakdown.Resources {
		pairs := make([]string, 0, len(res.Details))
		for _, key := range sortedDetailKeys(res.Details) {
			pairs = append(pairs, key+": "+res.Details[key])
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			res.Address, res.Type, costString(&res), strings.Join(pairs, ", "))
	}
	b.WriteString("\n")

	if len(breakdown.UnknownCosts) > 0 {
		b.WriteString("## Resources with Unknown Costs\n\n")
		for _, name := range breakdown.UnknownCosts {
			fmt.Fprintf(&b, "* %s\n", name)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "**Total Estimated Monthly Cost:** $%s\n", breakdown.TotalMonthlyCost.StringFixed(2))

	if len(breakdown.UnknownCosts) > 0 {
		b.WriteString("\n*Note: Some resource costs could not be determined*\n")
	}
	if thresholdExceeded {
		b.WriteString("\n*Warning: Total cost exceeds the configured threshold*\n")
	}

	return b.String()
}

type jsonResource struct {
	Address     string            `json:"address"`
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	MonthlyCost *float64          `json:"monthly_cost"`
	Details     map[string]string `json:"details"`
}

type jsonReport struct {
	Resources         []jsonResource `json:"resources"`
	UnknownCosts      []string       `json:"unknown_costs"`
	TotalMonthlyCost  float64        `json:"total_monthly_cost"`
	ThresholdExceeded bool           `json:"threshold_exceeded,omitempty"`
}

func renderJSON(breakdown *types.CostBreakdown, thresholdExceeded bool) (string, error) {
	report := jsonReport{
		Resources:         make([]jsonResource, 0, len(breakdown.Resources)),
		UnknownCosts:      breakdown.UnknownCosts,
		TotalMonthlyCost:  breakdown.TotalMonthlyCost.Round(2).InexactFloat64(),
		ThresholdExceeded: thresholdExceeded,
	}

	for _, res := range breakdown.Resources {
		jr := jsonResource{
			Address: res.Address,
			Type:    res.Type,
			Name:    res.Name,
			Details: res.Details,
		}
		if res.MonthlyCost != nil {
			v := res.MonthlyCost.Round(2).InexactFloat64()
			jr.MonthlyCost = &v
		}
		report.Resources = append(report.Resources, jr)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", errors.Internal("failed to marshal report", err)
	}
	return string(data), nil
}
