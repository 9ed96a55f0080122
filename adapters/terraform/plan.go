// Package terraform parses Terraform plan JSON into resource changes.
// Only the `terraform show -json` plan representation is consumed here;
// cost semantics live in the core packages.
package terraform

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"

	"terrafin/core/types"
	"terrafin/internal/errors"
)

// utf8BOM is sometimes prepended by terraform on Windows
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlanOutput is the subset of a Terraform plan this tool consumes
type PlanOutput struct {
	// FormatVersion is the plan format version
	FormatVersion string `json:"format_version"`

	// TerraformVersion is the Terraform version
	TerraformVersion string `json:"terraform_version"`

	// ResourceChanges contains the planned resource changes
	ResourceChanges []PlanResourceChange `json:"resource_changes"`
}

// PlanResourceChange is a single resource change entry
type PlanResourceChange struct {
	// Address is the resource address
	Address string `json:"address"`

	// Mode is data or managed
	Mode string `json:"mode"`

	// Type is the resource type
	Type string `json:"type"`

	// Name is the resource name
	Name string `json:"name"`

	// Change contains the change details
	Change Change `json:"change"`
}

// Change holds the planned actions and values
type Change struct {
	// Actions are the change actions (create, update, delete, no-op)
	Actions []string `json:"actions"`

	// After is the planned state
	After map[string]interface{} `json:"after"`
}

// Parser loads and walks a plan file
type Parser struct {
	planFile string
	plan     *PlanOutput
}

// NewParser creates a parser for a plan file
func NewParser(planFile string) *Parser {
	return &Parser{planFile: planFile}
}

// LoadPlan reads and decodes the plan file. Malformed plans are a fatal,
// typed parsing error surfaced before any cost calculation.
func (p *Parser) LoadPlan() error {
	data, err := os.ReadFile(p.planFile)
	if err != nil {
		return errors.Parsing("failed to read plan file", err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	var plan PlanOutput
	if err := json.Unmarshal(data, &plan); err != nil {
		return errors.Parsing("failed to parse plan JSON", err)
	}

	p.plan = &plan
	return nil
}

// ResourceChanges returns the resources being created or updated, in plan
// order, reduced to the core data model.
func (p *Parser) ResourceChanges() ([]types.ResourceChange, error) {
	if p.plan == nil {
		return nil, errors.Input("plan data not loaded, call LoadPlan first")
	}

	changes := make([]types.ResourceChange, 0, len(p.plan.ResourceChanges))
	for _, rc := range p.plan.ResourceChanges {
		if !isCostable(rc) {
			continue
		}
		changes = append(changes, types.ResourceChange{
			Address: rc.Address,
			Type:    rc.Type,
			Name:    rc.Name,
			Values:  rc.Change.After,
		})
	}
	return changes, nil
}

// isCostable keeps managed resources being created or updated
func isCostable(rc PlanResourceChange) bool {
	if rc.Mode == "data" {
		return false
	}
	if len(rc.Change.Actions) != 1 {
		return false
	}
	action := rc.Change.Actions[0]
	return action == "create" || action == "update"
}

// ResourceCount returns the number of costable resource changes
func (p *Parser) ResourceCount() (int, error) {
	changes, err := p.ResourceChanges()
	if err != nil {
		return 0, err
	}
	return len(changes), nil
}

// ResourceTypes returns the distinct resource types in the plan, sorted
func (p *Parser) ResourceTypes() ([]string, error) {
	changes, err := p.ResourceChanges()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	for _, c := range changes {
		if _, ok := seen[c.Type]; ok {
			continue
		}
		seen[c.Type] = struct{}{}
		out = append(out, c.Type)
	}
	sort.Strings(out)
	return out, nil
}
