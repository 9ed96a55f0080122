// Package hcl scans Terraform source directories into resource changes.
// This is the plan-less input path: only literal attribute values are
// resolved, anything needing evaluation is skipped.
package hcl

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"terrafin/core/types"
	"terrafin/internal/errors"
	"terrafin/internal/logging"
)

// Scanner parses .tf files in a directory
type Scanner struct {
	parser *hclparse.Parser
}

// NewScanner creates an HCL scanner
func NewScanner() *Scanner {
	return &Scanner{parser: hclparse.NewParser()}
}

// Scan walks dir for .tf files and extracts resource blocks as resource
// changes. Files that fail to parse are skipped with a warning; an
// unreadable directory is a fatal parsing error.
func (s *Scanner) Scan(dir string) ([]types.ResourceChange, error) {
	var tfFiles []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".tf") {
			tfFiles = append(tfFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Parsing("failed to walk directory", err)
	}
	sort.Strings(tfFiles)

	var changes []types.ResourceChange
	for _, file := range tfFiles {
		changes = append(changes, s.scanFile(file)...)
	}
	return changes, nil
}

func (s *Scanner) scanFile(file string) []types.ResourceChange {
	src, err := os.ReadFile(file)
	if err != nil {
		logging.Warn("failed to read terraform file", zap.String("file", file), zap.Error(err))
		return nil
	}

	hclFile, diags := s.parser.ParseHCL(src, file)
	if diags.HasErrors() {
		logging.Warn("failed to parse terraform file",
			zap.String("file", file),
			zap.String("error", diags.Error()))
		return nil
	}

	content, _, _ := hclFile.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "resource", LabelNames: []string{"type", "name"}},
		},
	})

	var changes []types.ResourceChange
	for _, block := range content.Blocks {
		if len(block.Labels) != 2 {
			continue
		}
		resourceType, name := block.Labels[0], block.Labels[1]
		changes = append(changes, types.ResourceChange{
			Address: resourceType + "." + name,
			Type:    resourceType,
			Name:    name,
			Values:  bodyValues(block.Body),
		})
	}
	return changes
}

// bodyValues extracts literal attributes and nested blocks. Nested blocks
// become one-element arrays of maps, matching the plan JSON shape.
func bodyValues(body hcl.Body) map[string]interface{} {
	values := make(map[string]interface{})

	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return values
	}

	for name, attr := range syntaxBody.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() || !val.IsWhollyKnown() || val.IsNull() {
			continue
		}
		if converted, ok := ctyToGo(val); ok {
			values[name] = converted
		}
	}

	for _, nested := range syntaxBody.Blocks {
		entry := bodyValues(nested.Body)
		existing, _ := values[nested.Type].([]interface{})
		values[nested.Type] = append(existing, entry)
	}

	return values
}

// ctyToGo converts a known cty value into the plan JSON value shapes
func ctyToGo(val cty.Value) (interface{}, bool) {
	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), true
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, true
	case ty == cty.Bool:
		return val.True(), true
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var out []interface{}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if converted, ok := ctyToGo(elem); ok {
				out = append(out, converted)
			}
		}
		return out, true
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]interface{})
		for it := val.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			if converted, ok := ctyToGo(elem); ok {
				out[k.AsString()] = converted
			}
		}
		return out, true
	}
	return nil, false
}
