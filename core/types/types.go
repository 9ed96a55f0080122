// Package types contains the shared data model for cost estimation.
package types

// ResourceChange is one planned resource from a Terraform plan, reduced to
// the pieces the cost rules care about. Values holds the planned ("after")
// attribute values.
type ResourceChange struct {
	// Address is the Terraform address (e.g., "azurerm_managed_disk.data")
	Address string

	// Type is the resource type (e.g., "azurerm_managed_disk")
	Type string

	// Name is the resource name within its type
	Name string

	// Values are the planned attribute values
	Values map[string]interface{}
}

// Attr returns an attribute value as string, or "" if absent or not a string.
func (r ResourceChange) Attr(key string) string {
	if v, ok := r.Values[key].(string); ok {
		return v
	}
	return ""
}

// AttrFloat returns an attribute value as float64
func (r ResourceChange) AttrFloat(key string, defaultVal float64) float64 {
	switch v := r.Values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return defaultVal
}

// AttrInt returns an attribute value as int
func (r ResourceChange) AttrInt(key string, defaultVal int) int {
	switch v := r.Values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return defaultVal
}

// Block returns the first element of a nested block attribute. Terraform
// plan JSON renders single nested blocks as one-element arrays.
func (r ResourceChange) Block(key string) map[string]interface{} {
	switch v := r.Values[key].(type) {
	case []interface{}:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]interface{}); ok {
				return m
			}
		}
	case map[string]interface{}:
		return v
	}
	return nil
}

// Location returns the resource location attribute.
func (r ResourceChange) Location() string {
	return r.Attr("location")
}

// DisplayName is the identifier used in reports for resources whose cost
// could not be determined.
func (r ResourceChange) DisplayName() string {
	if r.Address != "" {
		return r.Address
	}
	return "Unknown resource"
}
