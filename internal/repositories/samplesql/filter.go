package samplesql

import (
	"fmt"

	"sample-catalog-api/internal/registry"
	"sample-catalog-api/internal/repositories"
)

// filterAllowList is the fixed set of properties search-by-filter supports,
// a deliberate subset of the registry. Every entry must resolve in the
// registry; a miss here is a programming error, not client input.
var filterAllowList = []string{
	"category",
	"collectorName",
	"advisorName",
	"storageBuilding",
	"storageRoom",
}

// FilterConditions builds the AND-ed condition set for a sparse filter
// object. Properties outside the allow-list are ignored entirely; allow-listed
// properties that are absent, null or empty emit no condition (omission is
// not "match empty"). Placeholders are numbered in the order conditions are
// added and the returned values align 1:1 with them.
func FilterConditions(d Dialect, filters map[string]interface{}) ([]string, []interface{}, error) {
	var conditions []string
	var values []interface{}

	for _, prop := range filterAllowList {
		f, err := registry.MustLookup(prop)
		if err != nil {
			return nil, nil, err
		}

		raw, present := filters[prop]
		if !present || raw == nil {
			continue
		}
		if s, ok := raw.(string); ok && s == "" {
			continue
		}

		ph := d.Placeholder(len(values) + 1)
		switch f.Type {
		case registry.String:
			s, ok := raw.(string)
			if !ok {
				return nil, nil, repositories.ValidationError("filter", invalidFilter(f, raw))
			}
			conditions = append(conditions, f.InternalName+" = "+ph)
			values = append(values, s)
		case registry.Number:
			coerced, _, err := registry.Coerce(f, raw)
			if err != nil {
				return nil, nil, repositories.ValidationError("filter", err)
			}
			conditions = append(conditions, f.InternalName+" = "+ph)
			values = append(values, coerced)
		case registry.StringArray:
			s, ok := raw.(string)
			if !ok {
				return nil, nil, repositories.ValidationError("filter", invalidFilter(f, raw))
			}
			conditions = append(conditions, d.ArrayContains(f.InternalName, ph))
			values = append(values, s)
		}
	}

	return conditions, values, nil
}

func invalidFilter(f registry.Field, raw interface{}) error {
	return fmt.Errorf("invalid filter value for %s: expected %s, got %T", f.ExternalName, f.Type, raw)
}
