package samplesql

import "sample-catalog-api/internal/registry"

// FulltextConditions builds one OR-ed pattern condition per textual registry
// field. Every condition references the same first placeholder, so exactly
// one bound value backs the whole clause no matter how many fields exist.
func FulltextConditions(d Dialect) []string {
	textual := registry.TextualFields()
	conditions := make([]string, 0, len(textual))
	ph := d.Placeholder(1)
	for _, f := range textual {
		if f.Type == registry.StringArray {
			conditions = append(conditions, d.ArrayLike(f.InternalName, ph))
		} else {
			conditions = append(conditions, d.StringLike(f.InternalName, ph))
		}
	}
	return conditions
}

// FulltextValue wraps the search term for substring matching.
func FulltextValue(term string) string {
	return "%" + term + "%"
}
