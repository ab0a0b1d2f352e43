package registry

import (
	"errors"
	"fmt"
)

// FieldType enumerates the value types a catalog field can carry.
type FieldType int

const (
	// String is a plain text value, trimmed on write.
	String FieldType = iota
	// StringArray is a list of text values; clients may also send a
	// comma-separated string which is split and trimmed.
	StringArray
	// Number is a numeric value.
	Number
)

// String returns the type name for logging and error messages.
func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case StringArray:
		return "string-array"
	case Number:
		return "number"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// IsTextual reports whether values of this type participate in fulltext search.
func (t FieldType) IsTextual() bool {
	return t == String || t == StringArray
}

// Field describes one persisted sample attribute: the client-facing property
// name, the storage column it maps to, and the declared value type.
type Field struct {
	ExternalName string
	InternalName string
	Type         FieldType
}

// ErrUnknownField is returned by MustLookup when a property name is not part
// of the registry. Callers iterating client-supplied keys should use Lookup
// and skip misses instead.
var ErrUnknownField = errors.New("unknown field")

// fields is the full ordered registry of sample attributes. The order is
// load-bearing: insert statements, select column lists and fulltext
// conditions are all emitted in this order.
var fields = []Field{
	{"sampleId", "sample_id", String},
	{"category", "category", String},
	{"collectorName", "collector_name", String},
	{"advisorName", "advisor_name", String},
	{"advisorOtherName", "advisor_other_name", String},
	{"collectionYear", "collection_year", Number},
	{"collectionReason", "collection_reason", StringArray},
	{"collectionReasonOther", "collection_reason_other", String},
	{"collectionLocation", "collection_location", StringArray},
	{"shortDescription", "short_description", String},
	{"longDescription", "long_description", String},
	{"sampleForm", "sample_form", StringArray},
	{"sampleFormOther", "sample_form_other", String},
	{"sampleType", "sample_type", StringArray},
	{"sampleTypeOther", "sample_type_other", String},
	{"sampleImg", "sample_img", String},
	{"storageBuilding", "storage_building", String},
	{"storageBuildingOther", "storage_building_other", String},
	{"storageRoom", "storage_room", String},
	{"storageRoomOther", "storage_room_other", String},
	{"storageDetails", "storage_details", String},
	{"storageDuration", "storage_duration", Number},
	{"locationRectangleBoundsSouth", "location_rectangle_south", Number},
	{"locationRectangleBoundsWest", "location_rectangle_west", Number},
	{"locationRectangleBoundsNorth", "location_rectangle_north", Number},
	{"locationRectangleBoundsEast", "location_rectangle_east", Number},
	{"locationMarkerlat", "location_marker_lat", Number},
	{"locationMarkerlng", "location_marker_lng", Number},
}

var byExternal = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, dup := m[f.ExternalName]; dup {
			panic("registry: duplicate external name " + f.ExternalName)
		}
		m[f.ExternalName] = f
	}
	return m
}()

// Fields returns the registry in declaration order. The returned slice must
// not be modified.
func Fields() []Field {
	return fields
}

// Lookup resolves an external property name. The second return value reports
// whether the name is part of the registry.
func Lookup(externalName string) (Field, bool) {
	f, ok := byExternal[externalName]
	return f, ok
}

// MustLookup resolves an external property name that the caller expects to
// exist, such as an entry of a fixed filter allow-list. Unlike Lookup, a miss
// is an error.
func MustLookup(externalName string) (Field, error) {
	f, ok := byExternal[externalName]
	if !ok {
		return Field{}, fmt.Errorf("%w: %s", ErrUnknownField, externalName)
	}
	return f, nil
}

// TextualFields returns the registry fields that participate in fulltext
// search, in declaration order.
func TextualFields() []Field {
	var out []Field
	for _, f := range fields {
		if f.Type.IsTextual() {
			out = append(out, f)
		}
	}
	return out
}
