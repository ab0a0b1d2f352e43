package samplesql

import (
	"fmt"
	"strings"
	"time"

	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/registry"
	"sample-catalog-api/internal/repositories"
)

// boundsKey is the one nested property the insert builder understands; it is
// flattened into the four corner registry fields before generic processing.
const boundsKey = "locationRectangleBounds"

// cornerExternalNames in south/west/north/east order.
var cornerExternalNames = [4]string{
	"locationRectangleBoundsSouth",
	"locationRectangleBoundsWest",
	"locationRectangleBoundsNorth",
	"locationRectangleBoundsEast",
}

// BuildInsert translates a sparse sample record into one parameterized INSERT.
//
// Keys missing from the registry are skipped so extra client fields are
// forward-compatible; values that fail coercion abort the whole build with a
// validation error. If no user-supplied field survives, the build fails with
// a no-fields error: the six system columns alone never justify a row.
// Placeholders are numbered in the exact order values are appended.
func BuildInsert(d Dialect, data map[string]interface{}, opts repositories.InsertOptions, now time.Time) (string, []interface{}, error) {
	columns := make([]string, 0, len(data)+6)
	values := make([]interface{}, 0, len(data)+6)

	// Work on a copy so flattening never mutates the caller's map.
	in := make(map[string]interface{}, len(data))
	for k, v := range data {
		in[k] = v
	}

	if raw, present := in[boundsKey]; present {
		if raw != nil {
			corners, err := flattenBounds(raw)
			if err != nil {
				return "", nil, repositories.ValidationError("sample", err)
			}
			for i, name := range cornerExternalNames {
				f, lookupErr := registry.MustLookup(name)
				if lookupErr != nil {
					return "", nil, lookupErr
				}
				columns = append(columns, f.InternalName)
				values = append(values, corners[i])
			}
		}
		delete(in, boundsKey)
	}

	for _, f := range registry.Fields() {
		raw, present := in[f.ExternalName]
		if !present {
			continue
		}
		coerced, omit, err := registry.Coerce(f, raw)
		if err != nil {
			return "", nil, repositories.ValidationError("sample", err)
		}
		if omit {
			continue
		}
		if f.Type == registry.StringArray {
			coerced, err = d.ArrayValue(coerced.([]string))
			if err != nil {
				return "", nil, repositories.ValidationError("sample", err)
			}
		}
		columns = append(columns, f.InternalName)
		values = append(values, coerced)
	}

	if len(columns) == 0 {
		return "", nil, repositories.NoFieldsError("sample")
	}

	columns = append(columns, "sys_is_active")
	values = append(values, true)
	columns = append(columns, "sys_create_timestamp")
	values = append(values, now.UTC().Format(time.RFC3339))
	columns = append(columns, "sys_create_user_uuid")
	values = append(values, opts.UserUUID)
	columns = append(columns, "sys_is_batch_upload")
	values = append(values, opts.IsBatchUpload)
	columns = append(columns, "sys_batch_upload_s3_uri")
	values = append(values, opts.BatchUploadURI)
	columns = append(columns, "sys_batch_upload_original_fname")
	values = append(values, opts.BatchSourceFN)

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = d.Placeholder(i + 1)
	}

	query := fmt.Sprintf("INSERT INTO sample (%s) VALUES (%s)",
		strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	return query, values, nil
}

// flattenBounds accepts the nested bounding box either as the typed model or
// as the raw decoded JSON object and returns the corners in
// south/west/north/east order.
func flattenBounds(raw interface{}) ([4]float64, error) {
	switch b := raw.(type) {
	case *models.RectangleBounds:
		if b == nil {
			return [4]float64{}, fmt.Errorf("%w for %s: null bounds", registry.ErrInvalidValue, boundsKey)
		}
		return [4]float64{b.South, b.West, b.North, b.East}, nil
	case models.RectangleBounds:
		return [4]float64{b.South, b.West, b.North, b.East}, nil
	case map[string]interface{}:
		var corners [4]float64
		for i, key := range [4]string{"south", "west", "north", "east"} {
			f, err := registry.MustLookup(cornerExternalNames[i])
			if err != nil {
				return corners, err
			}
			coerced, omit, err := registry.Coerce(f, b[key])
			if err != nil {
				return corners, err
			}
			if omit {
				return corners, fmt.Errorf("%w for %s: missing %s corner", registry.ErrInvalidValue, boundsKey, key)
			}
			corners[i] = coerced.(float64)
		}
		return corners, nil
	default:
		return [4]float64{}, fmt.Errorf("%w for %s: got %T", registry.ErrInvalidValue, boundsKey, raw)
	}
}
