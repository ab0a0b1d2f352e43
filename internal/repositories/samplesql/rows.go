package samplesql

import (
	"database/sql"
	"strings"

	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/registry"
)

// selectColumns returns the canonical column list for sample reads:
// id, the registry columns in declaration order, then the active flag.
func selectColumns() string {
	cols := make([]string, 0, len(registry.Fields())+2)
	cols = append(cols, "id")
	for _, f := range registry.Fields() {
		cols = append(cols, f.InternalName)
	}
	cols = append(cols, "sys_is_active")
	return strings.Join(cols, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSample maps one storage row back into the external record shape. The
// nested bounding box is reconstructed iff the south corner is non-null; no
// validation happens on read.
func scanSample(d Dialect, row rowScanner) (*models.Sample, error) {
	var (
		id                    int64
		sampleID              sql.NullString
		category              sql.NullString
		collectorName         sql.NullString
		advisorName           sql.NullString
		advisorOtherName      sql.NullString
		collectionYear        sql.NullFloat64
		collectionReason      interface{}
		collectionReasonOther sql.NullString
		collectionLocation    interface{}
		shortDescription      sql.NullString
		longDescription       sql.NullString
		sampleForm            interface{}
		sampleFormOther       sql.NullString
		sampleType            interface{}
		sampleTypeOther       sql.NullString
		sampleImg             sql.NullString
		storageBuilding       sql.NullString
		storageBuildingOther  sql.NullString
		storageRoom           sql.NullString
		storageRoomOther      sql.NullString
		storageDetails        sql.NullString
		storageDuration       sql.NullFloat64
		rectSouth             sql.NullFloat64
		rectWest              sql.NullFloat64
		rectNorth             sql.NullFloat64
		rectEast              sql.NullFloat64
		markerLat             sql.NullFloat64
		markerLng             sql.NullFloat64
		isActive              bool
	)

	err := row.Scan(
		&id,
		&sampleID,
		&category,
		&collectorName,
		&advisorName,
		&advisorOtherName,
		&collectionYear,
		&collectionReason,
		&collectionReasonOther,
		&collectionLocation,
		&shortDescription,
		&longDescription,
		&sampleForm,
		&sampleFormOther,
		&sampleType,
		&sampleTypeOther,
		&sampleImg,
		&storageBuilding,
		&storageBuildingOther,
		&storageRoom,
		&storageRoomOther,
		&storageDetails,
		&storageDuration,
		&rectSouth,
		&rectWest,
		&rectNorth,
		&rectEast,
		&markerLat,
		&markerLng,
		&isActive,
	)
	if err != nil {
		return nil, err
	}

	s := &models.Sample{
		ID:                    id,
		SampleID:              nullString(sampleID),
		Category:              nullString(category),
		CollectorName:         nullString(collectorName),
		AdvisorName:           nullString(advisorName),
		AdvisorOtherName:      nullString(advisorOtherName),
		CollectionYear:        nullFloat(collectionYear),
		CollectionReasonOther: nullString(collectionReasonOther),
		ShortDescription:      nullString(shortDescription),
		LongDescription:       nullString(longDescription),
		SampleFormOther:       nullString(sampleFormOther),
		SampleTypeOther:       nullString(sampleTypeOther),
		SampleImg:             nullString(sampleImg),
		StorageBuilding:       nullString(storageBuilding),
		StorageBuildingOther:  nullString(storageBuildingOther),
		StorageRoom:           nullString(storageRoom),
		StorageRoomOther:      nullString(storageRoomOther),
		StorageDetails:        nullString(storageDetails),
		StorageDuration:       nullFloat(storageDuration),
		LocationMarkerLat:     nullFloat(markerLat),
		LocationMarkerLng:     nullFloat(markerLng),
		IsActive:              isActive,
	}

	if s.CollectionReason, err = d.ScanArray(collectionReason); err != nil {
		return nil, err
	}
	if s.CollectionLocation, err = d.ScanArray(collectionLocation); err != nil {
		return nil, err
	}
	if s.SampleForm, err = d.ScanArray(sampleForm); err != nil {
		return nil, err
	}
	if s.SampleType, err = d.ScanArray(sampleType); err != nil {
		return nil, err
	}

	if rectSouth.Valid {
		s.LocationRectangle = &models.RectangleBounds{
			South: rectSouth.Float64,
			West:  rectWest.Float64,
			North: rectNorth.Float64,
			East:  rectEast.Float64,
		}
	}

	return s, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
