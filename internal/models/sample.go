package models

// RectangleBounds is the four-corner geographic bounding box a sample can
// carry. On write it is flattened into four scalar columns; on read it is
// reconstructed only when the south corner column is non-null.
type RectangleBounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Sample is the external shape of one cataloged specimen record. Pointer
// fields distinguish "absent" from zero values so sparse records round-trip
// cleanly.
type Sample struct {
	ID                    int64            `json:"id,omitempty"`
	SampleID              *string          `json:"sampleId,omitempty"`
	Category              *string          `json:"category,omitempty"`
	CollectorName         *string          `json:"collectorName,omitempty"`
	AdvisorName           *string          `json:"advisorName,omitempty"`
	AdvisorOtherName      *string          `json:"advisorOtherName,omitempty"`
	CollectionYear        *float64         `json:"collectionYear,omitempty"`
	CollectionReason      []string         `json:"collectionReason,omitempty"`
	CollectionReasonOther *string          `json:"collectionReasonOther,omitempty"`
	CollectionLocation    []string         `json:"collectionLocation,omitempty"`
	ShortDescription      *string          `json:"shortDescription,omitempty"`
	LongDescription       *string          `json:"longDescription,omitempty"`
	SampleForm            []string         `json:"sampleForm,omitempty"`
	SampleFormOther       *string          `json:"sampleFormOther,omitempty"`
	SampleType            []string         `json:"sampleType,omitempty"`
	SampleTypeOther       *string          `json:"sampleTypeOther,omitempty"`
	SampleImg             *string          `json:"sampleImg,omitempty"`
	StorageBuilding       *string          `json:"storageBuilding,omitempty"`
	StorageBuildingOther  *string          `json:"storageBuildingOther,omitempty"`
	StorageRoom           *string          `json:"storageRoom,omitempty"`
	StorageRoomOther      *string          `json:"storageRoomOther,omitempty"`
	StorageDetails        *string          `json:"storageDetails,omitempty"`
	StorageDuration       *float64         `json:"storageDuration,omitempty"`
	LocationRectangle     *RectangleBounds `json:"locationRectangleBounds"`
	LocationMarkerLat     *float64         `json:"locationMarkerlat,omitempty"`
	LocationMarkerLng     *float64         `json:"locationMarkerlng,omitempty"`

	// IsActive is false once the sample has been soft-deleted. List and
	// search operations exclude inactive samples; direct get by id does not.
	IsActive bool `json:"sysIsActive"`
}

// ResultStatus is the body of mutation responses.
type ResultStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
