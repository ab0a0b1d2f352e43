package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// FilterParams carries the fixed set of filterable properties for
// search-by-filter. Empty values emit no condition.
type FilterParams struct {
	Category        string `json:"category"`
	CollectorName   string `json:"collectorName"`
	AdvisorName     string `json:"advisorName"`
	StorageBuilding string `json:"storageBuilding"`
	StorageRoom     string `json:"storageRoom"`
}

// FulltextParams carries the single required fulltext search term.
type FulltextParams struct {
	SearchTerm string `json:"searchterm" validate:"required"`
}

// LocationParams carries the rectangle for search-by-location.
type LocationParams struct {
	LocationRectangle *RectangleBounds `json:"locationRectangleBounds" validate:"required"`
}

// FileParams is the request body for issuing a presigned upload URL.
type FileParams struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"contentType"`
}

// PresignedUpload is the response to a presign request and, echoed back by
// the client, the input to a batch import.
type PresignedUpload struct {
	URL            string `json:"url"`
	SourceFileName string `json:"sourceFileName"`
	DestS3FileName string `json:"destS3FileName"`
}

// BatchUploadRequest references a previously uploaded spreadsheet.
type BatchUploadRequest struct {
	SourceFileName string `json:"sourceFileName" validate:"required"`
	DestS3FileName string `json:"destS3FileName" validate:"required"`
}

// LoginRequest is the credential pair forwarded to the identity provider.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the identity provider token on success.
type LoginResponse struct {
	IDToken string `json:"id_token"`
}

// Validate runs struct tag validation on any request type.
func Validate(v interface{}) error {
	return validate.Struct(v)
}
