package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sample-catalog-api/internal/auth"
	"sample-catalog-api/internal/middleware"
	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/services"
	"sample-catalog-api/pkg/lambda"
)

// UploadHandler handles presigned uploads and batch imports
type UploadHandler struct {
	uploadService services.UploadService
	batchService  services.BatchService
	verifier      auth.TokenVerifier
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService services.UploadService, batchService services.BatchService, verifier auth.TokenVerifier) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		batchService:  batchService,
		verifier:      verifier,
	}
}

// PresignUpload handles POST /uploads/presign
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	var params models.FileParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := models.Validate(params); err != nil {
		respondError(c, err)
		return
	}

	upload, err := h.uploadService.PresignUpload(c.Request.Context(), params.Name, params.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, upload)
}

// BatchImport handles POST /samples/batch
func (h *UploadHandler) BatchImport(c *gin.Context) {
	var req models.BatchUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := models.Validate(req); err != nil {
		respondError(c, err)
		return
	}

	userUUID := middleware.GetUserUUID(c)
	count, err := h.batchService.ImportSpreadsheet(c.Request.Context(), req.DestS3FileName, req.SourceFileName, userUUID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ResultStatus{
		Success: true,
		Message: fmt.Sprintf("Imported %d samples", count),
	})
}

// HandlePresign handles presign requests in serverless mode
func (h *UploadHandler) HandlePresign(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var params models.FileParams
	if err := json.Unmarshal(req.Body, &params); err != nil {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	if err := models.Validate(params); err != nil {
		return lambdaError(err), nil
	}

	upload, err := h.uploadService.PresignUpload(ctx, params.Name, params.ContentType)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusCreated, upload), nil
}

// HandleBatchImport handles batch imports in serverless mode
func (h *UploadHandler) HandleBatchImport(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	userUUID, err := lambdaSubject(ctx, h.verifier, req)
	if err != nil {
		return lambdaError(err), nil
	}

	var body models.BatchUploadRequest
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	if err := models.Validate(body); err != nil {
		return lambdaError(err), nil
	}

	count, err := h.batchService.ImportSpreadsheet(ctx, body.DestS3FileName, body.SourceFileName, userUUID)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusCreated, models.ResultStatus{
		Success: true,
		Message: fmt.Sprintf("Imported %d samples", count),
	}), nil
}
