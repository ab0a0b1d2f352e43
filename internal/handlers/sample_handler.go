package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sample-catalog-api/internal/auth"
	"sample-catalog-api/internal/middleware"
	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/services"
	"sample-catalog-api/pkg/lambda"
)

// SampleHandler handles sample catalog HTTP requests
type SampleHandler struct {
	sampleService services.SampleService
	verifier      auth.TokenVerifier
}

// NewSampleHandler creates a new sample handler
func NewSampleHandler(sampleService services.SampleService, verifier auth.TokenVerifier) *SampleHandler {
	return &SampleHandler{
		sampleService: sampleService,
		verifier:      verifier,
	}
}

// lambdaSubject resolves the caller identity from a serverless request. With
// no verifier configured the request proceeds unattributed.
func lambdaSubject(ctx context.Context, verifier auth.TokenVerifier, req *lambda.Request) (string, error) {
	if verifier == nil {
		return "", nil
	}
	return verifier.SubjectFromAuthHeader(ctx, req.Header("Authorization"))
}

// parseSampleID reads the numeric id path parameter.
func parseSampleID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// CreateSample handles POST /samples
func (h *SampleHandler) CreateSample(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userUUID := middleware.GetUserUUID(c)
	if err := h.sampleService.Create(c.Request.Context(), data, userUUID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ResultStatus{Success: true, Message: "Sample created"})
}

// ListSamples handles GET /samples
func (h *SampleHandler) ListSamples(c *gin.Context) {
	samples, err := h.sampleService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, samples)
}

// GetSample handles GET /samples/:id
func (h *SampleHandler) GetSample(c *gin.Context) {
	id, ok := parseSampleID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sample id"})
		return
	}

	sample, err := h.sampleService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sample)
}

// DeleteSample handles DELETE /samples/:id
func (h *SampleHandler) DeleteSample(c *gin.Context) {
	id, ok := parseSampleID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sample id"})
		return
	}

	userUUID := middleware.GetUserUUID(c)
	if err := h.sampleService.Delete(c.Request.Context(), id, userUUID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, models.ResultStatus{Success: true, Message: "Sample retired"})
}

// HandleCreate handles sample creation in serverless mode
func (h *SampleHandler) HandleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	userUUID, err := lambdaSubject(ctx, h.verifier, req)
	if err != nil {
		return lambdaError(err), nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(req.Body, &data); err != nil {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}

	if err := h.sampleService.Create(ctx, data, userUUID); err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusCreated, models.ResultStatus{Success: true, Message: "Sample created"}), nil
}

// HandleList handles sample listing in serverless mode
func (h *SampleHandler) HandleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	samples, err := h.sampleService.List(ctx)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusOK, samples), nil
}

// HandleGet handles fetching one sample in serverless mode
func (h *SampleHandler) HandleGet(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id, ok := parseSampleID(req.PathParams["id"])
	if !ok {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid sample id"), nil
	}

	sample, err := h.sampleService.Get(ctx, id)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusOK, sample), nil
}

// HandleDelete handles sample retirement in serverless mode
func (h *SampleHandler) HandleDelete(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	id, ok := parseSampleID(req.PathParams["id"])
	if !ok {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid sample id"), nil
	}

	userUUID, err := lambdaSubject(ctx, h.verifier, req)
	if err != nil {
		return lambdaError(err), nil
	}

	if err := h.sampleService.Delete(ctx, id, userUUID); err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusAccepted, models.ResultStatus{Success: true, Message: "Sample retired"}), nil
}
