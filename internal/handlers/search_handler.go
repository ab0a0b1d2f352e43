package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"sample-catalog-api/internal/models"
	"sample-catalog-api/internal/services"
	"sample-catalog-api/pkg/lambda"
)

// SearchHandler handles sample search HTTP requests
type SearchHandler struct {
	sampleService services.SampleService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(sampleService services.SampleService) *SearchHandler {
	return &SearchHandler{sampleService: sampleService}
}

// SearchByFilters handles POST /samples/search/filters
func (h *SearchHandler) SearchByFilters(c *gin.Context) {
	var params models.FilterParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	samples, err := h.sampleService.SearchByFilters(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, samples)
}

// SearchFulltext handles POST /samples/search/fulltext
func (h *SearchHandler) SearchFulltext(c *gin.Context) {
	var params models.FulltextParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := models.Validate(params); err != nil {
		respondError(c, err)
		return
	}

	samples, err := h.sampleService.SearchFulltext(c.Request.Context(), params.SearchTerm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, samples)
}

// SearchByLocation handles POST /samples/search/location
func (h *SearchHandler) SearchByLocation(c *gin.Context) {
	var params models.LocationParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := models.Validate(params); err != nil {
		respondError(c, err)
		return
	}

	samples, err := h.sampleService.SearchByLocation(c.Request.Context(), *params.LocationRectangle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, samples)
}

// HandleSearchByFilters handles filter search in serverless mode
func (h *SearchHandler) HandleSearchByFilters(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var params models.FilterParams
	if err := json.Unmarshal(req.Body, &params); err != nil {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}

	samples, err := h.sampleService.SearchByFilters(ctx, params)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusOK, samples), nil
}

// HandleSearchFulltext handles fulltext search in serverless mode
func (h *SearchHandler) HandleSearchFulltext(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var params models.FulltextParams
	if err := json.Unmarshal(req.Body, &params); err != nil {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	if err := models.Validate(params); err != nil {
		return lambdaError(err), nil
	}

	samples, err := h.sampleService.SearchFulltext(ctx, params.SearchTerm)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusOK, samples), nil
}

// HandleSearchByLocation handles location search in serverless mode
func (h *SearchHandler) HandleSearchByLocation(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var params models.LocationParams
	if err := json.Unmarshal(req.Body, &params); err != nil {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	if err := models.Validate(params); err != nil {
		return lambdaError(err), nil
	}

	samples, err := h.sampleService.SearchByLocation(ctx, *params.LocationRectangle)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusOK, samples), nil
}
