package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"sample-catalog-api/internal/auth"
	"sample-catalog-api/internal/repositories"
	"sample-catalog-api/pkg/lambda"
)

// statusFor maps service and repository errors to HTTP statuses. Internal
// errors map to 500 and their detail stays out of the response body.
func statusFor(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, err.Error()
	case repositories.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case repositories.IsNoFields(err):
		return http.StatusBadRequest, err.Error()
	case repositories.IsDuplicate(err):
		return http.StatusBadRequest, err.Error()
	case repositories.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, auth.ErrAuthenticationFailed):
		return http.StatusUnauthorized, "Authentication failed"
	case errors.Is(err, auth.ErrCodeExchangeFailed):
		return http.StatusBadGateway, "Authorization code exchange failed"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondError writes the translated error to a gin response.
func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"error":  err.Error(),
		}).Error("Request failed")
	}
	c.JSON(status, gin.H{"error": message})
}

// lambdaError translates an error into a serverless response.
func lambdaError(err error) *lambda.Response {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithField("error", err.Error()).Error("Request failed")
	}
	return lambda.ErrorResponse(status, message)
}
