package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"sample-catalog-api/internal/auth"
	"sample-catalog-api/internal/models"
	"sample-catalog-api/pkg/lambda"
)

// AuthHandler handles login and hosted-UI callback requests
type AuthHandler struct {
	cognito      auth.Authenticator
	oauth        *auth.OAuthClient
	webClientURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cognito auth.Authenticator, oauth *auth.OAuthClient, webClientURL string) *AuthHandler {
	return &AuthHandler{
		cognito:      cognito,
		oauth:        oauth,
		webClientURL: webClientURL,
	}
}

// loginRedirectURL sends the browser back to the web client with the issued
// tokens as query parameters.
func (h *AuthHandler) loginRedirectURL(code string, tokens *auth.TokenSet) string {
	q := url.Values{}
	q.Set("code", code)
	q.Set("id_token", tokens.IDToken)
	q.Set("access_token", tokens.AccessToken)
	q.Set("refresh_token", tokens.RefreshToken)
	return fmt.Sprintf("%s/login?%s", h.webClientURL, q.Encode())
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	if h.cognito == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider not configured"})
		return
	}

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := models.Validate(req); err != nil {
		respondError(c, err)
		return
	}

	idToken, err := h.cognito.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.LoginResponse{IDToken: idToken})
}

// Callback handles GET /auth/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	if h.oauth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider not configured"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": `"code" parameter is missing`})
		return
	}

	redirectURI := fmt.Sprintf("%s://%s%s", requestScheme(c), c.Request.Host, c.Request.URL.Path)
	tokens, err := h.oauth.ExchangeCode(c.Request.Context(), code, redirectURI)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, h.loginRedirectURL(code, tokens))
}

func requestScheme(c *gin.Context) string {
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// HandleLogin handles login in serverless mode
func (h *AuthHandler) HandleLogin(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if h.cognito == nil {
		return lambda.ErrorResponse(http.StatusServiceUnavailable, "Identity provider not configured"), nil
	}

	var body models.LoginRequest
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return lambda.ErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	if err := models.Validate(body); err != nil {
		return lambdaError(err), nil
	}

	idToken, err := h.cognito.Login(ctx, body.Username, body.Password)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.JSONResponse(http.StatusCreated, models.LoginResponse{IDToken: idToken}), nil
}

// HandleCallback handles the hosted-UI callback in serverless mode
func (h *AuthHandler) HandleCallback(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	if h.oauth == nil {
		return lambda.ErrorResponse(http.StatusServiceUnavailable, "Identity provider not configured"), nil
	}

	code := req.QueryParams["code"]
	if code == "" {
		return lambda.ErrorResponse(http.StatusBadRequest, `"code" parameter is missing`), nil
	}

	redirectURI := fmt.Sprintf("https://%s%s", req.Header("Host"), req.Path)
	tokens, err := h.oauth.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return lambdaError(err), nil
	}
	return lambda.RedirectResponse(h.loginRedirectURL(code, tokens)), nil
}
