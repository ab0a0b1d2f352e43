package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrCodeExchangeFailed is returned when the token endpoint rejects an
// authorization code.
var ErrCodeExchangeFailed = errors.New("authorization code exchange failed")

// TokenSet holds the tokens issued by the hosted UI code exchange.
type TokenSet struct {
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// OAuthClient exchanges hosted-UI authorization codes for tokens.
type OAuthClient struct {
	tokenEndpoint string
	clientID      string
	httpClient    *http.Client
	logger        *logrus.Logger
}

// NewOAuthClient creates a client for the given token endpoint and app client.
func NewOAuthClient(tokenEndpoint, clientID string, logger *logrus.Logger) *OAuthClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &OAuthClient{
		tokenEndpoint: tokenEndpoint,
		clientID:      clientID,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
	}
}

// ExchangeCode trades an authorization code for a token set.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenSet, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeExchangeFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeExchangeFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeExchangeFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Warn("Token endpoint rejected code exchange")
		return nil, fmt.Errorf("%w: token endpoint returned %d", ErrCodeExchangeFailed, resp.StatusCode)
	}

	var tokens TokenSet
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeExchangeFailed, err)
	}
	if tokens.IDToken == "" {
		return nil, fmt.Errorf("%w: response has no id_token", ErrCodeExchangeFailed)
	}
	return &tokens, nil
}
