package auth

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/sirupsen/logrus"
)

// ErrAuthenticationFailed is returned when the identity provider rejects
// the supplied credentials.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Authenticator exchanges credentials for an ID token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// CognitoClient authenticates users against a Cognito user pool.
type CognitoClient struct {
	client     *cognitoidentityprovider.Client
	userPoolID string
	clientID   string
	logger     *logrus.Logger
}

// NewCognitoClient creates a Cognito client for the given pool and app client.
func NewCognitoClient(ctx context.Context, region, userPoolID, clientID string, logger *logrus.Logger) (*CognitoClient, error) {
	if logger == nil {
		logger = logrus.New()
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &CognitoClient{
		client:     cognitoidentityprovider.NewFromConfig(awsCfg),
		userPoolID: userPoolID,
		clientID:   clientID,
		logger:     logger,
	}, nil
}

// Login authenticates with username and password and returns the ID token.
func (c *CognitoClient) Login(ctx context.Context, username, password string) (string, error) {
	out, err := c.client.AdminInitiateAuth(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		AuthFlow:   types.AuthFlowTypeAdminUserPasswordAuth,
		UserPoolId: &c.userPoolID,
		ClientId:   &c.clientID,
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		c.logger.WithError(err).WithField("username", username).Warn("Cognito authentication failed")
		return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	if out.AuthenticationResult == nil || out.AuthenticationResult.IdToken == nil {
		return "", fmt.Errorf("%w: no token in response", ErrAuthenticationFailed)
	}
	return *out.AuthenticationResult.IdToken, nil
}
