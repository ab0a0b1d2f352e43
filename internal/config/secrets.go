package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// DatabaseCredentials is the JSON shape stored in the Secrets Manager secret
// that holds the database login.
type DatabaseCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SecretsClient reads deployment secrets and parameters from AWS Secrets
// Manager and SSM Parameter Store.
type SecretsClient struct {
	secrets *secretsmanager.Client
	params  *ssm.Client
}

// NewSecretsClient builds a client against the default credential chain.
func NewSecretsClient(ctx context.Context, region string) (*SecretsClient, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SecretsClient{
		secrets: secretsmanager.NewFromConfig(awsCfg),
		params:  ssm.NewFromConfig(awsCfg),
	}, nil
}

// GetDatabaseCredentials fetches and decodes the database secret.
func (c *SecretsClient) GetDatabaseCredentials(ctx context.Context, secretName string) (*DatabaseCredentials, error) {
	out, err := c.secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", secretName, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", secretName)
	}

	var creds DatabaseCredentials
	if err := json.Unmarshal([]byte(*out.SecretString), &creds); err != nil {
		return nil, fmt.Errorf("failed to decode secret %s: %w", secretName, err)
	}
	return &creds, nil
}

// GetParameter fetches a decrypted SSM parameter value.
func (c *SecretsClient) GetParameter(ctx context.Context, name string) (string, error) {
	out, err := c.params.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", name)
	}
	return *out.Parameter.Value, nil
}
