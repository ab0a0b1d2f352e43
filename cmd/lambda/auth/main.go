package main

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"sample-catalog-api/internal/handlers"
	"sample-catalog-api/pkg/lambda"
)

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req := &lambda.Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        []byte(event.Body),
		PathParams:  event.PathParameters,
	}

	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}

	authHandler := handlers.NewAuthHandler(container.Authenticator(), container.OAuth, container.Config.Auth.WebClientURL)

	var resp *lambda.Response
	switch {
	case req.Method == "POST" && strings.HasSuffix(req.Path, "/auth/login"):
		resp, err = authHandler.HandleLogin(ctx, req)
	case req.Method == "GET" && strings.HasSuffix(req.Path, "/auth/callback"):
		resp, err = authHandler.HandleCallback(ctx, req)
	default:
		resp = lambda.ErrorResponse(404, "Not found")
	}

	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error": "Internal server error"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}, nil
}

func main() {
	awslambda.Start(handler)
}
