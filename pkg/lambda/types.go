package lambda

import (
	"encoding/json"
	"strings"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// Header returns a request header by name, case-insensitively. API Gateway
// does not normalize header casing.
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Origin, Content-Type, Accept-Encoding, Authorization",
	}
}

// JSONResponse marshals v as the response body with CORS headers attached.
func JSONResponse(statusCode int, v interface{}) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		return ErrorResponse(500, "Internal server error")
	}
	return &Response{
		StatusCode: statusCode,
		Headers:    defaultHeaders(),
		Body:       body,
	}
}

// ErrorResponse builds a JSON error body with CORS headers attached.
func ErrorResponse(statusCode int, message string) *Response {
	body, _ := json.Marshal(map[string]string{"error": message})
	return &Response{
		StatusCode: statusCode,
		Headers:    defaultHeaders(),
		Body:       body,
	}
}

// RedirectResponse issues an HTTP redirect to location.
func RedirectResponse(location string) *Response {
	headers := defaultHeaders()
	headers["Location"] = location
	return &Response{
		StatusCode: 302,
		Headers:    headers,
		Body:       []byte{},
	}
}
