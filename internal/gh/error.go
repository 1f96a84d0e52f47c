package gh

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"emperror.dev/errors"
	"github.com/matomo-org/github-sync/internal/utils/errutils"
)

// ErrAuthenticationRequired is returned by write operations (and GraphQL
// queries) when no credential is configured.
var ErrAuthenticationRequired = errors.Sentinel(
	"authentication required: no GitHub token configured (set GITHUB_TOKEN or use --token)",
)

// APIError is a non-2xx response from the GitHub REST API.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Status     string
	// Message is the "message" field of the response body, if any.
	Message string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("GitHub API request %s %s failed: %s", e.Method, e.Endpoint, e.Status)
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

func newAPIError(method string, endpoint string, res *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: res.StatusCode,
		Status:     res.Status,
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

// IsHTTPUnauthorized returns true if the given error is an HTTP 401 Unauthorized error.
func IsHTTPUnauthorized(err error) bool {
	if apiErr, ok := errutils.As[*APIError](err); ok {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	// The GraphQL package doesn't export proper error types so we have to
	// check the string.
	return err != nil && strings.Contains(err.Error(), "status code: 401")
}

// IsNotFound returns true if the given error is an HTTP 404 Not Found error.
func IsNotFound(err error) bool {
	apiErr, ok := errutils.As[*APIError](err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}
