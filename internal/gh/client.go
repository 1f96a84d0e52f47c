package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/matomo-org/github-sync/internal/utils/logutils"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIURL  = "https://api.github.com"
	DefaultTimeout = 30 * time.Second

	perPage = 100
)

// Credential is the capability required by every write operation.
// A nil *Credential means the client is read-only; write calls made with it
// fail with ErrAuthenticationRequired before any request is sent.
type Credential struct {
	httpClient *http.Client
}

// NewCredential returns a credential for the given token, or nil if the token
// is empty.
func NewCredential(ctx context.Context, token string) *Credential {
	if token == "" {
		return nil
	}
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return &Credential{httpClient: oauth2.NewClient(ctx, src)}
}

type ClientOpts struct {
	// APIURL is the REST API root (e.g., https://api.github.com or
	// https://github.example.com/api/v3 for GitHub Enterprise).
	APIURL  string
	Timeout time.Duration
	// Credential is used for reads (higher rate limits) and GraphQL queries.
	// It is optional: REST reads work anonymously.
	Credential *Credential
}

type Client struct {
	httpClient *http.Client
	gh         *githubv4.Client
	apiURL     string
	timeout    time.Duration
}

func NewClient(opts ClientOpts) *Client {
	apiURL := strings.TrimSuffix(opts.APIURL, "/")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		httpClient: http.DefaultClient,
		apiURL:     apiURL,
		timeout:    timeout,
	}
	if opts.Credential != nil {
		c.httpClient = opts.Credential.httpClient
		c.gh = githubv4.NewEnterpriseClient(graphqlURL(apiURL), opts.Credential.httpClient)
	}
	return c
}

// graphqlURL derives the GraphQL endpoint from the REST API root.
// GitHub Enterprise serves REST under /api/v3 and GraphQL under /api/graphql.
func graphqlURL(apiURL string) string {
	return strings.TrimSuffix(apiURL, "/v3") + "/graphql"
}

func (c *Client) query(ctx context.Context, query any, variables map[string]any) (reterr error) {
	if c.gh == nil {
		return ErrAuthenticationRequired
	}
	log := logrus.WithFields(logrus.Fields{
		"variables": logutils.Format("%#+v", variables),
	})
	log.Debug("executing GitHub API query...")
	startTime := time.Now()
	defer func() {
		log := log.WithFields(logrus.Fields{
			"elapsed": time.Since(startTime),
			"result":  logutils.Format("%#+v", query),
		})
		if reterr != nil {
			log.WithError(reterr).Debug("GitHub API query failed")
		} else {
			log.Debug("GitHub API query succeeded")
		}
	}()
	return c.gh.Query(ctx, query, variables)
}

// write executes a mutating REST request with the given credential.
func (c *Client) write(
	ctx context.Context,
	cred *Credential,
	method string,
	endpoint string,
	body any,
	result any,
) error {
	if cred == nil {
		return ErrAuthenticationRequired
	}
	_, err := c.rest(ctx, cred.httpClient, method, endpoint, body, result)
	return err
}

// rest executes a request against the endpoint (e.g., /repos/:owner/:repo/issues).
// The endpoint may also be an absolute URL below the API root, as returned in
// pagination links. It unmarshals the response into the given result (unless
// it's nil) and returns the URL of the next page, if there is one.
func (c *Client) rest(
	ctx context.Context,
	httpClient *http.Client,
	method string,
	endpoint string,
	body any,
	result any,
) (string, error) {
	url := endpoint
	switch {
	case strings.HasPrefix(endpoint, "/"):
		url = c.apiURL + endpoint
	case strings.HasPrefix(endpoint, c.apiURL+"/"):
	default:
		// Pagination links come from the server and must stay below the API root.
		return "", errors.Errorf("unexpected pagination URL %q (API root is %s)", endpoint, c.apiURL)
	}

	startTime := time.Now()
	log := logrus.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
		"body":   logutils.Format("%#+v", body),
	})

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal request body to JSON")
		}
		reqBody = bytes.NewReader(bodyJson)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	log.Debug("executing GitHub API request...")
	res, err := httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to make API request")
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response body")
	}
	log.WithField("elapsed", time.Since(startTime)).Debug("GitHub API request completed")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.WithFields(logrus.Fields{
			"status": res.StatusCode,
			"body":   string(resBody),
		}).Debug("GitHub API request failed")
		return "", newAPIError(method, endpoint, res, resBody)
	}

	next := nextPageURL(res.Header.Get("Link"))

	// Don't try to unmarshal into nil (or an empty 204 body).
	if result == nil || len(resBody) == 0 {
		return next, nil
	}
	if err := json.Unmarshal(resBody, result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal response body")
	}
	return next, nil
}

// list fetches every page of a REST collection endpoint.
func list[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	var all []T
	next := endpoint
	for next != "" {
		var page []T
		var err error
		next, err = c.rest(ctx, c.httpClient, http.MethodGet, next, nil, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
	}
	return all, nil
}

// nextPageURL extracts the rel="next" target from a Link header.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		target, params, ok := strings.Cut(strings.TrimSpace(part), ";")
		if !ok || !strings.Contains(params, `rel="next"`) {
			continue
		}
		return strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(target), "<"), ">")
	}
	return ""
}

// Ptr returns a pointer to the argument.
// Optional request fields are expressed as pointers, so this makes it easy to
// set them from literals, e.g. IssueInput{Milestone: Ptr(int64(3))}.
func Ptr[T any](v T) *T {
	return &v
}
