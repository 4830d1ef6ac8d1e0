package ghrel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samiconductor/ghradl/internal/logger"
)

const defaultBaseURL = "https://api.github.com"

// ErrEmptyResponse indicates the release query returned no body at all,
// which we treat as a connectivity problem distinct from an API error.
var ErrEmptyResponse = errors.New("empty response from github; check your connection")

// Client performs GitHub releases API requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client against api.github.com with a fixed,
// request-wide timeout.
func NewClient() *Client {
	return newClient(defaultBaseURL)
}

// newClient is the test seam for pointing the client at a local server.
func newClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// releasesURL builds the release-list request URL. With all set the bare
// collection is requested; otherwise tag selects a single release, or
// /latest when tag is empty. A configured token is appended as an
// access_token query parameter.
func (c *Client) releasesURL(user, repo, tag, token string, all bool) string {
	u := fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL, user, repo)
	if !all {
		if tag != "" {
			u += "/tags/" + url.PathEscape(tag)
		} else {
			u += "/latest"
		}
	}
	return withToken(u, token)
}

func withToken(u, token string) string {
	if token == "" {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "access_token=" + url.QueryEscape(token)
}

// Release fetches a single release: the one tagged tag, or the latest
// release when tag is empty.
func (c *Client) Release(ctx context.Context, user, repo, tag, token string) (Release, error) {
	body, err := c.get(ctx, c.releasesURL(user, repo, tag, token, false))
	if err != nil {
		return Release{}, err
	}

	var raw releaseResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return Release{}, fmt.Errorf("decode release JSON: %w", err)
	}
	return raw.normalize(), nil
}

// Releases fetches the full release collection in API order.
func (c *Client) Releases(ctx context.Context, user, repo, token string) ([]Release, error) {
	body, err := c.get(ctx, c.releasesURL(user, repo, "", token, true))
	if err != nil {
		return nil, err
	}

	var raw []releaseResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode releases JSON: %w", err)
	}

	releases := make([]Release, 0, len(raw))
	for _, r := range raw {
		releases = append(releases, r.normalize())
	}
	return releases, nil
}

// get performs the metadata request and applies the error taxonomy: an
// empty body is a connectivity error, a body with a "message" field is
// an API error. Status codes are not inspected directly; the API always
// describes failures in the body.
func (c *Client) get(ctx context.Context, apiURL string) ([]byte, error) {
	logger.Log.Debug("fetching release metadata", "url", apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release metadata: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read release metadata: %w", err)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyResponse
	}
	if msg := apiMessage(body); msg != "" {
		return nil, &APIError{Message: msg}
	}
	return body, nil
}

// apiMessage extracts a non-null top-level "message" field. Array
// responses fail to unmarshal into the probe and report no message.
func apiMessage(body []byte) string {
	var probe struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	if probe.Message != nil {
		return *probe.Message
	}
	return ""
}
