package ghrel

import "fmt"

// Release is the normalized view of a GitHub release: its display name,
// tag, and downloadable assets in API order.
type Release struct {
	Name   string  `json:"name"`
	Tag    string  `json:"tag"`
	Assets []Asset `json:"assets"`
}

// Asset is a single downloadable file attached to a release. URL is the
// API asset resource (requires Accept: application/octet-stream to
// fetch raw content); Download is the public browser_download_url.
type Asset struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Download string `json:"download"`
}

// releaseResponse models only the fields of the GitHub release payload
// we care about.
type releaseResponse struct {
	Name    string          `json:"name"`
	TagName string          `json:"tag_name"`
	Assets  []assetResponse `json:"assets"`
}

type assetResponse struct {
	Name               string `json:"name"`
	URL                string `json:"url"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

func (r releaseResponse) normalize() Release {
	rel := Release{
		Name:   r.Name,
		Tag:    r.TagName,
		Assets: make([]Asset, 0, len(r.Assets)),
	}
	for _, a := range r.Assets {
		rel.Assets = append(rel.Assets, Asset{
			Name:     a.Name,
			URL:      a.URL,
			Download: a.BrowserDownloadURL,
		})
	}
	return rel
}

// APIError is an error reported by the API itself via the "message"
// field of the response body, e.g. {"message": "Not Found"}.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api error: %s", e.Message)
}

// NoMatchError is returned in download mode when the asset pattern
// matched nothing for the selected release.
type NoMatchError struct {
	Tag     string
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("release %q has no assets matching pattern %q", e.Tag, e.Pattern)
}
