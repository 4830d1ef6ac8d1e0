package ghrel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// assetServer serves a fake asset endpoint that, like the real API,
// redirects octet-stream requests to a second location.
func assetServer(t *testing.T, content string) (*httptest.Server, *int) {
	t.Helper()
	fetches := new(int)
	mux := http.NewServeMux()
	mux.HandleFunc("/assets/1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/octet-stream" {
			t.Errorf("Accept = %q; want application/octet-stream", got)
		}
		http.Redirect(w, r, "/raw/1", http.StatusFound)
	})
	mux.HandleFunc("/raw/1", func(w http.ResponseWriter, r *http.Request) {
		*fetches++
		fmt.Fprint(w, content)
	})
	return httptest.NewServer(mux), fetches
}

func TestDownloadAssets_WritesFile(t *testing.T) {
	srv, fetches := assetServer(t, "binary-bytes")
	defer srv.Close()

	dir := t.TempDir()
	rel := Release{
		Tag:    "v1.0",
		Assets: []Asset{{Name: "app.zip", URL: srv.URL + "/assets/1"}},
	}

	if err := newClient(srv.URL).DownloadAssets(context.Background(), rel, dir, "", false); err != nil {
		t.Fatalf("DownloadAssets: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "app.zip"))
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "binary-bytes" {
		t.Fatalf("content = %q", data)
	}
	if *fetches != 1 {
		t.Fatalf("fetches = %d; want 1", *fetches)
	}
}

func TestDownloadAssets_SkipsExisting(t *testing.T) {
	srv, fetches := assetServer(t, "new-bytes")
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "app.zip")
	if err := os.WriteFile(dest, []byte("old-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	rel := Release{
		Tag:    "v1.0",
		Assets: []Asset{{Name: "app.zip", URL: srv.URL + "/assets/1"}},
	}

	if err := newClient(srv.URL).DownloadAssets(context.Background(), rel, dir, "", false); err != nil {
		t.Fatalf("DownloadAssets: %v", err)
	}
	if *fetches != 0 {
		t.Fatalf("fetches = %d; want 0 for existing file", *fetches)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "old-bytes" {
		t.Fatalf("existing file modified: %q", data)
	}
}

func TestDownloadAssets_ForceOverwrites(t *testing.T) {
	srv, fetches := assetServer(t, "new-bytes")
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "app.zip")
	if err := os.WriteFile(dest, []byte("old-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	rel := Release{
		Tag:    "v1.0",
		Assets: []Asset{{Name: "app.zip", URL: srv.URL + "/assets/1"}},
	}

	if err := newClient(srv.URL).DownloadAssets(context.Background(), rel, dir, "", true); err != nil {
		t.Fatalf("DownloadAssets: %v", err)
	}
	if *fetches != 1 {
		t.Fatalf("fetches = %d; want 1 with force", *fetches)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "new-bytes" {
		t.Fatalf("content = %q; want overwritten", data)
	}
}

func TestDownloadAssets_CreatesMissingDirectories(t *testing.T) {
	srv, _ := assetServer(t, "x")
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	rel := Release{
		Tag:    "v1.0",
		Assets: []Asset{{Name: "app.zip", URL: srv.URL + "/assets/1"}},
	}

	if err := newClient(srv.URL).DownloadAssets(context.Background(), rel, dir, "", false); err != nil {
		t.Fatalf("DownloadAssets: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "app.zip")); err != nil {
		t.Fatalf("expected file in created directory: %v", err)
	}
}

func TestDownloadAssets_TokenAppended(t *testing.T) {
	var gotToken string
	mux := http.NewServeMux()
	mux.HandleFunc("/assets/1", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("access_token")
		fmt.Fprint(w, "x")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rel := Release{
		Tag:    "v1.0",
		Assets: []Asset{{Name: "app.zip", URL: srv.URL + "/assets/1"}},
	}

	if err := newClient(srv.URL).DownloadAssets(context.Background(), rel, t.TempDir(), "tok", false); err != nil {
		t.Fatalf("DownloadAssets: %v", err)
	}
	if gotToken != "tok" {
		t.Fatalf("access_token = %q", gotToken)
	}
}

func TestDownloadAssets_FetchFailureIsFatal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/assets/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	rel := Release{
		Tag:    "v1.0",
		Assets: []Asset{{Name: "app.zip", URL: srv.URL + "/assets/1"}},
	}

	err := newClient(srv.URL).DownloadAssets(context.Background(), rel, dir, "", false)
	if err == nil {
		t.Fatal("expected error on non-2xx asset response")
	}
	// A failed download must not leave a destination file behind.
	if _, statErr := os.Stat(filepath.Join(dir, "app.zip")); !os.IsNotExist(statErr) {
		t.Fatalf("destination should not exist after failure: %v", statErr)
	}
}

func TestNoMatchError_NamesTagAndPattern(t *testing.T) {
	err := &NoMatchError{Tag: "v1.0", Pattern: `\.deb$`}
	msg := err.Error()
	for _, want := range []string{"v1.0", `\.deb$`} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}
