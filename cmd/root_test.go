package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/samiconductor/ghradl/internal/ghrel"
	"github.com/samiconductor/ghradl/internal/releases"
)

type fakeSource struct {
	release  ghrel.Release
	releases []ghrel.Release
	tags     []string
	err      error

	downloaded []ghrel.Release
	downloadTo string
	forced     bool
}

func (f *fakeSource) Release(ctx context.Context, user, repo, tag, token string) (ghrel.Release, error) {
	return f.release, f.err
}

func (f *fakeSource) Releases(ctx context.Context, user, repo, token string) ([]ghrel.Release, error) {
	return f.releases, f.err
}

func (f *fakeSource) ListTags(ctx context.Context, user, repo, token string) ([]string, error) {
	return f.tags, f.err
}

func (f *fakeSource) DownloadAssets(ctx context.Context, rel ghrel.Release, dir, token string, force bool) error {
	f.downloaded = append(f.downloaded, rel)
	f.downloadTo = dir
	f.forced = force
	return f.err
}

func execute(t *testing.T, src releases.Source, args ...string) (string, error) {
	t.Helper()

	orig := newSource
	newSource = func() releases.Source { return src }
	t.Cleanup(func() { newSource = orig })

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_RejectsDuplicateFlags(t *testing.T) {
	cases := [][]string{
		{"-r", "v1.0", "-r", "v2.0", "u", "r"},
		{"-a", ".*", "-a", `\.zip$`, "u", "r"},
		{"-o", "x", "-o", "y", "u", "r"},
		{"-t", "a", "-t", "b", "u", "r"},
		{"-l", "-l", "u", "r"},
		{"-f", "-f", "u", "r"},
	}
	for _, args := range cases {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := execute(t, &fakeSource{}, args...)
			if err == nil || !strings.Contains(err.Error(), "only be given once") {
				t.Fatalf("expected duplicate-flag error, got %v", err)
			}
		})
	}
}

func TestRoot_AllAndTagMutuallyExclusive(t *testing.T) {
	for _, args := range [][]string{
		{"-A", "-r", "v1.0", "u", "r"},
		{"-r", "v1.0", "-A", "u", "r"},
	} {
		if _, err := execute(t, &fakeSource{}, args...); err == nil {
			t.Fatalf("args %v: expected mutual-exclusion error", args)
		}
	}
}

func TestRoot_ListingRejectsDownloadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-l", "-o", "dl", "u", "r"},
		{"-A", "-o", "dl", "u", "r"},
		{"-l", "-f", "u", "r"},
		{"-A", "-f", "u", "r"},
	} {
		if _, err := execute(t, &fakeSource{}, args...); err == nil {
			t.Fatalf("args %v: expected inapplicable-option error", args)
		}
	}
}

func TestRoot_JSONRequiresListing(t *testing.T) {
	if _, err := execute(t, &fakeSource{}, "-J", "u", "r"); err == nil {
		t.Fatal("expected error for -J outside listing modes")
	}
}

func TestRoot_MissingPositionals(t *testing.T) {
	if _, err := execute(t, &fakeSource{}); err == nil {
		t.Fatal("expected error for missing user")
	}
	if _, err := execute(t, &fakeSource{}, "useronly"); err == nil {
		t.Fatal("expected error for missing repository")
	}
}

func TestRoot_ListAssetsText(t *testing.T) {
	src := &fakeSource{
		release: ghrel.Release{
			Name: "First release",
			Tag:  "v1.0",
			Assets: []ghrel.Asset{
				{Name: "app.zip"},
				{Name: "app.tar.gz"},
				{Name: "README.md"},
			},
		},
	}

	out, err := execute(t, src, "-l", "-a", `\.tar\.gz$`, "u", "r")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := "Release: First release\nTag: v1.0\nAssets:\napp.tar.gz\n"
	if out != want {
		t.Fatalf("output = %q; want %q", out, want)
	}
}

func TestRoot_ListAssetsNoMatchIsDisplayOnly(t *testing.T) {
	src := &fakeSource{
		release: ghrel.Release{
			Name:   "First release",
			Tag:    "v1.0",
			Assets: []ghrel.Asset{{Name: "app.zip"}},
		},
	}

	out, err := execute(t, src, "-l", "-a", `\.deb$`, "u", "r")
	if err != nil {
		t.Fatalf("listing should not fail on zero matches: %v", err)
	}
	if !strings.Contains(out, `No assets matching pattern "\.deb$"`) {
		t.Fatalf("output = %q", out)
	}
}

func TestRoot_ListAllReleasesJSON(t *testing.T) {
	src := &fakeSource{
		releases: []ghrel.Release{
			{Tag: "v1.0", Name: "one"},
			{Tag: "v2.0", Name: "two"},
		},
	}

	out, err := execute(t, src, "-A", "-J", "u", "r")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var got []struct {
		Tag  string `json:"tag"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(got) != 2 || got[0].Tag != "v1.0" || got[1].Tag != "v2.0" {
		t.Fatalf("got %+v", got)
	}
}

func TestRoot_ListAllReleasesWithAssetsJSON(t *testing.T) {
	src := &fakeSource{
		releases: []ghrel.Release{
			{Tag: "v1.0", Name: "one", Assets: []ghrel.Asset{{Name: "a.zip", URL: "u", Download: "d"}}},
		},
	}

	out, err := execute(t, src, "-A", "-l", "-J", "u", "r")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var got []ghrel.Release
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if len(got) != 1 || len(got[0].Assets) != 1 || got[0].Assets[0].Name != "a.zip" {
		t.Fatalf("got %+v", got)
	}
}

func TestRoot_DownloadFiltersAndDelegates(t *testing.T) {
	src := &fakeSource{
		release: ghrel.Release{
			Tag: "v1.0",
			Assets: []ghrel.Asset{
				{Name: "app.zip"},
				{Name: "app.tar.gz"},
			},
		},
	}

	_, err := execute(t, src, "-a", `\.zip$`, "-o", "downloads", "-f", "u", "r")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(src.downloaded) != 1 {
		t.Fatalf("downloads = %d; want 1", len(src.downloaded))
	}
	got := src.downloaded[0]
	if len(got.Assets) != 1 || got.Assets[0].Name != "app.zip" {
		t.Fatalf("downloaded assets = %+v", got.Assets)
	}
	if src.downloadTo != "downloads" || !src.forced {
		t.Fatalf("dir = %q forced = %v", src.downloadTo, src.forced)
	}
}

func TestRoot_DownloadNoMatchFails(t *testing.T) {
	src := &fakeSource{
		release: ghrel.Release{
			Tag:    "v1.0",
			Assets: []ghrel.Asset{{Name: "app.zip"}},
		},
	}

	_, err := execute(t, src, "-a", `\.deb$`, "u", "r")
	var noMatch *ghrel.NoMatchError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
	if noMatch.Tag != "v1.0" || noMatch.Pattern != `\.deb$` {
		t.Fatalf("got %+v", noMatch)
	}
	if len(src.downloaded) != 0 {
		t.Fatal("no download should be attempted")
	}
}

func TestRoot_APIErrorPropagates(t *testing.T) {
	src := &fakeSource{err: &ghrel.APIError{Message: "Not Found"}}

	_, err := execute(t, src, "u", "r")
	var apiErr *ghrel.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(src.downloaded) != 0 {
		t.Fatal("no download should be attempted after an API error")
	}
}

func TestTagsCommand(t *testing.T) {
	src := &fakeSource{tags: []string{"v1.0", "v2.0"}}

	out, err := execute(t, src, "tags", "u", "r")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "v1.0\nv2.0\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, &fakeSource{}, "version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "ghradl") {
		t.Fatalf("output = %q", out)
	}
}
