// Package render formats filtered release data for stdout, either as
// human-readable text blocks or as JSON for the listing modes.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samiconductor/ghradl/internal/ghrel"
)

// Block pairs a filtered release with whether the release carried any
// assets before filtering, so the text view can tell "no assets at all"
// apart from "nothing matched the pattern".
type Block struct {
	Release   ghrel.Release
	HadAssets bool
}

// Text writes blank-line-separated release blocks. Asset names are
// included when withAssets is set; pattern is only used for the
// nothing-matched placeholder.
func Text(w io.Writer, blocks []Block, withAssets bool, pattern string) error {
	for i, b := range blocks {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Release: %s\n", b.Release.Name); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Tag: %s\n", b.Release.Tag); err != nil {
			return err
		}
		if !withAssets {
			continue
		}

		switch {
		case len(b.Release.Assets) > 0:
			if _, err := fmt.Fprintln(w, "Assets:"); err != nil {
				return err
			}
			for _, a := range b.Release.Assets {
				if _, err := fmt.Fprintln(w, a.Name); err != nil {
					return err
				}
			}
		case b.HadAssets:
			if _, err := fmt.Fprintf(w, "No assets matching pattern %q\n", pattern); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintln(w, "No assets"); err != nil {
				return err
			}
		}
	}
	return nil
}

// releaseSummary is the JSON shape for listing releases without assets.
type releaseSummary struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

// JSONSummaries emits an ordered array of {tag, name} per release.
func JSONSummaries(w io.Writer, releases []ghrel.Release) error {
	summaries := make([]releaseSummary, 0, len(releases))
	for _, rel := range releases {
		summaries = append(summaries, releaseSummary{Tag: rel.Tag, Name: rel.Name})
	}
	return encode(w, summaries)
}

// JSONRelease emits the full normalized structure of a single release.
func JSONRelease(w io.Writer, rel ghrel.Release) error {
	return encode(w, rel)
}

// JSONReleases emits the full normalized structure of every release.
func JSONReleases(w io.Writer, releases []ghrel.Release) error {
	return encode(w, releases)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
