// Package options builds the validated, immutable run configuration for
// a single invocation. All flag-combination rules live here so the rest
// of the program only ever sees a well-formed Options value.
package options

import (
	"errors"
	"fmt"
	"regexp"
)

// Mode is the closed set of run modes. Exactly one is active per run.
type Mode int

const (
	// ModeDownload fetches the matching assets of one release to disk.
	ModeDownload Mode = iota
	// ModeListAssets prints the assets of the selected release.
	ModeListAssets
	// ModeListReleases prints every release without asset detail.
	ModeListReleases
	// ModeListReleasesWithAssets prints every release with its assets.
	ModeListReleasesWithAssets
)

// Listing reports whether m displays metadata instead of downloading.
func (m Mode) Listing() bool { return m != ModeDownload }

// AllReleases reports whether m operates on the whole release collection.
func (m Mode) AllReleases() bool {
	return m == ModeListReleases || m == ModeListReleasesWithAssets
}

// Flags carries the raw parsed flag values plus, for value flags whose
// zero value is meaningful, whether they were given at all.
type Flags struct {
	ListAssets   bool
	ListReleases bool
	JSON         bool
	Force        bool
	Verbose      bool

	Tag     string
	Pattern string
	Output  string
	Token   string

	TagSet     bool
	PatternSet bool
	OutputSet  bool
}

// Options is the validated configuration. Immutable after New.
type Options struct {
	Mode         Mode
	User         string
	Repo         string
	Tag          string         // "" selects the latest release
	AssetPattern *regexp.Regexp // never nil; defaults to match-all
	RawPattern   string
	OutputDir    string
	Token        string
	JSON         bool
	Force        bool
	Verbose      bool
}

// New validates the flag set and positional arguments and produces the
// run configuration. Every rejected combination returns a distinct error.
func New(f Flags, args []string) (*Options, error) {
	listing := f.ListAssets || f.ListReleases

	if f.ListReleases && f.TagSet {
		return nil, errors.New("--all (-A) and --tag (-r) are mutually exclusive")
	}
	if listing && f.OutputSet {
		return nil, errors.New("--output (-o) is not applicable when listing")
	}
	if listing && f.Force {
		return nil, errors.New("--force (-f) is not applicable when listing")
	}
	if !listing && f.JSON {
		return nil, errors.New("--json (-J) is only applicable when listing")
	}
	if f.ListReleases && !f.ListAssets && f.PatternSet {
		return nil, errors.New("--assets (-a) requires --list (-l) when listing all releases")
	}

	if len(args) < 1 {
		return nil, errors.New("a github user is required")
	}
	if len(args) < 2 {
		return nil, errors.New("a github repository is required")
	}
	if len(args) > 2 {
		return nil, fmt.Errorf("unexpected argument %q", args[2])
	}

	pattern := f.Pattern
	if pattern == "" {
		pattern = ".*"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid asset pattern %q: %w", pattern, err)
	}

	output := f.Output
	if output == "" {
		output = "."
	}

	mode := ModeDownload
	switch {
	case f.ListAssets && f.ListReleases:
		mode = ModeListReleasesWithAssets
	case f.ListReleases:
		mode = ModeListReleases
	case f.ListAssets:
		mode = ModeListAssets
	}

	return &Options{
		Mode:         mode,
		User:         args[0],
		Repo:         args[1],
		Tag:          f.Tag,
		AssetPattern: re,
		RawPattern:   pattern,
		OutputDir:    output,
		Token:        f.Token,
		JSON:         f.JSON,
		Force:        f.Force,
		Verbose:      f.Verbose,
	}, nil
}
