package ghrel

import "regexp"

// FilterAssets returns a copy of rel restricted to assets whose name
// matches pattern, preserving the original asset order. The match is
// unanchored, as with grep.
func FilterAssets(rel Release, pattern *regexp.Regexp) Release {
	filtered := Release{
		Name:   rel.Name,
		Tag:    rel.Tag,
		Assets: make([]Asset, 0, len(rel.Assets)),
	}
	for _, a := range rel.Assets {
		if pattern.MatchString(a.Name) {
			filtered.Assets = append(filtered.Assets, a)
		}
	}
	return filtered
}

// FilterAll applies FilterAssets to every release, preserving release order.
func FilterAll(releases []Release, pattern *regexp.Regexp) []Release {
	filtered := make([]Release, 0, len(releases))
	for _, rel := range releases {
		filtered = append(filtered, FilterAssets(rel, pattern))
	}
	return filtered
}
