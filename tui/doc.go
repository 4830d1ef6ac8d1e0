// Package tui implements the Bubble Tea terminal UI for the
// application. It provides text inputs for user/repo/pattern/output/
// token, a release selection list fetched from the GitHub API, and
// keybind-driven actions to refresh releases and download the matching
// assets of the selected release.
package tui
