// Package cmd defines the Cobra command tree for the application. The
// root command downloads or lists release assets for a USER REPO pair,
// and subcommands provide tag listing, an interactive TUI, and version
// information.
package cmd
