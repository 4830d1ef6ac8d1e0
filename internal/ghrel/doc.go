// Package ghrel talks to the GitHub releases API. It covers release
// lookup (latest, by tag, or the full collection), asset filtering by
// filename pattern, sequential asset downloads with idempotent skip
// semantics, and tag listing via git ls-remote.
package ghrel
