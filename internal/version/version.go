// Package version orders release tags newest-first for display. It
// understands any number of numeric dot segments ("0.2.7.4") and
// semver-style prerelease precedence, falling back to lexical order for
// tags that are not version-like.
package version

import (
	"strconv"
	"strings"
	"unicode"
)

// NormalizeTag strips a single leading "v" or "V" from a git tag for
// display: "v0.6.5" -> "0.6.5".
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if len(tag) > 1 && (tag[0] == 'v' || tag[0] == 'V') {
		return tag[1:]
	}
	return tag
}

type parsed struct {
	ok    bool
	core  []int
	pre   []string
	isPre bool
}

// parse treats a string as version-like only when it starts with a
// digit and every core segment is purely numeric.
func parse(s string) parsed {
	s = strings.TrimSpace(s)
	if s == "" || !unicode.IsDigit(rune(s[0])) {
		return parsed{}
	}

	main := s
	var p parsed
	if i := strings.IndexByte(s, '-'); i >= 0 {
		main = s[:i]
		p.isPre = true
		if rest := s[i+1:]; rest != "" {
			p.pre = strings.Split(rest, ".")
		}
	}

	for _, seg := range strings.Split(main, ".") {
		n, err := strconv.Atoi(seg)
		if err != nil || seg == "" {
			return parsed{}
		}
		p.core = append(p.core, n)
	}

	p.ok = true
	return p
}

// Compare orders two display strings: positive when a outranks b,
// negative when b outranks a, zero when equivalent. Version-like values
// always outrank non-version-like ones; two non-version-like values
// compare lexically.
func Compare(a, b string) int {
	pa, pb := parse(a), parse(b)

	switch {
	case pa.ok && !pb.ok:
		return 1
	case !pa.ok && pb.ok:
		return -1
	case !pa.ok && !pb.ok:
		return strings.Compare(a, b)
	}

	if c := compareCore(pa.core, pb.core); c != 0 {
		return c
	}

	// Same core: a release outranks any prerelease.
	if pa.isPre != pb.isPre {
		if pa.isPre {
			return -1
		}
		return 1
	}
	if !pa.isPre {
		return 0
	}
	return comparePrerelease(pa.pre, pb.pre)
}

// Greater reports whether a should sort ahead of b in descending order.
func Greater(a, b string) bool {
	return Compare(a, b) > 0
}

// compareCore compares numeric segments, treating missing segments as 0
// so "1.2" and "1.2.0" are equivalent.
func compareCore(a, b []int) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}
	return 0
}

// comparePrerelease applies semver precedence: identifiers compare
// numerically when both are numeric, numeric sorts below non-numeric,
// and a shorter identifier list has lower precedence.
func comparePrerelease(a, b []string) int {
	for i := 0; i < min(len(a), len(b)); i++ {
		an, aNum := numericIdent(a[i])
		bn, bNum := numericIdent(b[i])

		switch {
		case aNum && bNum:
			if an != bn {
				if an > bn {
					return 1
				}
				return -1
			}
		case aNum:
			return -1
		case bNum:
			return 1
		default:
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func numericIdent(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
