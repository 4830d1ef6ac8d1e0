package options

import (
	"fmt"
	"strconv"
)

// OnceString is a pflag.Value that rejects a second occurrence of its
// flag. pflag itself silently lets later occurrences overwrite earlier
// ones, which would hide user mistakes like `-r v1.0 -r v2.0`.
type OnceString struct {
	value string
	set   bool
}

func (s *OnceString) Set(v string) error {
	if s.set {
		return fmt.Errorf("may only be given once")
	}
	s.value = v
	s.set = true
	return nil
}

func (s *OnceString) String() string { return s.value }
func (s *OnceString) Type() string   { return "string" }

// Value returns the flag value, or "" when unset.
func (s *OnceString) Value() string { return s.value }

// Given reports whether the flag appeared on the command line.
func (s *OnceString) Given() bool { return s.set }

// OnceBool is the boolean counterpart of OnceString. Register it with
// NoOptDefVal = "true" so it behaves like a normal boolean flag.
type OnceBool struct {
	value bool
	set   bool
}

func (b *OnceBool) Set(v string) error {
	if b.set {
		return fmt.Errorf("may only be given once")
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	b.value = parsed
	b.set = true
	return nil
}

func (b *OnceBool) String() string { return strconv.FormatBool(b.value) }
func (b *OnceBool) Type() string   { return "bool" }

// Value returns the flag value, false when unset.
func (b *OnceBool) Value() bool { return b.value }
