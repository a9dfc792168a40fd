// Package env converts environment variables into Go data.
// It is similar in design to package flag: variables are
// registered with a default and filled in by Parse.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// ErrBadValue is the root of every error reported by Parse.
var ErrBadValue = errors.New("bad environment value")

type variable struct {
	name string
	set  func(string) error
}

var vars []variable

func register(name string, set func(string) error) {
	vars = append(vars, variable{name, set})
}

// Int returns a new int pointer.
// When Parse is called,
// env var name will be parsed
// and the resulting value
// will be assigned to the returned location.
func Int(name string, value int) *int {
	p := new(int)
	IntVar(p, name, value)
	return p
}

// IntVar defines an int var with the specified
// name and default value.
func IntVar(p *int, name string, value int) {
	*p = value
	register(name, func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	})
}

// Uint64Var defines a uint64 var with the specified
// name and default value. Values may use a 0x prefix.
func Uint64Var(p *uint64, name string, value uint64) {
	*p = value
	register(name, func(s string) error {
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}
		*p = v
		return nil
	})
}

// Bool returns a new bool pointer.
// Parsing uses strconv.ParseBool.
func Bool(name string, value bool) *bool {
	p := new(bool)
	BoolVar(p, name, value)
	return p
}

// BoolVar defines a bool var with the specified
// name and default value.
func BoolVar(p *bool, name string, value bool) {
	*p = value
	register(name, func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	})
}

// DurationVar defines a time.Duration var with the
// specified name and default value.
// Parsing uses time.ParseDuration.
func DurationVar(p *time.Duration, name string, value time.Duration) {
	*p = value
	register(name, func(s string) error {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	})
}

// String returns a new string pointer.
func String(name string, value string) *string {
	p := new(string)
	StringVar(p, name, value)
	return p
}

// StringVar defines a string with the
// specified name and default value.
func StringVar(p *string, name string, value string) {
	*p = value
	register(name, func(s string) error {
		*p = s
		return nil
	})
}

// StringSliceVar defines a string slice with the
// specified name. The environment value is a
// comma-separated list; blank items are dropped.
func StringSliceVar(p *[]string, name string, value ...string) {
	*p = value
	register(name, func(s string) error {
		var a []string
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				a = append(a, item)
			}
		}
		*p = a
		return nil
	})
}

// Parse parses known env vars
// and assigns the values to the variables
// that were previously registered.
// Unset and empty variables keep their defaults.
// Every variable is attempted; the returned error
// names the first one that could not be parsed.
func Parse() error {
	var first error
	for _, v := range vars {
		s := os.Getenv(v.name)
		if s == "" {
			continue
		}
		if err := v.set(s); err != nil && first == nil {
			first = errors.WithDetailf(ErrBadValue, "%s=%q: %v", v.name, s, err)
		}
	}
	return first
}

// Reset forgets every registered variable.
func Reset() {
	vars = nil
}
