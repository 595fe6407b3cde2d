package core

import (
	"fmt"
	"regexp"
	"strconv"
)

// maxRepeat is the largest bound RE2 accepts in a {n,m} repetition.
const maxRepeat = 1000

// Pattern restricts the characters a code may hold. The zero Pattern accepts
// everything.
type Pattern struct {
	re       *regexp.Regexp
	fragment string
}

func MatchRegexp(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

// MatchFragment builds a pattern from a regexp fragment that is repeated up to
// the code length and anchored at the end, so partial codes validate while the
// user is still typing.
func MatchFragment(fragment string) Pattern {
	return Pattern{fragment: fragment}
}

func CompilePattern(expr string) (Pattern, error) {
	if expr == "" {
		return Pattern{}, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("compile pattern %q: %w", expr, err)
	}
	return Pattern{re: re}, nil
}

func MustCompilePattern(expr string) Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) IsZero() bool {
	return p.re == nil && p.fragment == ""
}

func (p Pattern) String() string {
	if p.re != nil {
		return p.re.String()
	}
	return p.fragment
}

// IsValidValue reports whether candidate passes pattern for a code of
// maxLength characters.
func IsValidValue(candidate string, pattern Pattern, maxLength int) bool {
	if pattern.IsZero() {
		return true
	}
	if pattern.re != nil {
		return pattern.re.MatchString(candidate)
	}
	re, err := fragmentRegexp(pattern.fragment, maxLength)
	if err != nil {
		return false
	}
	return re.MatchString(candidate)
}

func fragmentRegexp(fragment string, maxLength int) (*regexp.Regexp, error) {
	n := min(max(maxLength, 0), maxRepeat)
	return regexp.Compile(fragment + "{0," + strconv.Itoa(n) + "}$")
}

// Validator is IsValidValue with the fragment compiled once per length.
type Validator struct {
	pattern Pattern
	length  int
	byLen   map[int]*regexp.Regexp
	broken  map[int]bool
}

func NewValidator(pattern Pattern, length int) *Validator {
	return &Validator{
		pattern: pattern,
		length:  length,
		byLen:   map[int]*regexp.Regexp{},
		broken:  map[int]bool{},
	}
}

func (v *Validator) Pattern() Pattern { return v.pattern }
func (v *Validator) Length() int      { return v.length }

func (v *Validator) Valid(candidate string) bool {
	if v == nil {
		return true
	}
	return v.ValidFor(candidate, v.length)
}

// ValidFor checks candidate against the pattern sized for n characters.
func (v *Validator) ValidFor(candidate string, n int) bool {
	if v == nil || v.pattern.IsZero() {
		return true
	}
	if v.pattern.re != nil {
		return v.pattern.re.MatchString(candidate)
	}
	if v.broken[n] {
		return false
	}
	re, ok := v.byLen[n]
	if !ok {
		var err error
		re, err = fragmentRegexp(v.pattern.fragment, n)
		if err != nil {
			v.broken[n] = true
			return false
		}
		v.byLen[n] = re
	}
	return re.MatchString(candidate)
}
