// Package cachedregexp memoizes compiled regular expressions so hot paths
// like component validation and reverse URL matching compile each pattern
// once per process.
package cachedregexp

import (
	"regexp"
	"sync"
)

var cache sync.Map

func MustCompile(exp string) *regexp.Regexp {
	compiled, ok := cache.Load(exp)
	if !ok {
		compiled, _ = cache.LoadOrStore(exp, regexp.MustCompile(exp))
	}

	return compiled.(*regexp.Regexp)
}

// Compile is the error-returning variant for patterns that come from
// configuration rather than source literals.
func Compile(exp string) (*regexp.Regexp, error) {
	compiled, ok := cache.Load(exp)
	if !ok {
		re, err := regexp.Compile(exp)
		if err != nil {
			return nil, err
		}
		compiled, _ = cache.LoadOrStore(exp, re)
	}

	return compiled.(*regexp.Regexp), nil
}
