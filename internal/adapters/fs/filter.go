// Package fs provides the source filter and snapshot adapters.
package fs

import (
	"regexp"

	"go.smelt.dev/smelt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Filter decides which root-relative paths belong in a build snapshot.
// A path is included iff it matches none of the exclusion rules.
type Filter struct {
	rules []*regexp.Regexp
}

// NewFilter compiles the exclusion rules into a Filter. Rules use full-match
// semantics: each pattern is anchored to the entire relative path, not
// searched as a substring. A pattern that fails to compile is a fatal
// configuration error, reported before any filtering begins.
func NewFilter(rules []string) (*Filter, error) {
	compiled := make([]*regexp.Regexp, 0, len(rules))
	for _, rule := range rules {
		re, err := regexp.Compile(`\A(?:` + rule + `)\z`)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrBadExclusionRule.Error()), "rule", rule)
		}
		compiled = append(compiled, re)
	}
	return &Filter{rules: compiled}, nil
}

// Include reports whether the root-relative slash path survives every rule.
// A rule excludes a path when it fully matches the path itself or any of its
// ancestor directories; ancestors are tested both bare and with a trailing
// slash so that patterns written either way ("^target$", "^target/") prune
// the whole subtree. This makes pruning an excluded directory equivalent to
// filtering every descendant individually.
func (f *Filter) Include(relPath string) bool {
	for _, re := range f.rules {
		if excludes(re, relPath) {
			return false
		}
	}
	return true
}

func excludes(re *regexp.Regexp, relPath string) bool {
	if re.MatchString(relPath) || re.MatchString(relPath+"/") {
		return true
	}
	for i, c := range relPath {
		if c != '/' {
			continue
		}
		if re.MatchString(relPath[:i]) || re.MatchString(relPath[:i+1]) {
			return true
		}
	}
	return false
}
