// Package nsfilter decides which namespaces an indexing run cares about.
// It is a pure predicate over glob patterns; the traversal owns no filter
// state and asks two questions: is this namespace in scope at all, and
// should entities reached in it be traversed transitively.
package nsfilter

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Config holds the pattern lists, typically loaded from the YAML config.
type Config struct {
	// Include patterns select in-scope namespaces. Empty means everything
	// is in scope (subject to Exclude).
	Include []string `yaml:"include"`

	// Exclude patterns reject namespaces even when included.
	Exclude []string `yaml:"exclude"`

	// Follow patterns select namespaces whose entities are traversed
	// transitively even though they come from foreign modules.
	Follow []string `yaml:"follow"`
}

// Filter is an immutable compiled namespace filter.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
	follow  []glob.Glob
}

// New compiles the configured patterns. The '.' namespace separator is the
// glob separator, so "App.*" matches one namespace level and "App.**"
// matches any depth.
func New(cfg Config) (*Filter, error) {
	f := &Filter{}
	var err error
	if f.include, err = compile(cfg.Include); err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if f.exclude, err = compile(cfg.Exclude); err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if f.follow, err = compile(cfg.Follow); err != nil {
		return nil, fmt.Errorf("follow patterns: %w", err)
	}
	return f, nil
}

// InScope reports whether entities in the namespace should be indexed.
func (f *Filter) InScope(namespace string) bool {
	if matchAny(f.exclude, namespace) {
		return false
	}
	if len(f.include) == 0 {
		return true
	}
	return matchAny(f.include, namespace)
}

// Follow reports whether entities in the namespace should have their
// members collected transitively.
func (f *Filter) Follow(namespace string) bool {
	return matchAny(f.follow, namespace)
}

func compile(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
