package swagger

import (
	"regexp"
	"strings"
)

// FilterConfig selects which operations become tools. All fields are
// optional; zero value means "GET operations only, nothing excluded".
type FilterConfig struct {
	Methods             []string
	Paths               []string
	ExcludePaths        []string
	Tags                []string
	ExcludeTags         []string
	OperationIDs        []string
	ExcludeOperationIDs []string
}

// OperationFilter is the compiled inclusion/exclusion predicate over
// method, path, tags, and operation id.
type OperationFilter struct {
	methods         map[string]struct{}
	includePatterns []*regexp.Regexp
	excludePatterns []*regexp.Regexp
	tags            map[string]struct{}
	excludeTags     map[string]struct{}
	ids             map[string]struct{}
	excludeIDs      map[string]struct{}
}

// NewOperationFilter compiles cfg. Path patterns support the * wildcard and
// match against the full path string.
func NewOperationFilter(cfg FilterConfig) *OperationFilter {
	methods := cfg.Methods
	if len(methods) == 0 {
		methods = []string{"get"}
	}

	f := &OperationFilter{
		methods:     make(map[string]struct{}, len(methods)),
		tags:        stringSet(cfg.Tags),
		excludeTags: stringSet(cfg.ExcludeTags),
		ids:         stringSet(cfg.OperationIDs),
		excludeIDs:  stringSet(cfg.ExcludeOperationIDs),
	}
	for _, m := range methods {
		f.methods[strings.ToLower(m)] = struct{}{}
	}
	for _, p := range cfg.Paths {
		f.includePatterns = append(f.includePatterns, compilePattern(p))
	}
	for _, p := range cfg.ExcludePaths {
		f.excludePatterns = append(f.excludePatterns, compilePattern(p))
	}
	return f
}

// compilePattern converts a path pattern with * wildcards into an anchored
// regexp.
func compilePattern(pattern string) *regexp.Regexp {
	escaped := strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*")
	return regexp.MustCompile("^" + escaped + "$")
}

// ShouldInclude decides whether the operation at (path, method) becomes a
// tool. An operation id named in the include set is explicitly included: the
// method filter is bypassed and only the exclusion checks run. Exclusion
// always wins over inclusion at the same level.
func (f *OperationFilter) ShouldInclude(path, method string, op *Operation) bool {
	method = strings.ToLower(method)

	if _, ok := f.ids[op.ID]; ok {
		return f.passesExclusions(path, op)
	}

	if _, ok := f.excludeIDs[op.ID]; ok {
		return false
	}
	if len(f.ids) > 0 {
		if _, ok := f.ids[op.ID]; !ok {
			return false
		}
	}
	if _, ok := f.methods[method]; !ok {
		return false
	}
	if len(f.tags) > 0 && !intersects(op.Tags, f.tags) {
		return false
	}
	if intersects(op.Tags, f.excludeTags) {
		return false
	}
	if len(f.includePatterns) > 0 && !matchesAny(path, f.includePatterns) {
		return false
	}
	if matchesAny(path, f.excludePatterns) {
		return false
	}
	return true
}

func (f *OperationFilter) passesExclusions(path string, op *Operation) bool {
	if _, ok := f.excludeIDs[op.ID]; ok {
		return false
	}
	if matchesAny(path, f.excludePatterns) {
		return false
	}
	return !intersects(op.Tags, f.excludeTags)
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func intersects(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
