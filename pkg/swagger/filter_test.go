package swagger

import "testing"

func TestOperationFilterShouldInclude(t *testing.T) {
	tests := []struct {
		name     string
		cfg      FilterConfig
		path     string
		method   string
		op       *Operation
		expected bool
	}{
		{
			name:     "default includes get",
			path:     "/users",
			method:   "get",
			op:       &Operation{},
			expected: true,
		},
		{
			name:     "default rejects post",
			path:     "/users",
			method:   "post",
			op:       &Operation{},
			expected: false,
		},
		{
			name:     "method filter is case insensitive",
			cfg:      FilterConfig{Methods: []string{"POST"}},
			path:     "/users",
			method:   "POST",
			op:       &Operation{},
			expected: true,
		},
		{
			name:     "explicit operation id bypasses method filter",
			cfg:      FilterConfig{OperationIDs: []string{"createUser"}},
			path:     "/users",
			method:   "post",
			op:       &Operation{ID: "createUser"},
			expected: true,
		},
		{
			name:     "id in both include and exclude is excluded",
			cfg:      FilterConfig{OperationIDs: []string{"createUser"}, ExcludeOperationIDs: []string{"createUser"}},
			path:     "/users",
			method:   "post",
			op:       &Operation{ID: "createUser"},
			expected: false,
		},
		{
			name:     "explicitly included id still subject to path exclusion",
			cfg:      FilterConfig{OperationIDs: []string{"adminReset"}, ExcludePaths: []string{"/admin/*"}},
			path:     "/admin/reset",
			method:   "post",
			op:       &Operation{ID: "adminReset"},
			expected: false,
		},
		{
			name:     "include ids restrict everything else",
			cfg:      FilterConfig{OperationIDs: []string{"listUsers"}},
			path:     "/pets",
			method:   "get",
			op:       &Operation{ID: "listPets"},
			expected: false,
		},
		{
			name:     "path wildcard include",
			cfg:      FilterConfig{Paths: []string{"/users/*"}},
			path:     "/users/123",
			method:   "get",
			op:       &Operation{},
			expected: true,
		},
		{
			name:     "path include does not match prefix only",
			cfg:      FilterConfig{Paths: []string{"/users"}},
			path:     "/users/123",
			method:   "get",
			op:       &Operation{},
			expected: false,
		},
		{
			name:     "path exclusion wins over inclusion",
			cfg:      FilterConfig{Paths: []string{"/users/*"}, ExcludePaths: []string{"/users/internal/*"}},
			path:     "/users/internal/sync",
			method:   "get",
			op:       &Operation{},
			expected: false,
		},
		{
			name:     "tag include",
			cfg:      FilterConfig{Tags: []string{"public"}},
			path:     "/users",
			method:   "get",
			op:       &Operation{Tags: []string{"public", "users"}},
			expected: true,
		},
		{
			name:     "tag include rejects untagged",
			cfg:      FilterConfig{Tags: []string{"public"}},
			path:     "/users",
			method:   "get",
			op:       &Operation{Tags: []string{"internal"}},
			expected: false,
		},
		{
			name:     "tag exclusion wins",
			cfg:      FilterConfig{Tags: []string{"public"}, ExcludeTags: []string{"deprecated"}},
			path:     "/users",
			method:   "get",
			op:       &Operation{Tags: []string{"public", "deprecated"}},
			expected: false,
		},
		{
			name:     "explicitly included id still subject to tag exclusion",
			cfg:      FilterConfig{OperationIDs: []string{"listUsers"}, ExcludeTags: []string{"internal"}},
			path:     "/users",
			method:   "get",
			op:       &Operation{ID: "listUsers", Tags: []string{"internal"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewOperationFilter(tt.cfg)
			if got := f.ShouldInclude(tt.path, tt.method, tt.op); got != tt.expected {
				t.Errorf("ShouldInclude(%q, %q) = %v, expected %v", tt.path, tt.method, got, tt.expected)
			}
		})
	}
}

func TestCompilePattern(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		matches bool
	}{
		{"/users/*", "/users/123", true},
		{"/users/*", "/users/", true},
		{"/users/*", "/users", false},
		{"/a.b", "/axb", false},
		{"*", "/anything", true},
		{"/exact", "/exact", true},
	}

	for _, tt := range tests {
		re := compilePattern(tt.pattern)
		if got := re.MatchString(tt.input); got != tt.matches {
			t.Errorf("compilePattern(%q).MatchString(%q) = %v, expected %v", tt.pattern, tt.input, got, tt.matches)
		}
	}
}
