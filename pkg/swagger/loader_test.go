package swagger

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/users": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "limit"},
					},
				},
			},
		},
	}

	spec, err := Load(doc)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if spec.Swagger != "2.0" {
		t.Errorf("Swagger = %q, expected default \"2.0\"", spec.Swagger)
	}
	if spec.Info.Title != "API" {
		t.Errorf("Info.Title = %q, expected default \"API\"", spec.Info.Title)
	}

	op := spec.Paths["/users"].Operations["get"]
	if op == nil {
		t.Fatal("expected get operation")
	}
	if len(op.Parameters) != 1 {
		t.Fatalf("expected 1 parameter, got %d", len(op.Parameters))
	}

	p := op.Parameters[0]
	if p.Type != "string" {
		t.Errorf("Type = %q, expected default \"string\"", p.Type)
	}
	if p.In != "query" {
		t.Errorf("In = %q, expected default \"query\"", p.In)
	}
	if p.Required {
		t.Error("Required should default to false")
	}
	if p.Description != "Parameter limit" {
		t.Errorf("Description = %q, expected synthesized description", p.Description)
	}
}

func TestLoadMissingParameterName(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/users": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"in": "query"},
					},
				},
			},
		},
	}

	_, err := Load(doc)
	if err == nil {
		t.Fatal("expected error for parameter without name")
	}
	var malformed *MalformedSpecError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedSpecError, got %T", err)
	}
}

func TestLoadSecurityPolicy(t *testing.T) {
	tests := []struct {
		name          string
		operation     map[string]any
		wantInherited bool
		wantCount     int
	}{
		{
			name:          "absent security inherits",
			operation:     map[string]any{},
			wantInherited: true,
		},
		{
			name:          "explicit empty list means no auth",
			operation:     map[string]any{"security": []any{}},
			wantInherited: false,
			wantCount:     0,
		},
		{
			name: "explicit list",
			operation: map[string]any{
				"security": []any{
					map[string]any{"api_key": []any{}},
				},
			},
			wantInherited: false,
			wantCount:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{
				"paths": map[string]any{
					"/x": map[string]any{"get": tt.operation},
				},
			}
			spec, err := Load(doc)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			policy := spec.Paths["/x"].Operations["get"].Security
			if policy.Inherited() != tt.wantInherited {
				t.Errorf("Inherited() = %v, expected %v", policy.Inherited(), tt.wantInherited)
			}
			if !tt.wantInherited && len(policy.Requirements) != tt.wantCount {
				t.Errorf("len(Requirements) = %d, expected %d", len(policy.Requirements), tt.wantCount)
			}
		})
	}
}

func TestLoadArrayItemsType(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/x": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "ids", "type": "array", "items": map[string]any{"type": "integer"}},
						map[string]any{"name": "names", "type": "array"},
						map[string]any{"name": "q", "type": "string"},
					},
				},
			},
		},
	}

	spec, err := Load(doc)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	params := spec.Paths["/x"].Operations["get"].Parameters

	if params[0].ItemsType != "integer" {
		t.Errorf("ItemsType = %q, expected \"integer\"", params[0].ItemsType)
	}
	if params[1].ItemsType != "string" {
		t.Errorf("ItemsType = %q, expected default \"string\"", params[1].ItemsType)
	}
	if params[2].ItemsType != "" {
		t.Errorf("ItemsType = %q, expected empty for non-array", params[2].ItemsType)
	}
}

func TestLoadConstraints(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/x": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{
							"name":    "count",
							"type":    "integer",
							"minimum": float64(1),
							"maximum": float64(100),
							"default": float64(10),
							"enum":    []any{float64(10), float64(20)},
							"pattern": "^[0-9]+$",
						},
					},
				},
			},
		},
	}

	spec, err := Load(doc)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	p := spec.Paths["/x"].Operations["get"].Parameters[0]

	if p.Minimum == nil || *p.Minimum != 1 {
		t.Errorf("Minimum = %v, expected 1", p.Minimum)
	}
	if p.Maximum == nil || *p.Maximum != 100 {
		t.Errorf("Maximum = %v, expected 100", p.Maximum)
	}
	if p.Default != float64(10) {
		t.Errorf("Default = %v, expected 10", p.Default)
	}
	if len(p.Enum) != 2 {
		t.Errorf("len(Enum) = %d, expected 2", len(p.Enum))
	}
	if p.Pattern != "^[0-9]+$" {
		t.Errorf("Pattern = %q", p.Pattern)
	}
}

func TestLoadSkipsNonMappingOperation(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/x": map[string]any{
				"get":  "not a mapping",
				"post": map[string]any{"operationId": "createX"},
			},
		},
	}

	spec, err := Load(doc)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ops := spec.Paths["/x"].Operations
	if _, ok := ops["get"]; ok {
		t.Error("expected non-mapping get operation to be skipped")
	}
	if _, ok := ops["post"]; !ok {
		t.Error("expected post operation to survive")
	}
}

func TestLoadSecurityDefinitions(t *testing.T) {
	doc := map[string]any{
		"securityDefinitions": map[string]any{
			"api_key": map[string]any{"type": "apiKey", "name": "X-API-Key", "in": "header"},
			"oauth":   map[string]any{"type": "oauth2", "flow": "implicit"},
		},
		"paths": map[string]any{},
	}

	spec, err := Load(doc)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	def, ok := spec.SecurityDefinitions["api_key"]
	if !ok {
		t.Fatal("expected api_key definition")
	}
	if def.Type != "apiKey" || def.Name != "X-API-Key" || def.In != "header" {
		t.Errorf("unexpected definition: %+v", def)
	}
	if spec.SecurityDefinitions["oauth"].Flow != "implicit" {
		t.Errorf("unexpected oauth definition: %+v", spec.SecurityDefinitions["oauth"])
	}
}

func TestDocumentBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		doc      map[string]any
		expected string
	}{
		{
			name:     "scheme and host",
			doc:      map[string]any{"host": "api.example.com", "schemes": []any{"https"}},
			expected: "https://api.example.com",
		},
		{
			name:     "host without schemes defaults to http",
			doc:      map[string]any{"host": "api.example.com"},
			expected: "http://api.example.com",
		},
		{
			name:     "no host falls back to localhost",
			doc:      map[string]any{},
			expected: "http://localhost:8000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Load(tt.doc)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got := spec.BaseURL(); got != tt.expected {
				t.Errorf("BaseURL() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
