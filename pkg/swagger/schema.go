package swagger

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// typeMapping translates declared Swagger parameter types into JSON Schema
// types. Unrecognized declared types stay untyped and accept anything.
var typeMapping = map[string]string{
	"string":  "string",
	"integer": "integer",
	"number":  "number",
	"boolean": "boolean",
	"array":   "array",
	"object":  "object",
}

// BuildInputSchema builds the per-operation input-validation contract from
// the merged parameter list. Body-location parameters are excluded from the
// field-by-field contract and represented by a single opaque "body" field.
// Returns nil when there is nothing to declare; such a tool is invoked with
// no arguments.
func BuildInputSchema(params []Parameter, bodySchema map[string]any) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema)
	var required []string

	for _, p := range params {
		if p.In == "body" {
			continue
		}
		properties[p.Name] = parameterSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}

	if bodySchema != nil {
		properties["body"] = &jsonschema.Schema{
			Types:       []string{"object", "null"},
			Description: "Request body",
		}
	}

	if len(properties) == 0 {
		return nil
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

func parameterSchema(p Parameter) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Description: p.Description,
		Minimum:     p.Minimum,
		Maximum:     p.Maximum,
		Pattern:     p.Pattern,
	}

	// Optional fields also admit null; callers that serialize absent values
	// as explicit null still validate, and nulls are dropped before request
	// assembly.
	if t, ok := typeMapping[p.Type]; ok {
		if p.Required {
			s.Type = t
		} else {
			s.Types = []string{t, "null"}
		}
	}
	if len(p.Enum) > 0 {
		s.Enum = p.Enum
	}
	if p.Default != nil {
		if raw, err := json.Marshal(p.Default); err == nil {
			s.Default = json.RawMessage(raw)
		}
	}
	if p.Type == "array" {
		items := &jsonschema.Schema{}
		if t, ok := typeMapping[p.ItemsType]; ok {
			items.Type = t
		}
		s.Items = items
	}

	return s
}
