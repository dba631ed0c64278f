package swagger

import (
	"fmt"

	"github.com/phuslu/log"
)

// MalformedSpecError reports a structurally unusable spec. It is the only
// way input defects become fatal; everything else is defaulted.
type MalformedSpecError struct {
	Section string
	Reason  string
}

func (e *MalformedSpecError) Error() string {
	return fmt.Sprintf("malformed spec at %s: %s", e.Section, e.Reason)
}

// Load converts an already-parsed document tree into the typed Document
// graph. All default rules live here: type defaults to "string", location to
// "query", descriptions are synthesized, required defaults to false, and the
// version tag to "2.0". A parameter without a name is fatal. An operation
// whose value is not a mapping is skipped with a warning rather than
// aborting the whole document.
func Load(doc map[string]any) (*Document, error) {
	d := &Document{
		Swagger:             stringOr(doc, "swagger", "2.0"),
		Host:                getString(doc, "host"),
		BasePath:            getString(doc, "basePath"),
		Schemes:             getStringSlice(doc, "schemes"),
		Consumes:            getStringSlice(doc, "consumes"),
		Produces:            getStringSlice(doc, "produces"),
		Paths:               make(map[string]*PathItem),
		Definitions:         getMap(doc, "definitions"),
		SecurityDefinitions: make(map[string]SecurityDefinition),
		Security:            parseSecurityPolicy(doc),
	}

	if info, ok := asMap(doc["info"]); ok {
		d.Info = Info{
			Title:       stringOr(info, "title", "API"),
			Version:     stringOr(info, "version", "1.0.0"),
			Description: getString(info, "description"),
		}
	} else {
		d.Info = Info{Title: "API", Version: "1.0.0"}
	}

	if defs, ok := asMap(doc["securityDefinitions"]); ok {
		for name, raw := range defs {
			def, ok := asMap(raw)
			if !ok {
				continue
			}
			d.SecurityDefinitions[name] = SecurityDefinition{
				Type:             getString(def, "type"),
				Name:             getString(def, "name"),
				In:               getString(def, "in"),
				Flow:             getString(def, "flow"),
				AuthorizationURL: getString(def, "authorizationUrl"),
				TokenURL:         getString(def, "tokenUrl"),
				Scopes:           getStringMap(def, "scopes"),
			}
		}
	}

	paths, _ := asMap(doc["paths"])
	for path, rawItem := range paths {
		item, err := parsePathItem(rawItem, path)
		if err != nil {
			return nil, err
		}
		if item != nil {
			d.Paths[path] = item
		}
	}

	return d, nil
}

func parsePathItem(raw any, path string) (*PathItem, error) {
	m, ok := asMap(raw)
	if !ok {
		log.Warn().Str("path", path).Msg("skipping path item: not a mapping")
		return nil, nil
	}

	item := &PathItem{Operations: make(map[string]*Operation)}

	params, err := parseParameters(m, fmt.Sprintf("path %s", path))
	if err != nil {
		return nil, err
	}
	item.Parameters = params

	for _, method := range Methods {
		rawOp, ok := m[method]
		if !ok {
			continue
		}
		opMap, ok := asMap(rawOp)
		if !ok {
			log.Warn().Str("path", path).Str("method", method).
				Msg("skipping operation: not a mapping")
			continue
		}
		op, err := parseOperation(opMap, fmt.Sprintf("operation %s %s", method, path))
		if err != nil {
			return nil, err
		}
		item.Operations[method] = op
	}

	return item, nil
}

func parseOperation(m map[string]any, section string) (*Operation, error) {
	params, err := parseParameters(m, section)
	if err != nil {
		return nil, err
	}

	op := &Operation{
		ID:          getString(m, "operationId"),
		Summary:     getString(m, "summary"),
		Description: getString(m, "description"),
		Parameters:  params,
		Responses:   make(map[string]Response),
		Tags:        getStringSlice(m, "tags"),
		Security:    parseSecurityPolicy(m),
		Deprecated:  getBool(m, "deprecated"),
	}

	if responses, ok := asMap(m["responses"]); ok {
		for code, rawResp := range responses {
			resp, ok := asMap(rawResp)
			if !ok {
				continue
			}
			op.Responses[code] = Response{
				Description: getString(resp, "description"),
				Schema:      getMap(resp, "schema"),
			}
		}
	}

	return op, nil
}

func parseParameters(m map[string]any, section string) ([]Parameter, error) {
	raw, ok := m["parameters"].([]any)
	if !ok {
		return nil, nil
	}

	params := make([]Parameter, 0, len(raw))
	for i, entry := range raw {
		pm, ok := asMap(entry)
		if !ok {
			return nil, &MalformedSpecError{
				Section: fmt.Sprintf("%s, parameter %d", section, i),
				Reason:  "parameter is not a mapping",
			}
		}
		p, err := parseParameter(pm, fmt.Sprintf("%s, parameter %d", section, i))
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func parseParameter(m map[string]any, section string) (Parameter, error) {
	name := getString(m, "name")
	if name == "" {
		return Parameter{}, &MalformedSpecError{Section: section, Reason: `missing required field "name"`}
	}

	p := Parameter{
		Name:        name,
		In:          stringOr(m, "in", "query"),
		Type:        stringOr(m, "type", "string"),
		Required:    getBool(m, "required"),
		Description: stringOr(m, "description", fmt.Sprintf("Parameter %s", name)),
		Enum:        getSlice(m, "enum"),
		Default:     m["default"],
		Minimum:     getFloatPtr(m, "minimum"),
		Maximum:     getFloatPtr(m, "maximum"),
		Pattern:     getString(m, "pattern"),
	}

	if p.In == "body" {
		p.Schema = getMap(m, "schema")
	}

	if p.Type == "array" {
		p.ItemsType = "string"
		if items, ok := asMap(m["items"]); ok {
			p.ItemsType = stringOr(items, "type", "string")
		}
	}

	return p, nil
}

func parseSecurityPolicy(m map[string]any) SecurityPolicy {
	raw, ok := m["security"]
	if !ok {
		return SecurityPolicy{}
	}

	policy := SecurityPolicy{Explicit: true}
	list, ok := raw.([]any)
	if !ok {
		return policy
	}
	for _, entry := range list {
		reqMap, ok := asMap(entry)
		if !ok {
			continue
		}
		req := make(SecurityRequirement, len(reqMap))
		for scheme, rawScopes := range reqMap {
			var scopes []string
			if ss, ok := rawScopes.([]any); ok {
				for _, s := range ss {
					if str, ok := s.(string); ok {
						scopes = append(scopes, str)
					}
				}
			}
			req[scheme] = scopes
		}
		policy.Requirements = append(policy.Requirements, req)
	}
	return policy
}

// Permissive accessors over the untyped tree.

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func getMap(m map[string]any, key string) map[string]any {
	v, _ := asMap(m[key])
	return v
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func stringOr(m map[string]any, key, fallback string) string {
	if s := getString(m, key); s != "" {
		return s
	}
	return fallback
}

func getBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func getSlice(m map[string]any, key string) []any {
	s, _ := m[key].([]any)
	return s
}

func getStringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getStringMap(m map[string]any, key string) map[string]string {
	raw, ok := asMap(m[key])
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

func getFloatPtr(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
