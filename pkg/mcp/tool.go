// Package mcp compiles a Swagger document into executable MCP tools and
// binds them to a model context protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/zecure/mcp-swagger/pkg/swagger"
)

// MissingPathParameterError reports a required path token with no bound
// value. It is raised before any network call is attempted.
type MissingPathParameterError struct {
	Name     string
	Template string
}

func (e *MissingPathParameterError) Error() string {
	return fmt.Sprintf("required path parameter %q is missing (path template: %s)", e.Name, e.Template)
}

// ValidationError reports arguments that fail a tool's input contract.
type ValidationError struct {
	Tool string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %s: %v", e.Tool, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Tool is one compiled, invocable operation. It is created once at compile
// time, is immutable, and may be invoked concurrently.
type Tool struct {
	Name        string
	Description string
	Method      string
	Path        string

	Parameters      []swagger.Parameter
	PathParams      map[string]swagger.Parameter
	QueryParams     map[string]swagger.Parameter
	BodySchema      map[string]any
	SecurityHeaders map[string]string

	// InputSchema is the validation contract; nil for tools that accept no
	// arguments.
	InputSchema *jsonschema.Schema

	resolved *jsonschema.Resolved
	executor *Executor
	baseURL  string
	basePath string
	headers  map[string]string
}

// DisplayName renders the tool for listings.
func (t *Tool) DisplayName() string {
	return fmt.Sprintf("%s %s -> %s", strings.ToUpper(t.Method), t.Path, t.Name)
}

// Invoke validates args against the tool's contract, assembles the request,
// executes it, and returns the normalized result mapping. Validation and
// missing-path-parameter failures surface as errors before any network
// call; transport and HTTP failures come back inside the result mapping.
func (t *Tool) Invoke(ctx context.Context, args map[string]any) (map[string]any, error) {
	args = t.applyDefaults(args)

	if t.resolved != nil {
		if err := t.resolved.Validate(args); err != nil {
			return nil, &ValidationError{Tool: t.Name, Err: err}
		}
	}

	args = dropNulls(args)

	target, err := t.buildURL(args)
	if err != nil {
		return nil, err
	}

	result := t.executor.Execute(ctx, t.Method, target, t.queryValues(args), t.requestBody(args), t.headers)
	return normalizeResult(result), nil
}

// applyDefaults returns a copy of args with contract defaults filled in for
// absent fields. The caller's map is never mutated.
func (t *Tool) applyDefaults(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	if t.InputSchema == nil {
		return out
	}
	for name, prop := range t.InputSchema.Properties {
		if _, ok := out[name]; ok || len(prop.Default) == 0 {
			continue
		}
		var v any
		if err := json.Unmarshal(prop.Default, &v); err == nil && v != nil {
			out[name] = v
		}
	}
	return out
}

// dropNulls removes explicit null arguments after validation so they never
// reach the URL, the query string, or the implicit body fold.
func dropNulls(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

func (t *Tool) buildURL(args map[string]any) (string, error) {
	path := t.Path
	for name, p := range t.PathParams {
		if v, ok := args[name]; ok {
			path = strings.ReplaceAll(path, "{"+name+"}", formatValue(v))
		} else if p.Required {
			return "", &MissingPathParameterError{Name: name, Template: t.Path}
		}
	}

	full := strings.TrimSuffix(t.baseURL, "/") + t.basePath + "/" + strings.TrimPrefix(path, "/")
	if _, err := url.Parse(full); err != nil {
		return "", fmt.Errorf("failed to build URL for %s: %w", t.Name, err)
	}
	return full, nil
}

func (t *Tool) queryValues(args map[string]any) url.Values {
	query := url.Values{}
	for name := range t.QueryParams {
		v, ok := args[name]
		if !ok {
			continue
		}
		if list, ok := v.([]any); ok {
			for _, item := range list {
				query.Add(name, formatValue(item))
			}
			continue
		}
		query.Set(name, formatValue(v))
	}
	return query
}

// requestBody derives the request body: an explicit "body" argument wins;
// otherwise, for methods that expect one, every argument not consumed as a
// path or query parameter is folded into an implicit body mapping.
func (t *Tool) requestBody(args map[string]any) any {
	if body, ok := args["body"]; ok {
		return body
	}

	switch t.Method {
	case "post", "put", "patch":
	default:
		return nil
	}

	body := make(map[string]any)
	for k, v := range args {
		if _, ok := t.PathParams[k]; ok {
			continue
		}
		if _, ok := t.QueryParams[k]; ok {
			continue
		}
		body[k] = v
	}
	if len(body) == 0 {
		return nil
	}
	return body
}

// normalizeResult guarantees a mapping shape regardless of what the
// executor produced.
func normalizeResult(result any) map[string]any {
	switch r := result.(type) {
	case nil:
		return map[string]any{"status": "success"}
	case map[string]any:
		return r
	default:
		return map[string]any{"data": result}
	}
}

// formatValue renders an argument for a URL. Whole floats print without an
// exponent so JSON numbers used as ids survive the trip.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
