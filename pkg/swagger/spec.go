// Package swagger holds the typed in-memory model of a Swagger/OpenAPI 2.0
// document and the compilation-side logic that operates on it: loading with
// centralized defaults, parameter merging, security resolution, validation
// contract building, and operation filtering.
package swagger

import "fmt"

// Methods lists the HTTP methods a path item may carry, in the order
// operations are compiled.
var Methods = []string{"get", "post", "put", "patch", "delete", "head", "options"}

// Document is the root of a parsed Swagger 2.0 specification. It is
// immutable after Load and safe to share across goroutines.
type Document struct {
	Swagger             string
	Info                Info
	Host                string
	BasePath            string
	Schemes             []string
	Consumes            []string
	Produces            []string
	Paths               map[string]*PathItem
	Definitions         map[string]any
	SecurityDefinitions map[string]SecurityDefinition
	Security            SecurityPolicy
}

// Info carries the spec's descriptive metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// PathItem is one path string's shared parameter list plus up to one
// operation per HTTP method.
type PathItem struct {
	Parameters []Parameter
	Operations map[string]*Operation
}

// Operation is a single HTTP-method endpoint within a path.
type Operation struct {
	ID          string
	Summary     string
	Description string
	Parameters  []Parameter
	Responses   map[string]Response
	Tags        []string
	Security    SecurityPolicy
	Deprecated  bool
}

// Parameter is one declared input of an operation. Schema is set only for
// body-location parameters; ItemsType only for array types.
type Parameter struct {
	Name        string
	In          string
	Type        string
	Required    bool
	Description string
	Enum        []any
	Default     any
	Minimum     *float64
	Maximum     *float64
	Pattern     string
	ItemsType   string
	Schema      map[string]any
}

// Key identifies a parameter for merge purposes.
func (p Parameter) Key() ParameterKey {
	return ParameterKey{Name: p.Name, In: p.In}
}

// ParameterKey is the (name, location) pair that makes a parameter unique
// within a merged set.
type ParameterKey struct {
	Name string
	In   string
}

// Response describes one status code's response.
type Response struct {
	Description string
	Schema      map[string]any
}

// SecurityDefinition is the technical description of one named auth scheme.
// Only apiKey-in-header schemes ever contribute request headers.
type SecurityDefinition struct {
	Type             string
	Name             string
	In               string
	Flow             string
	AuthorizationURL string
	TokenURL         string
	Scopes           map[string]string
}

// SecurityRequirement names the scheme(s) a requirement object demands.
// Keys are scheme names, values are scope lists.
type SecurityRequirement map[string][]string

// SecurityPolicy is the tri-state security setting of a document or
// operation: absent (inherit), explicitly empty (no auth), or an explicit
// requirement list. The zero value means "inherit".
type SecurityPolicy struct {
	Explicit     bool
	Requirements []SecurityRequirement
}

// Inherited reports whether the security section was absent, meaning the
// enclosing scope's policy applies.
func (p SecurityPolicy) Inherited() bool { return !p.Explicit }

// BaseURL derives the API base URL from the document's scheme and host,
// falling back to http://localhost:8000 when the spec names no host. The
// base path is not included; the compiler joins it separately.
func (d *Document) BaseURL() string {
	if d.Host == "" {
		return "http://localhost:8000"
	}
	scheme := "http"
	if len(d.Schemes) > 0 {
		scheme = d.Schemes[0]
	}
	return fmt.Sprintf("%s://%s", scheme, d.Host)
}
