package mcp

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/phuslu/log"
	"github.com/zecure/mcp-swagger/pkg/swagger"
)

// Config carries everything the compiler needs beyond the document itself.
type Config struct {
	// BaseURL overrides the document-derived base URL when non-empty.
	BaseURL string
	// Token is the caller-supplied API token; empty disables auth headers.
	Token string
	// Timeout bounds each tool invocation's single HTTP attempt.
	Timeout time.Duration
	// Filter selects which operations become tools.
	Filter swagger.FilterConfig
	// ExtraHeaders are attached to every request, below security headers.
	ExtraHeaders http.Header
}

// Compiler turns a loaded document into the immutable tool set. Compilation
// runs once at startup; the resulting tools are safe to share across
// concurrent invokers.
type Compiler struct {
	doc      *swagger.Document
	cfg      Config
	filter   *swagger.OperationFilter
	security *swagger.SecurityResolver
	executor *Executor
}

// NewCompiler wires the filter, security resolver, and executor for doc.
func NewCompiler(doc *swagger.Document, cfg Config) *Compiler {
	return &Compiler{
		doc:      doc,
		cfg:      cfg,
		filter:   swagger.NewOperationFilter(cfg.Filter),
		security: swagger.NewSecurityResolver(cfg.Token, doc),
		executor: NewExecutor(cfg.Timeout),
	}
}

// Compile walks every path/method pair that passes the filter and builds a
// tool for it. A defective single operation is skipped with a warning rather
// than aborting the document.
func (c *Compiler) Compile() ([]*Tool, error) {
	baseURL := c.cfg.BaseURL
	if baseURL == "" {
		baseURL = c.doc.BaseURL()
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	basePath := strings.TrimSuffix(c.doc.BasePath, "/")

	paths := make([]string, 0, len(c.doc.Paths))
	for path := range c.doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var tools []*Tool
	for _, path := range paths {
		item := c.doc.Paths[path]
		for _, method := range swagger.Methods {
			op, ok := item.Operations[method]
			if !ok {
				continue
			}
			if !c.filter.ShouldInclude(path, method, op) {
				continue
			}
			tool, err := c.compileOperation(path, method, op, item.Parameters, baseURL, basePath)
			if err != nil {
				log.Warn().Err(err).Str("method", method).Str("path", path).
					Msg("skipping operation")
				continue
			}
			tools = append(tools, tool)
		}
	}

	log.Info().Int("tools", len(tools)).Str("title", c.doc.Info.Title).
		Msg("compiled tools from spec")
	return tools, nil
}

func (c *Compiler) compileOperation(path, method string, op *swagger.Operation, pathLevel []swagger.Parameter, baseURL, basePath string) (*Tool, error) {
	merged := swagger.Merge(op, pathLevel)

	inputSchema := swagger.BuildInputSchema(merged.All, merged.Body)
	var resolved *jsonschema.Resolved
	if inputSchema != nil {
		r, err := inputSchema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve input schema: %w", err)
		}
		resolved = r
	}

	securityHeaders := c.security.Headers(op)

	headers := make(map[string]string, len(securityHeaders)+len(c.cfg.ExtraHeaders)+1)
	for k := range c.cfg.ExtraHeaders {
		headers[k] = c.cfg.ExtraHeaders.Get(k)
	}
	for k, v := range securityHeaders {
		headers[k] = v
	}
	// Fixed content type; security headers never override it.
	headers["Content-Type"] = "application/json"

	return &Tool{
		Name:            toolName(method, path, op.ID),
		Description:     swagger.Describe(op, method, path, merged.All),
		Method:          method,
		Path:            path,
		Parameters:      merged.All,
		PathParams:      merged.Path,
		QueryParams:     merged.Query,
		BodySchema:      merged.Body,
		SecurityHeaders: securityHeaders,
		InputSchema:     inputSchema,
		resolved:        resolved,
		executor:        c.executor,
		baseURL:         baseURL,
		basePath:        basePath,
		headers:         headers,
	}, nil
}

// toolName prefers the operation id and falls back to a name derived from
// the method and cleaned path.
func toolName(method, path, operationID string) string {
	if operationID != "" {
		return operationID
	}

	cleanPath := strings.ReplaceAll(path, "/", "_")
	cleanPath = strings.ReplaceAll(cleanPath, "{", "")
	cleanPath = strings.ReplaceAll(cleanPath, "}", "")
	cleanPath = strings.Trim(cleanPath, "_")

	if cleanPath == "" {
		return method
	}

	return fmt.Sprintf("%s_%s", method, cleanPath)
}
