package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	swagger_mcp "github.com/zecure/mcp-swagger/pkg/mcp"
	"github.com/zecure/mcp-swagger/pkg/swagger"
)

// compileFlags is the shared flag surface of every command that compiles a
// spec into tools.
type compileFlags struct {
	baseURL             string
	apiToken            string
	methods             []string
	paths               []string
	excludePaths        []string
	tags                []string
	excludeTags         []string
	operationIDs        []string
	excludeOperationIDs []string
	timeout             time.Duration
	headers             []string
}

func addCompileFlags(cmd *cobra.Command, f *compileFlags) {
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "base URL for the API (overrides spec; env API_BASE_URL)")
	cmd.Flags().StringVar(&f.apiToken, "api-token", "", "API token for authentication (env API_TOKEN)")
	cmd.Flags().StringSliceVar(&f.methods, "methods", nil, "HTTP methods to expose (default: get)")
	cmd.Flags().StringSliceVar(&f.paths, "paths", nil, "path patterns to include (supports wildcards with *)")
	cmd.Flags().StringSliceVar(&f.excludePaths, "exclude-paths", nil, "path patterns to exclude (supports wildcards with *)")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "Swagger tags to include")
	cmd.Flags().StringSliceVar(&f.excludeTags, "exclude-tags", nil, "Swagger tags to exclude")
	cmd.Flags().StringSliceVar(&f.operationIDs, "operation-ids", nil, "specific operation IDs to include")
	cmd.Flags().StringSliceVar(&f.excludeOperationIDs, "exclude-operation-ids", nil, "specific operation IDs to exclude")
	cmd.Flags().DurationVar(&f.timeout, "timeout", swagger_mcp.DefaultTimeout, "timeout for HTTP requests")
	cmd.Flags().StringArrayVar(&f.headers, "headers", nil, "extra headers to inject on requests in the form of key=value")
}

func (f *compileFlags) compilerConfig() (swagger_mcp.Config, error) {
	token := f.apiToken
	if token == "" {
		token = os.Getenv("API_TOKEN")
	}
	baseURL := f.baseURL
	if baseURL == "" {
		baseURL = os.Getenv("API_BASE_URL")
	}

	headers, err := parseHeaders(f.headers)
	if err != nil {
		return swagger_mcp.Config{}, err
	}

	return swagger_mcp.Config{
		BaseURL: baseURL,
		Token:   token,
		Timeout: f.timeout,
		Filter: swagger.FilterConfig{
			Methods:             f.methods,
			Paths:               f.paths,
			ExcludePaths:        f.excludePaths,
			Tags:                f.tags,
			ExcludeTags:         f.excludeTags,
			OperationIDs:        f.operationIDs,
			ExcludeOperationIDs: f.excludeOperationIDs,
		},
		ExtraHeaders: headers,
	}, nil
}

func parseHeaders(headerStrings []string) (http.Header, error) {
	headers := make(http.Header)
	for _, h := range headerStrings {
		parts := strings.SplitN(h, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header format: %s (expected 'key=value')", h)
		}
		headers.Add(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	return headers, nil
}

// compileFromSource loads, types, and compiles a spec in one step.
func compileFromSource(source string, f *compileFlags) ([]*swagger_mcp.Tool, *swagger.Document, error) {
	doc, err := swagger.LoadDocumentFromSource(source)
	if err != nil {
		return nil, nil, err
	}

	spec, err := swagger.Load(doc)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := f.compilerConfig()
	if err != nil {
		return nil, nil, err
	}

	tools, err := swagger_mcp.NewCompiler(spec, cfg).Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tools from spec: %w", err)
	}

	return tools, spec, nil
}

func verifySpecSource(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}

	source := args[0]

	// Only validate file existence if it's not a URL.
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		if _, err := os.Stat(source); os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", source)
		}
	}

	return nil
}
