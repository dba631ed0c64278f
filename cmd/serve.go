package cmd

import (
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	swagger_mcp "github.com/zecure/mcp-swagger/pkg/mcp"
)

var (
	serveFlags        compileFlags
	serveServerName   string
	serveInstructions string
	serveTransport    string
	serveHost         string
	servePort         int
)

var serveCmd = &cobra.Command{
	Use:   "serve [spec-path-or-url]",
	Short: "Start MCP server from a Swagger 2.0 spec",
	Example: "  mcp-swagger serve ./swagger.json --api-token $TOKEN\n" +
		"  mcp-swagger serve https://api.example.com/swagger.json --methods get,post --paths \"/api/v1/*\"\n" +
		"  mcp-swagger serve ./swagger.yaml --transport http --port 8080",
	Args: verifySpecSource,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, spec, err := compileFromSource(args[0], &serveFlags)
		if err != nil {
			return err
		}
		if len(tools) == 0 {
			return fmt.Errorf("no tools were generated based on the filter criteria")
		}

		serverName := serveServerName
		serverTitle := serverName
		if spec.Info.Title != "" {
			serverTitle = spec.Info.Title
		}

		server := mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Title:   serverTitle,
			Version: spec.Info.Version,
		}, &mcp.ServerOptions{
			Instructions: serveInstructions,
		})

		swagger_mcp.AddTools(server, tools)

		switch serveTransport {
		case "stdio":
			// Run over stdin/stdout until the client disconnects.
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		case "http":
			handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
				return server
			}, nil)
			addr := fmt.Sprintf("%s:%d", serveHost, servePort)
			log.Info().Str("addr", addr).Str("server", serverName).
				Msg("starting streamable HTTP server")
			return http.ListenAndServe(addr, handler)
		default:
			return fmt.Errorf("unsupported transport: %s (expected stdio or http)", serveTransport)
		}
	},
}

func init() {
	addCompileFlags(serveCmd, &serveFlags)
	serveCmd.Flags().StringVar(&serveServerName, "server-name", "swagger_mcp", "name for the MCP server")
	serveCmd.Flags().StringVar(&serveInstructions, "instructions", "", "instructions text presented to MCP clients")
	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "transport protocol to use (stdio, http)")
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "host to bind the HTTP transport to")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to bind the HTTP transport to")
	rootCmd.AddCommand(serveCmd)
}
