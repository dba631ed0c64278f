package cmd

import (
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "mcp-swagger",
	Short: "Generate an MCP server from a Swagger/OpenAPI 2.0 specification",
	Long: `mcp-swagger compiles a Swagger/OpenAPI 2.0 specification into a set of
MCP tools, one per API operation, and serves them over stdio or HTTP.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Logs go to stderr so the stdio transport stays clean.
		log.DefaultLogger = log.Logger{
			Level:  log.ParseLevel(logLevel),
			Writer: &log.IOWriter{Writer: os.Stderr},
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}
