package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// MCPServerConfig is a single MCP server entry in a client configuration.
type MCPServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// MCPClientConfig is the client configuration file shape shared by Claude
// Desktop and Cursor.
type MCPClientConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
}

var (
	configureDryRun  bool
	configureClient  string
	configureBaseURL string
	configureToken   string
)

var configureCmd = &cobra.Command{
	Use:   "configure [spec-file] [server-name]",
	Short: "Generate MCP server configuration for LLM clients",
	Long: `Generate and optionally install MCP server configuration for various LLM
clients, pointing the client at this binary and spec file.

Supported clients:
- Claude Desktop (default)
- Cursor

The API token, when given, is carried in the server's environment block
rather than on the command line.`,
	Example: "  mcp-swagger configure ./swagger.json my-api\n" +
		"  mcp-swagger configure --dry-run ./swagger.yaml weather-api\n" +
		"  mcp-swagger configure --client=cursor --api-token $TOKEN ./swagger.json my-tools",
	Args: cobra.ExactArgs(2),
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().BoolVar(&configureDryRun, "dry-run", false, "print configuration without installing")
	configureCmd.Flags().StringVar(&configureClient, "client", "claude-desktop", "target LLM client (claude-desktop, cursor)")
	configureCmd.Flags().StringVar(&configureBaseURL, "base-url", "", "base URL to pass through to serve")
	configureCmd.Flags().StringVar(&configureToken, "api-token", "", "API token to place in the server's env block")
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	specFile := args[0]
	serverName := args[1]

	if _, err := os.Stat(specFile); os.IsNotExist(err) {
		return fmt.Errorf("spec file does not exist: %s", specFile)
	}

	absSpecFile, err := filepath.Abs(specFile)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for spec file: %w", err)
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	var configDir, configFile string
	switch strings.ToLower(configureClient) {
	case "claude-desktop":
		configDir = clientConfigDir("Claude", "claude")
		configFile = filepath.Join(configDir, "claude_desktop_config.json")
	case "cursor":
		configDir = clientConfigDir("Cursor", "cursor")
		configFile = filepath.Join(configDir, "mcp_config.json")
	default:
		return fmt.Errorf("unsupported client: %s", configureClient)
	}

	if err := installServerConfig(configDir, configFile, executable, absSpecFile, serverName); err != nil {
		return err
	}

	if !configureDryRun {
		fmt.Printf("Successfully configured MCP server '%s' for %s\n", serverName, configureClient)
		fmt.Println("Please restart the client for changes to take effect.")
	}

	return nil
}

// clientConfigDir resolves the per-OS configuration directory for a client,
// given its application-support name and its lower-case XDG name.
func clientConfigDir(appName, xdgName string) string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, _ := os.UserHomeDir()
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", xdgName)
	}
}

func buildServerConfig(executable, specFile string) MCPServerConfig {
	serveArgs := []string{"serve", specFile}
	if configureBaseURL != "" {
		serveArgs = append(serveArgs, "--base-url", configureBaseURL)
	}

	cfg := MCPServerConfig{
		Command: executable,
		Args:    serveArgs,
	}
	if configureToken != "" {
		cfg.Env = map[string]string{"API_TOKEN": configureToken}
	}
	return cfg
}

func installServerConfig(configDir, configFile, executable, specFile, serverName string) error {
	var config MCPClientConfig
	if data, err := os.ReadFile(configFile); err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse existing config: %w", err)
		}
	}
	if config.MCPServers == nil {
		config.MCPServers = make(map[string]MCPServerConfig)
	}

	config.MCPServers[serverName] = buildServerConfig(executable, specFile)

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if configureDryRun {
		fmt.Printf("%s\n", configJSON)
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configFile, configJSON, 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}
