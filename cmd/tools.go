package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var toolsFlags compileFlags

var toolsCmd = &cobra.Command{
	Use:   "tools [spec-path-or-url]",
	Short: "List tools generated from a spec without starting a server",
	Args:  verifySpecSource,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, spec, err := compileFromSource(args[0], &toolsFlags)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Name", "Method", "Path", "Description"})
		for i, tool := range tools {
			t.AppendRow(table.Row{
				i + 1,
				tool.Name,
				strings.ToUpper(tool.Method),
				tool.Path,
				firstLine(tool.Description),
			})
			t.AppendSeparator()
		}
		t.Render()

		fmt.Printf("Generated %d tools from %s\n", len(tools), spec.Info.Title)
		return nil
	},
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	addCompileFlags(toolsCmd, &toolsFlags)
	rootCmd.AddCommand(toolsCmd)
}
