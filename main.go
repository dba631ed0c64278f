package main

import "github.com/zecure/mcp-swagger/cmd"

func main() {
	cmd.Execute()
}
