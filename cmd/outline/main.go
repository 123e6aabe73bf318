// Command outline reconstructs the heading structure of documents recorded
// as JSON lines event streams.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tsawler/outline/internal/cli"
)

// Version information, set at build time
var Version = "dev"

func main() {
	if err := cli.NewRootCommand(Version).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
