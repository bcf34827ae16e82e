package main

import (
	"context"
	"fmt"
	"os"

	"github.com/celestiaorg/vmbot/cmd/vmbot/commands"
)

func main() {
	if err := commands.RootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
