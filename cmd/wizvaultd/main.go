package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wizvault/wizvault/internal/cli"
	"github.com/wizvault/wizvault/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wizvaultd",
		Short: "WizVault daemon",
		Long:  "WizVault daemon for running the PDF question-answering API server",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
