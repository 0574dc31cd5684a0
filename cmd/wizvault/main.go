package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wizvault/wizvault/internal/cli"
	"github.com/wizvault/wizvault/internal/cli/client"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "wizvault",
		Short: "WizVault CLI - ask questions about your PDFs",
		Long: `WizVault CLI provides commands to upload PDFs and ask questions about them.

Environment variables:
  WIZVAULT_API_URL   API base URL (default: http://localhost:8080)`,
		Version: version,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.UploadCmd())
	rootCmd.AddCommand(client.AskCmd())
	rootCmd.AddCommand(client.ListCmd())
	rootCmd.AddCommand(client.ChunksCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
