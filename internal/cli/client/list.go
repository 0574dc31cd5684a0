package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

// ListAPIResponse mirrors the server's list payload.
type ListAPIResponse struct {
	PDFs []string `json:"pdfs"`
}

// ListCmd creates the list command.
func ListCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed PDFs in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runPDFList(cmd, project, outputJSON)
		},
	}

	cmd.Flags().StringVar(&project, "project", "default", "Project namespace to list")

	return cmd
}

func runPDFList(cmd *cobra.Command, project string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	resp, err := api.Get("/pdf/list?project_name=" + url.QueryEscape(project))
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	var listResp ListAPIResponse
	if err := json.Unmarshal(resp.Data, &listResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(listResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(listResp.PDFs) == 0 {
		fmt.Println("No PDFs indexed.")
		return nil
	}
	for _, name := range listResp.PDFs {
		fmt.Println(name)
	}
	return nil
}
