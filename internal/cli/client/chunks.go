package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// ChunksAPIResponse mirrors the server's chunks payload.
type ChunksAPIResponse struct {
	Chunks []string `json:"chunks"`
}

// ChunksCmd creates the chunks command.
func ChunksCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "chunks <file.pdf>",
		Short: "Show the stored chunks of an indexed PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runChunks(cmd, project, args[0], outputJSON)
		},
	}

	cmd.Flags().StringVar(&project, "project", "default", "Project namespace to query")

	return cmd
}

func runChunks(cmd *cobra.Command, project, pdfName string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("project_name", project)
	params.Set("pdf_name", pdfName)

	resp, err := api.Get("/pdf/chunks?" + params.Encode())
	if err != nil {
		return fmt.Errorf("chunks failed: %w", err)
	}

	var chunksResp ChunksAPIResponse
	if err := json.Unmarshal(resp.Data, &chunksResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(chunksResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(chunksResp.Chunks) == 0 {
		fmt.Printf("No chunks stored for %s.\n", pdfName)
		return nil
	}
	for i, chunk := range chunksResp.Chunks {
		if i > 0 {
			fmt.Println(strings.Repeat("-", 40))
		}
		fmt.Printf("[%d] %s\n", i, chunk)
	}
	return nil
}
