package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/wizvault/wizvault/internal/domain"
)

// UploadAPIResponse mirrors the server's upload payload.
type UploadAPIResponse struct {
	Results []domain.IndexResult `json:"results"`
}

// UploadCmd creates the upload command.
func UploadCmd() *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "upload <file.pdf> [file2.pdf]",
		Short: "Upload and index up to 2 PDFs",
		Long:  "Uploads local PDF files to the server, which extracts, chunks, embeds and indexes them under the given project.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			return runUpload(cmd, project, args, outputJSON)
		},
	}

	cmd.Flags().StringVar(&project, "project", "default", "Project namespace for the upload")

	return cmd
}

func runUpload(cmd *cobra.Command, project string, files []string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	path := "/pdf/upload?project_name=" + url.QueryEscape(project)
	resp, err := api.UploadPDFs(path, files)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	var uploadResp UploadAPIResponse
	if err := json.Unmarshal(resp.Data, &uploadResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(uploadResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	for _, result := range uploadResp.Results {
		line := fmt.Sprintf("%s: %s", result.Filename, result.Status)
		if result.NumChunks > 0 {
			line += fmt.Sprintf(" (%d chunks)", result.NumChunks)
		}
		if result.Detail != "" {
			line += " - " + result.Detail
		}
		fmt.Println(line)
	}

	failed := 0
	for _, result := range uploadResp.Results {
		if result.Status == domain.IndexStatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to index", failed, len(uploadResp.Results))
	}
	return nil
}
