package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// AskAPIResponse mirrors the server's answer payload.
type AskAPIResponse struct {
	Answer           string   `json:"answer"`
	PDFName          string   `json:"pdf_name"`
	NumChunks        int      `json:"num_chunks"`
	ContextPreview   []string `json:"context_preview"`
	PromptTokens     int      `json:"prompt_tokens"`
	CompletionTokens int      `json:"completion_tokens"`
	TotalTokens      int      `json:"total_tokens"`
}

// AskCmd creates the ask command.
func AskCmd() *cobra.Command {
	var (
		project string
		pdfName string
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about indexed PDFs",
		Long:  "Asks a question against the project's indexed PDFs. With --pdf the context comes from that document alone.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ := cmd.Flags().GetBool("output")
			question := strings.Join(args, " ")
			return runAsk(cmd, project, question, pdfName, outputJSON)
		},
	}

	cmd.Flags().StringVar(&project, "project", "default", "Project namespace to query")
	cmd.Flags().StringVar(&pdfName, "pdf", "", "Limit context to one PDF filename")

	return cmd
}

func runAsk(cmd *cobra.Command, project, question, pdfName string, outputJSON bool) error {
	api, err := NewAPIClientWithCmd(cmd)
	if err != nil {
		return err
	}

	params := url.Values{}
	params.Set("q", question)
	params.Set("project_name", project)
	if pdfName != "" {
		params.Set("pdf_name", pdfName)
	}

	resp, err := api.Get("/pdf/ask?" + params.Encode())
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	var askResp AskAPIResponse
	if err := json.Unmarshal(resp.Data, &askResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if outputJSON {
		output, _ := json.MarshalIndent(askResp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(askResp.Answer)
	fmt.Printf("\nSource: %s\n", askResp.PDFName)
	if askResp.NumChunks > 0 {
		fmt.Printf("Chunks used: %d\n", askResp.NumChunks)
	}
	if askResp.TotalTokens > 0 {
		fmt.Printf("Tokens: %d prompt + %d completion = %d total\n",
			askResp.PromptTokens, askResp.CompletionTokens, askResp.TotalTokens)
	}
	return nil
}
