// Package langfuse is a minimal client for the Langfuse REST API, covering
// the two capabilities the answer flow needs: resolving a named prompt and
// recording generation traces with token usage.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultHost = "https://cloud.langfuse.com"

// Client talks to a Langfuse instance using basic auth with the project's
// public/secret key pair.
type Client struct {
	host       string
	publicKey  string
	secretKey  string
	httpClient *http.Client
}

func NewClient(host, publicKey, secretKey string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		host:      strings.TrimRight(host, "/"),
		publicKey: publicKey,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type promptResponse struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
}

// GetPrompt fetches the text of a named prompt with the given label. The
// returned template uses {{variable}} placeholders.
func (c *Client) GetPrompt(ctx context.Context, name, label string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/public/v2/prompts/%s", c.host, url.PathEscape(name))
	if label != "" {
		endpoint += "?label=" + url.QueryEscape(label)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("prompt fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("prompt fetch returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pr promptResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", fmt.Errorf("failed to decode prompt response: %w", err)
	}
	if pr.Prompt == "" {
		return "", fmt.Errorf("prompt %q has no text", name)
	}
	return pr.Prompt, nil
}

// Generation describes one generation call recorded as a trace with a nested
// generation observation.
type Generation struct {
	TraceName        string
	Input            string
	Output           string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Metadata         map[string]interface{}
}

type ingestionEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp string                 `json:"timestamp"`
	Body      map[string]interface{} `json:"body"`
}

type ingestionBatch struct {
	Batch []ingestionEvent `json:"batch"`
}

// RecordGeneration posts a trace-create and generation-create event pair to
// the ingestion endpoint. Callers treat failures as best-effort.
func (c *Client) RecordGeneration(ctx context.Context, g Generation) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	traceID := uuid.NewString()

	usage := map[string]interface{}{
		"input":  g.PromptTokens,
		"output": g.CompletionTokens,
		"total":  g.TotalTokens,
	}

	batch := ingestionBatch{
		Batch: []ingestionEvent{
			{
				ID:        uuid.NewString(),
				Type:      "trace-create",
				Timestamp: now,
				Body: map[string]interface{}{
					"id":       traceID,
					"name":     g.TraceName,
					"input":    g.Input,
					"output":   g.Output,
					"metadata": g.Metadata,
				},
			},
			{
				ID:        uuid.NewString(),
				Type:      "generation-create",
				Timestamp: now,
				Body: map[string]interface{}{
					"id":        uuid.NewString(),
					"traceId":   traceID,
					"name":      "llm_call",
					"model":     g.Model,
					"input":     g.Input,
					"output":    g.Output,
					"usage":     usage,
					"startTime": now,
					"endTime":   now,
				},
			},
		},
	}

	payload, err := json.Marshal(batch)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/public/ingestion", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.publicKey, c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trace ingestion failed: %w", err)
	}
	defer resp.Body.Close()

	// The ingestion endpoint answers 207 for accepted batches.
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("trace ingestion returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// CompileTemplate substitutes {{name}} placeholders in a prompt template.
// Unknown placeholders are left untouched.
func CompileTemplate(template string, vars map[string]string) string {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return out
}
