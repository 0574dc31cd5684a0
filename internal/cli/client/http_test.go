package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pdf/list", r.URL.Path)
		assert.Equal(t, "acme", r.URL.Query().Get("project_name"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"pdfs":["a.pdf"]}}`))
	}))
	defer server.Close()

	resp, err := testClient(server.URL).Get("/pdf/list?project_name=acme")

	require.NoError(t, err)
	var listResp ListAPIResponse
	require.NoError(t, json.Unmarshal(resp.Data, &listResp))
	assert.Equal(t, []string{"a.pdf"}, listResp.PDFs)
}

func TestGet_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"project_name is required"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Get("/pdf/list")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "project_name is required", apiErr.Message)
}

func TestGet_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Get("/health")

	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestUploadPDFs(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4 test"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["files"]
		require.Len(t, files, 1)
		assert.Equal(t, "report.pdf", files[0].Filename)
		// The server only accepts parts declared as PDFs.
		assert.Equal(t, "application/pdf", files[0].Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"results":[{"filename":"report.pdf","status":"indexed","num_chunks":3}]}}`))
	}))
	defer server.Close()

	resp, err := testClient(server.URL).UploadPDFs("/pdf/upload?project_name=acme", []string{pdfPath})

	require.NoError(t, err)
	var uploadResp UploadAPIResponse
	require.NoError(t, json.Unmarshal(resp.Data, &uploadResp))
	require.Len(t, uploadResp.Results, 1)
	assert.Equal(t, 3, uploadResp.Results[0].NumChunks)
}

func TestUploadPDFs_MissingFile(t *testing.T) {
	_, err := testClient("http://localhost:0").UploadPDFs("/pdf/upload", []string{"/does/not/exist.pdf"})
	assert.Error(t, err)
}
