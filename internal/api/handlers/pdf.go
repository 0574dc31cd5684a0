package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/wizvault/wizvault/internal/api"
	"github.com/wizvault/wizvault/internal/domain"
)

// MaxUploadFiles caps how many PDFs one upload request may carry.
const MaxUploadFiles = 2

// maxUploadMemory bounds the in-memory portion of multipart parsing.
const maxUploadMemory = 32 << 20

type IndexerInterface interface {
	Index(ctx context.Context, project, filename string, data []byte) domain.IndexResult
}

type AnswererInterface interface {
	Ask(ctx context.Context, project, question, pdfName string) (*domain.Answer, error)
}

type CatalogInterface interface {
	ListPDFs(ctx context.Context, project string) ([]string, error)
	ChunksByPDF(ctx context.Context, filename, project string) ([]string, error)
}

// PDFHandler serves the upload, ask, list and chunks endpoints.
type PDFHandler struct {
	indexer  IndexerInterface
	answerer AnswererInterface
	catalog  CatalogInterface
}

func NewPDFHandler(indexer IndexerInterface, answerer AnswererInterface, catalog CatalogInterface) *PDFHandler {
	return &PDFHandler{
		indexer:  indexer,
		answerer: answerer,
		catalog:  catalog,
	}
}

// UploadResponse reports the per-file outcome of an upload request.
type UploadResponse struct {
	Results []domain.IndexResult `json:"results"`
}

// AskResponse is the answer payload for one question.
type AskResponse struct {
	Answer           string   `json:"answer"`
	PDFName          string   `json:"pdf_name"`
	NumChunks        int      `json:"num_chunks"`
	ContextPreview   []string `json:"context_preview"`
	PromptTokens     int      `json:"prompt_tokens"`
	CompletionTokens int      `json:"completion_tokens"`
	TotalTokens      int      `json:"total_tokens"`
}

// ListResponse enumerates the indexed PDFs of a project.
type ListResponse struct {
	PDFs []string `json:"pdfs"`
}

// ChunksResponse carries a document's stored chunk texts in index order.
type ChunksResponse struct {
	Chunks []string `json:"chunks"`
}

// Upload indexes up to MaxUploadFiles PDFs into the caller's project. Parts
// that are not content-type application/pdf reject the whole request; past
// that gate, one bad file does not fail the request — its result reports the
// failure.
func (h *PDFHandler) Upload(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project_name")
	if project == "" {
		api.HandleError(w, domain.ErrMissingProjectName)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		api.Error(w, http.StatusBadRequest, "at least one PDF file is required")
		return
	}
	if len(files) > MaxUploadFiles {
		api.HandleError(w, domain.ErrTooManyFiles)
		return
	}

	// Every part is checked before any file is indexed: a wrong content type
	// rejects the whole request, regardless of the filename extension.
	for _, header := range files {
		if header.Header.Get("Content-Type") != "application/pdf" {
			api.HandleError(w, domain.ErrNotAPDF)
			return
		}
	}

	results := make([]domain.IndexResult, 0, len(files))
	for _, header := range files {
		filename := filepath.Base(header.Filename)

		file, err := header.Open()
		if err != nil {
			results = append(results, domain.IndexResult{
				Filename: filename,
				Status:   domain.IndexStatusFailed,
				Detail:   "could not read uploaded file",
			})
			continue
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			results = append(results, domain.IndexResult{
				Filename: filename,
				Status:   domain.IndexStatusFailed,
				Detail:   "could not read uploaded file",
			})
			continue
		}

		results = append(results, h.indexer.Index(r.Context(), project, filename, data))
	}

	api.Success(w, http.StatusOK, UploadResponse{Results: results})
}

// Ask answers a question against the project's indexed PDFs. With pdf_name
// the context comes from that document alone; otherwise a similarity search
// picks the context.
func (h *PDFHandler) Ask(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project_name")
	if project == "" {
		api.HandleError(w, domain.ErrMissingProjectName)
		return
	}
	question := r.URL.Query().Get("q")
	if question == "" {
		api.HandleError(w, domain.ErrMissingQuestion)
		return
	}
	pdfName := r.URL.Query().Get("pdf_name")

	answer, err := h.answerer.Ask(r.Context(), project, question, pdfName)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	pdfLabel := strings.Join(answer.SourcePDFs, ", ")
	if pdfLabel == "" {
		pdfLabel = "unknown"
	}

	preview := answer.ContextPreview
	if preview == nil {
		preview = []string{}
	}

	api.Success(w, http.StatusOK, AskResponse{
		Answer:           answer.Text,
		PDFName:          pdfLabel,
		NumChunks:        answer.NumChunks,
		ContextPreview:   preview,
		PromptTokens:     answer.PromptTokens,
		CompletionTokens: answer.CompletionTokens,
		TotalTokens:      answer.TotalTokens,
	})
}

// List returns the distinct indexed PDF filenames for a project.
func (h *PDFHandler) List(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project_name")
	if project == "" {
		api.HandleError(w, domain.ErrMissingProjectName)
		return
	}

	pdfs, err := h.catalog.ListPDFs(r.Context(), project)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if pdfs == nil {
		pdfs = []string{}
	}

	api.Success(w, http.StatusOK, ListResponse{PDFs: pdfs})
}

// Chunks returns a document's stored chunk texts in index order.
func (h *PDFHandler) Chunks(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("project_name")
	if project == "" {
		api.HandleError(w, domain.ErrMissingProjectName)
		return
	}
	pdfName := r.URL.Query().Get("pdf_name")
	if pdfName == "" {
		api.HandleError(w, domain.ErrMissingPDFName)
		return
	}

	chunks, err := h.catalog.ChunksByPDF(r.Context(), pdfName, project)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if chunks == nil {
		chunks = []string{}
	}

	api.Success(w, http.StatusOK, ChunksResponse{Chunks: chunks})
}
