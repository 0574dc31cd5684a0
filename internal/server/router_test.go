package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wizvault/wizvault/internal/api/handlers"
	"github.com/wizvault/wizvault/internal/domain"
)

type MockIndexer struct {
	mock.Mock
}

func (m *MockIndexer) Index(ctx context.Context, project, filename string, data []byte) domain.IndexResult {
	args := m.Called(ctx, project, filename, data)
	return args.Get(0).(domain.IndexResult)
}

type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Ask(ctx context.Context, project, question, pdfName string) (*domain.Answer, error) {
	args := m.Called(ctx, project, question, pdfName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Answer), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListPDFs(ctx context.Context, project string) ([]string, error) {
	args := m.Called(ctx, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalog) ChunksByPDF(ctx context.Context, filename, project string) ([]string, error) {
	args := m.Called(ctx, filename, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func setupRouter(webUI http.Handler) (http.Handler, *MockAnswerer, *MockCatalog) {
	answerer := new(MockAnswerer)
	catalog := new(MockCatalog)

	cfg := RouterConfig{
		PDFHandler: handlers.NewPDFHandler(new(MockIndexer), answerer, catalog),
		WebUI:      webUI,
	}

	return NewRouter(cfg), answerer, catalog
}

func TestRouter_HealthEndpoint(t *testing.T) {
	router, _, _ := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "ok", data["status"])
}

func TestRouter_AskRoute(t *testing.T) {
	router, answerer, _ := setupRouter(nil)

	answerer.On("Ask", mock.Anything, "acme", "hello", "").
		Return(&domain.Answer{Text: "hi"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pdf/ask?project_name=acme&q=hello", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	answerer.AssertExpectations(t)
}

func TestRouter_ListRoute(t *testing.T) {
	router, _, catalog := setupRouter(nil)

	catalog.On("ListPDFs", mock.Anything, "acme").Return([]string{"a.pdf"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pdf/list?project_name=acme", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	catalog.AssertExpectations(t)
}

func TestRouter_ChunksRoute(t *testing.T) {
	router, _, catalog := setupRouter(nil)

	catalog.On("ChunksByPDF", mock.Anything, "a.pdf", "acme").Return([]string{"chunk"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pdf/chunks?project_name=acme&pdf_name=a.pdf", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_UploadRequiresPost(t *testing.T) {
	router, _, _ := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/pdf/upload?project_name=acme", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router, _, _ := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_WebUIAtRoot(t *testing.T) {
	ui := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>ui</html>"))
	})
	router, _, _ := setupRouter(ui)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ui")
}

func TestRouter_NoWebUIRootIs404(t *testing.T) {
	router, _, _ := setupRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
