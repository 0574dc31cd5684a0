package service

import (
	"context"
	"log"
	"strings"

	"github.com/wizvault/wizvault/internal/domain"
	"github.com/wizvault/wizvault/internal/langfuse"
	"github.com/wizvault/wizvault/internal/llm"
	"github.com/wizvault/wizvault/internal/telemetry"
)

const (
	promptName         = "pdf_qa_prompt"
	promptLabel        = "production"
	contextPreviewSize = 2
)

// defaultPromptTemplate is used whenever the prompt registry is unreachable
// or not configured.
const defaultPromptTemplate = `You are a helpful assistant. Use the following context to answer the question.

Context:
{{context}}

Question:
{{question}}

Answer:`

// RetrieverInterface defines the context-assembly interface for answering
type RetrieverInterface interface {
	Retrieve(ctx context.Context, project, question, pdfName string) (*RetrievedContext, error)
}

// GeneratorInterface defines the text-generation interface
type GeneratorInterface interface {
	GenerateAnswer(ctx context.Context, prompt string) (*llm.Generation, error)
}

// PromptRegistryInterface defines the managed-prompt lookup interface
type PromptRegistryInterface interface {
	GetPrompt(ctx context.Context, name, label string) (string, error)
}

// TracerInterface defines the generation-trace recording interface
type TracerInterface interface {
	RecordGeneration(ctx context.Context, g langfuse.Generation) error
}

// AnswerService runs the retrieve-then-generate flow for one question.
type AnswerService struct {
	retriever RetrieverInterface
	generator GeneratorInterface
	prompts   PromptRegistryInterface
	tracer    TracerInterface
}

// NewAnswerService creates a new AnswerService instance. prompts and tracer
// may be nil when Langfuse is not configured; the builtin template is used
// and no traces are recorded.
func NewAnswerService(
	retriever RetrieverInterface,
	generator GeneratorInterface,
	prompts PromptRegistryInterface,
	tracer TracerInterface,
) *AnswerService {
	return &AnswerService{
		retriever: retriever,
		generator: generator,
		prompts:   prompts,
		tracer:    tracer,
	}
}

// Ask answers a question against the project's indexed PDFs. Generation
// failures degrade to a fixed apology answer rather than an error; only
// retrieval failures surface to the caller.
func (s *AnswerService) Ask(ctx context.Context, project, question, pdfName string) (*domain.Answer, error) {
	ctx, span := telemetry.StartSpan(ctx, "AnswerService.Ask", telemetry.SpanAttributes{
		Project:   project,
		PDFName:   pdfName,
		Operation: "ask",
	})
	defer span.End()

	retrieved, err := s.retriever.Retrieve(ctx, project, question, pdfName)
	if err != nil {
		return nil, err
	}

	if len(retrieved.Chunks) == 0 {
		return &domain.Answer{
			Text:           domain.NoContentAnswer,
			SourcePDFs:     retrieved.Sources,
			ContextPreview: []string{},
		}, nil
	}

	contextText := strings.Join(retrieved.Chunks, "\n\n")
	prompt := langfuse.CompileTemplate(s.promptTemplate(ctx), map[string]string{
		"context":  contextText,
		"question": question,
	})

	answer := &domain.Answer{
		SourcePDFs:     retrieved.Sources,
		NumChunks:      len(retrieved.Chunks),
		ContextPreview: preview(retrieved.Chunks),
	}

	gen, err := s.generator.GenerateAnswer(ctx, prompt)
	if err != nil {
		log.Printf("Generation failed for project %s: %v", project, err)
		answer.Text = domain.FallbackAnswer
		return answer, nil
	}

	answer.Text = gen.Text
	answer.PromptTokens = gen.PromptTokens
	answer.CompletionTokens = gen.CompletionTokens
	answer.TotalTokens = gen.TotalTokens()

	if s.tracer != nil {
		trace := langfuse.Generation{
			TraceName:        "pdf_qa",
			Input:            prompt,
			Output:           gen.Text,
			Model:            gen.Model,
			PromptTokens:     gen.PromptTokens,
			CompletionTokens: gen.CompletionTokens,
			TotalTokens:      gen.TotalTokens(),
			Metadata: map[string]interface{}{
				"project":    project,
				"pdf_name":   pdfName,
				"num_chunks": len(retrieved.Chunks),
			},
		}
		if err := s.tracer.RecordGeneration(ctx, trace); err != nil {
			log.Printf("Trace recording failed for project %s: %v", project, err)
		}
	}

	return answer, nil
}

// promptTemplate resolves the managed prompt, falling back to the builtin
// template on any failure.
func (s *AnswerService) promptTemplate(ctx context.Context) string {
	if s.prompts == nil {
		return defaultPromptTemplate
	}
	template, err := s.prompts.GetPrompt(ctx, promptName, promptLabel)
	if err != nil {
		log.Printf("Prompt %q unavailable, using builtin template: %v", promptName, err)
		return defaultPromptTemplate
	}
	return template
}

func preview(chunks []string) []string {
	if len(chunks) <= contextPreviewSize {
		return chunks
	}
	return chunks[:contextPreviewSize]
}
