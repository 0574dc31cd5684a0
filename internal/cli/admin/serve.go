package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wizvault/wizvault/internal/api/handlers"
	"github.com/wizvault/wizvault/internal/audit"
	"github.com/wizvault/wizvault/internal/config"
	"github.com/wizvault/wizvault/internal/graph"
	"github.com/wizvault/wizvault/internal/langfuse"
	"github.com/wizvault/wizvault/internal/llm"
	"github.com/wizvault/wizvault/internal/pdf"
	"github.com/wizvault/wizvault/internal/server"
	"github.com/wizvault/wizvault/internal/service"
	"github.com/wizvault/wizvault/internal/storage"
	"github.com/wizvault/wizvault/internal/telemetry"
	"github.com/wizvault/wizvault/internal/web"
)

// llmClient is the full provider surface the services need: embeddings for
// indexing and retrieval, generation for answering.
type llmClient interface {
	service.EmbedderInterface
	service.GeneratorInterface
}

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the wizvault API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	graphClient, err := graph.NewClient(ctx, graph.Config{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUser,
		Password: cfg.Neo4jPassword,
		Database: cfg.Neo4jDatabase,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}
	defer graphClient.Close(ctx)
	log.Println("connected to neo4j")

	chunkStore := graph.NewChunkStore(graphClient)
	if err := chunkStore.EnsureSchema(ctx, cfg.EmbeddingDims); err != nil {
		return fmt.Errorf("failed to ensure graph schema: %w", err)
	}

	mongoClient, err := audit.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("failed to connect to mongo: %w", err)
	}
	defer mongoClient.Disconnect(ctx)
	log.Println("connected to mongo")

	recordStore := audit.NewUploadRecordStore(mongoClient.Database(cfg.MongoDatabase))

	var provider llmClient
	switch {
	case cfg.LLMProvider == "openai" && cfg.HasOpenAI():
		provider = llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:    cfg.OpenAIAPIKey,
			BaseURL:   cfg.OpenAIBaseURL,
			ChatModel: cfg.OpenAIChatModel,
		})
		log.Println("using OpenAI provider")
	case cfg.HasGemini():
		gemini, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
			APIKey:         cfg.GoogleAPIKey,
			Model:          cfg.GeminiModel,
			EmbeddingModel: cfg.EmbeddingModel,
		})
		if err != nil {
			return fmt.Errorf("failed to create gemini client: %w", err)
		}
		defer gemini.Close()
		provider = gemini
		log.Println("using Gemini provider")
	default:
		return fmt.Errorf("no LLM provider configured: set GOOGLE_API_KEY or OPENAI_API_KEY")
	}

	var prompts service.PromptRegistryInterface
	var tracer service.TracerInterface
	if cfg.HasLangfuse() {
		lf := langfuse.NewClient(cfg.LangfuseHost, cfg.LangfusePublicKey, cfg.LangfuseSecretKey)
		prompts = lf
		tracer = lf
		log.Println("langfuse configured")
	}

	var archiver service.PDFArchiverInterface
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		archiver = s3Client
	}

	indexingSvc := service.NewIndexingService(pdf.ExtractText, provider, chunkStore, recordStore, archiver)
	retrievalSvc := service.NewRetrievalService(provider, chunkStore)
	answerSvc := service.NewAnswerService(retrievalSvc, provider, prompts, tracer)

	router := server.NewRouter(server.RouterConfig{
		PDFHandler: handlers.NewPDFHandler(indexingSvc, answerSvc, retrievalSvc),
		WebUI:      web.Handler(),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
