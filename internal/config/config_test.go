package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	os.Setenv("WIZVAULT_NEO4J_URI", "neo4j://localhost:7687")
	os.Setenv("WIZVAULT_NEO4J_PASSWORD", "secret")
	os.Setenv("WIZVAULT_MONGO_URI", "mongodb://localhost:27017")
	os.Setenv("WIZVAULT_PORT", "9090")
	os.Setenv("WIZVAULT_DEBUG", "true")
	os.Setenv("WIZVAULT_GOOGLE_API_KEY", "g-test")
	os.Setenv("WIZVAULT_LANGFUSE_PUBLIC_KEY", "pk-lf-test")
	os.Setenv("WIZVAULT_LANGFUSE_SECRET_KEY", "sk-lf-test")
	defer func() {
		os.Unsetenv("WIZVAULT_NEO4J_URI")
		os.Unsetenv("WIZVAULT_NEO4J_PASSWORD")
		os.Unsetenv("WIZVAULT_MONGO_URI")
		os.Unsetenv("WIZVAULT_PORT")
		os.Unsetenv("WIZVAULT_DEBUG")
		os.Unsetenv("WIZVAULT_GOOGLE_API_KEY")
		os.Unsetenv("WIZVAULT_LANGFUSE_PUBLIC_KEY")
		os.Unsetenv("WIZVAULT_LANGFUSE_SECRET_KEY")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "neo4j://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, "secret", cfg.Neo4jPassword)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.HasGemini())
	assert.True(t, cfg.HasLangfuse())
	assert.False(t, cfg.HasS3())
	assert.False(t, cfg.HasOpenAI())
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("WIZVAULT_NEO4J_URI", "neo4j://localhost:7687")
	os.Setenv("WIZVAULT_MONGO_URI", "mongodb://localhost:27017")
	defer func() {
		os.Unsetenv("WIZVAULT_NEO4J_URI")
		os.Unsetenv("WIZVAULT_MONGO_URI")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "neo4j", cfg.Neo4jUser)
	assert.Equal(t, "neo4j", cfg.Neo4jDatabase)
	assert.Equal(t, "wizvault", cfg.MongoDatabase)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.Equal(t, 768, cfg.EmbeddingDims)
	assert.Equal(t, "https://cloud.langfuse.com", cfg.LangfuseHost)
	assert.Equal(t, "wizvault-uploads", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestLoad_RequiredNeo4jURI(t *testing.T) {
	os.Unsetenv("WIZVAULT_NEO4J_URI")
	os.Setenv("WIZVAULT_MONGO_URI", "mongodb://localhost:27017")
	defer os.Unsetenv("WIZVAULT_MONGO_URI")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "NEO4J_URI")
}
