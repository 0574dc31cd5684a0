package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Neo4jContainer represents a Neo4j container for testing
type Neo4jContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Username  string
	Password  string
}

// NewNeo4jContainer creates and starts a Neo4j container with vector index support
func NewNeo4jContainer(ctx context.Context, t *testing.T) *Neo4jContainer {
	req := testcontainers.ContainerRequest{
		Image:        "neo4j:5.26",
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/wizvault",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("Started."),
			wait.ForListeningPort("7687/tcp"),
		).WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to create neo4j container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "7687")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	return &Neo4jContainer{
		Container: container,
		Host:      host,
		Port:      port.Port(),
		Username:  "neo4j",
		Password:  "wizvault",
	}
}

// URI returns the bolt URI for driver connections
func (nc *Neo4jContainer) URI() string {
	return fmt.Sprintf("bolt://%s:%s", nc.Host, nc.Port)
}

// Terminate stops and removes the container
func (nc *Neo4jContainer) Terminate(ctx context.Context) error {
	return testcontainers.TerminateContainer(nc.Container)
}

// MongoContainer represents a MongoDB container for testing
type MongoContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// NewMongoContainer creates and starts a MongoDB container
func NewMongoContainer(ctx context.Context, t *testing.T) *MongoContainer {
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to create mongo container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	return &MongoContainer{
		Container: container,
		Host:      host,
		Port:      port.Port(),
	}
}

// URI returns the MongoDB connection string
func (mc *MongoContainer) URI() string {
	return fmt.Sprintf("mongodb://%s:%s", mc.Host, mc.Port)
}

// Terminate stops and removes the container
func (mc *MongoContainer) Terminate(ctx context.Context) error {
	return testcontainers.TerminateContainer(mc.Container)
}
