// Package testhelper starts a disposable SurrealDB for adapter integration
// tests.
package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jaapghar/jaapghar-backend/internal/adapter/surreal"
	"github.com/jaapghar/jaapghar-backend/internal/config"
)

var (
	once      sync.Once
	sharedURL string
	initErr   error
)

// SetupTestDB starts a shared SurrealDB container (once for the entire test
// run) and returns a DB handle scoped to a per-test database. The handle is
// closed via t.Cleanup; the container lives until the process exits.
func SetupTestDB(t *testing.T) *surrealdb.DB {
	t.Helper()

	once.Do(func() {
		sharedURL, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup SurrealDB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := surreal.Connect(ctx, config.SurrealConfig{
		URL:       sharedURL,
		Namespace: "test",
		Database:  sanitize(t.Name()),
		Username:  "root",
		Password:  "root",
	})
	if err != nil {
		t.Fatalf("testhelper: connect: %v", err)
	}

	t.Cleanup(func() {
		db.Close(context.Background()) //nolint:errcheck
	})

	return db
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "surrealdb/surrealdb:v2.3",
		ExposedPorts: []string{"8000/tcp"},
		Cmd:          []string{"start", "--user", "root", "--pass", "root", "memory"},
		WaitingFor: wait.ForListeningPort("8000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "8000/tcp")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	return fmt.Sprintf("ws://%s:%s/rpc", host, port.Port()), nil
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
