package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mkuiper/voiceloop/internal/llm"
	"github.com/mkuiper/voiceloop/internal/store"
	"github.com/mkuiper/voiceloop/internal/types"
)

// resolveAPIKey returns the flag value or falls back to GEMINI_API_KEY.
func resolveAPIKey(flagValue string) (string, error) {
	apiKey := flagValue
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return apiKey, nil
}

// resolveDatabaseURL returns the flag value or falls back to DATABASE_URL.
func resolveDatabaseURL(flagValue string) (string, error) {
	databaseURL := flagValue
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return "", fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url flag)")
	}
	return databaseURL, nil
}

// openStore connects to Postgres and runs migrations.
func openStore(ctx context.Context, databaseURL string) (*store.Postgres, error) {
	pg, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return pg, nil
}

// newGenerator creates the Gemini client for generation commands.
func newGenerator(ctx context.Context, apiKey string) (*llm.GeminiClient, error) {
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// resolveScope builds the scope from workspace/project flags, with the
// workspace falling back to VOICELOOP_WORKSPACE.
func resolveScope(workspace, project string) (types.Scope, error) {
	if workspace == "" {
		workspace = os.Getenv("VOICELOOP_WORKSPACE")
	}
	if workspace == "" {
		return types.Scope{}, fmt.Errorf("workspace is required (set VOICELOOP_WORKSPACE environment variable or use --workspace flag)")
	}
	return types.Scope{WorkspaceID: workspace, ProjectID: project}, nil
}
