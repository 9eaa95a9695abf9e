package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mkuiper/voiceloop/internal/compose"
	"github.com/mkuiper/voiceloop/internal/observability"
	"github.com/mkuiper/voiceloop/internal/quality"
	"github.com/mkuiper/voiceloop/internal/types"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate a content draft from an idea",
	Long: `Composes a prompt from the latest profile and stored examples, calls the
generation model, runs the quality gate over the result and stores the draft.`,
	RunE: runDraft,
}

var (
	draftWorkspace   string
	draftProject     string
	draftDatabaseURL string
	draftAPIKey      string
	draftThought     string
	draftContentType string
	draftLengthMode  string
	draftVerbose     bool
)

func init() {
	draftCmd.Flags().StringVarP(&draftWorkspace, "workspace", "w", "", "Workspace identifier (defaults to VOICELOOP_WORKSPACE env var)")
	draftCmd.Flags().StringVar(&draftProject, "project", "", "Optional project identifier")
	draftCmd.Flags().StringVar(&draftDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	draftCmd.Flags().StringVar(&draftAPIKey, "api-key", "", "Gemini API Key (defaults to GEMINI_API_KEY env var)")
	draftCmd.Flags().StringVarP(&draftThought, "thought", "t", "", "The idea to write about (required)")
	draftCmd.Flags().StringVar(&draftContentType, "type", "linkedin", "Content type: linkedin or blog")
	draftCmd.Flags().StringVar(&draftLengthMode, "length", "short", "Length mode: short, medium or long")
	draftCmd.Flags().BoolVarP(&draftVerbose, "verbose", "v", false, "Print the draft summary and quality findings")
	_ = draftCmd.MarkFlagRequired("thought")

	rootCmd.AddCommand(draftCmd)
}

func runDraft(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	scope, err := resolveScope(draftWorkspace, draftProject)
	if err != nil {
		return err
	}
	databaseURL, err := resolveDatabaseURL(draftDatabaseURL)
	if err != nil {
		return err
	}
	apiKey, err := resolveAPIKey(draftAPIKey)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	profile, err := st.LatestProfile(ctx, scope)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile synthesized yet for scope %s; run 'voiceloop synthesize' first", scope.Key())
	}

	examples, err := st.ListExamples(ctx, scope)
	if err != nil {
		return err
	}

	req := types.ContentRequest{
		Thought:        draftThought,
		ContentType:    types.ContentType(draftContentType),
		LengthMode:     types.LengthMode(draftLengthMode),
		ProfileVersion: profile.Version,
	}
	composed, err := compose.Compose(req, *profile, examples)
	if err != nil {
		return err
	}

	client, err := newGenerator(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	text, err := client.Generate(ctx, composed.Instructions, composed.Context)
	if err != nil {
		return err
	}

	spec, err := compose.SpecFor(req.ContentType, req.LengthMode)
	if err != nil {
		return err
	}
	result := quality.Evaluate(text, spec, profile.Constraints)

	draft := types.GeneratedDraft{
		ID:                 uuid.New(),
		Scope:              scope,
		Text:               text,
		ContentType:        req.ContentType,
		LengthMode:         req.LengthMode,
		ProfileVersionUsed: profile.Version,
		CreatedAt:          time.Now().UTC(),
	}
	if err := st.SaveDraft(ctx, draft); err != nil {
		return err
	}

	fmt.Printf("Draft %s stored (profile v%d, score %.2f)\n\n", draft.ID, profile.Version, result.Score)
	fmt.Println(text)

	if draftVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintDraft(&draft)
		printer.PrintQualityResult(&result)
	}
	return nil
}
