package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkuiper/voiceloop/internal/observability"
	"github.com/mkuiper/voiceloop/internal/synthesis"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize a new persona profile version from the stored answers",
	Long: `Collects all foundation answers and examples for the scope, runs the
synthesis model and stores the result as the next profile version. Fails
without writing anything when the model returns a malformed profile.`,
	RunE: runSynthesize,
}

var (
	synthWorkspace   string
	synthProject     string
	synthDatabaseURL string
	synthAPIKey      string
	synthVerbose     bool
)

func init() {
	synthesizeCmd.Flags().StringVarP(&synthWorkspace, "workspace", "w", "", "Workspace identifier (defaults to VOICELOOP_WORKSPACE env var)")
	synthesizeCmd.Flags().StringVar(&synthProject, "project", "", "Optional project identifier")
	synthesizeCmd.Flags().StringVar(&synthDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	synthesizeCmd.Flags().StringVar(&synthAPIKey, "api-key", "", "Gemini API Key (defaults to GEMINI_API_KEY env var)")
	synthesizeCmd.Flags().BoolVarP(&synthVerbose, "verbose", "v", false, "Print the full synthesized profile")

	rootCmd.AddCommand(synthesizeCmd)
}

func runSynthesize(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	scope, err := resolveScope(synthWorkspace, synthProject)
	if err != nil {
		return err
	}
	databaseURL, err := resolveDatabaseURL(synthDatabaseURL)
	if err != nil {
		return err
	}
	apiKey, err := resolveAPIKey(synthAPIKey)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	client, err := newGenerator(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	synth := synthesis.New(client, st)
	profile, err := synth.Synthesize(ctx, scope)
	if err != nil {
		return err
	}

	fmt.Printf("Synthesized profile v%d for scope %s\n", profile.Version, scope.Key())
	if synthVerbose {
		observability.NewPrinter(os.Stdout).PrintProfile(profile)
	}
	return nil
}
