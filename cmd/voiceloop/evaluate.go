package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mkuiper/voiceloop/internal/compose"
	"github.com/mkuiper/voiceloop/internal/observability"
	"github.com/mkuiper/voiceloop/internal/quality"
	"github.com/mkuiper/voiceloop/internal/synthesis"
	"github.com/mkuiper/voiceloop/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [files...]",
	Short: "Run the quality gate over one or more text files",
	Long: `Evaluates text files against the scope's profile constraints. The profile
comes from the database, or from a profile JSON file via --profile for
offline use. Files are evaluated concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvaluate,
}

var (
	evalWorkspace   string
	evalProject     string
	evalDatabaseURL string
	evalProfilePath string
	evalContentType string
	evalLengthMode  string
	evalVerbose     bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalWorkspace, "workspace", "w", "", "Workspace identifier (used with --db-url)")
	evaluateCmd.Flags().StringVar(&evalProject, "project", "", "Optional project identifier")
	evaluateCmd.Flags().StringVar(&evalDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	evaluateCmd.Flags().StringVar(&evalProfilePath, "profile", "", "Path to a profile JSON file (skips the database)")
	evaluateCmd.Flags().StringVar(&evalContentType, "type", "linkedin", "Content type: linkedin or blog")
	evaluateCmd.Flags().StringVar(&evalLengthMode, "length", "short", "Length mode: short, medium or long")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print full quality findings per file")

	rootCmd.AddCommand(evaluateCmd)
}

// evalResult pairs a file with its quality outcome for ordered reporting.
type evalResult struct {
	path   string
	result types.QualityResult
}

func runEvaluate(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	profile, err := loadEvalProfile(ctx)
	if err != nil {
		return err
	}

	spec, err := compose.SpecFor(types.ContentType(evalContentType), types.LengthMode(evalLengthMode))
	if err != nil {
		return err
	}

	results := make([]evalResult, 0, len(args))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, path := range args {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			result := quality.Evaluate(string(data), spec, profile.Constraints)

			mu.Lock()
			results = append(results, evalResult{path: path, result: result})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	printer := observability.NewPrinter(os.Stdout)
	for _, r := range results {
		fmt.Printf("%s: score %.2f, %d violations, %d issues\n",
			r.path, r.result.Score, len(r.result.ViolatedConstraints), len(r.result.Issues))
		if evalVerbose {
			printer.PrintQualityResult(&r.result)
		}
	}
	return nil
}

// loadEvalProfile reads the profile from a JSON file or the database. The
// file path goes through the same strict parse as model output, so a stale
// or hand-edited profile fails loudly.
func loadEvalProfile(ctx context.Context) (*types.Profile, error) {
	if evalProfilePath != "" {
		data, err := os.ReadFile(evalProfilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read profile file: %w", err)
		}
		profile, err := synthesis.ParseProfile(string(data))
		if err != nil {
			return nil, err
		}
		return profile, nil
	}

	scope, err := resolveScope(evalWorkspace, evalProject)
	if err != nil {
		return nil, err
	}
	databaseURL, err := resolveDatabaseURL(evalDatabaseURL)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	profile, err := st.LatestProfile(ctx, scope)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("no profile synthesized yet for scope %s", scope.Key())
	}
	return profile, nil
}
