package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mkuiper/voiceloop/internal/feedback"
	"github.com/mkuiper/voiceloop/internal/observability"
	"github.com/mkuiper/voiceloop/internal/types"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record human feedback on a stored draft",
	Long: `Appends a rating and optional notes to a draft. With --promote, a clearly
positive or negative rating also stores the draft text as a good or bad
example for future synthesis rounds.`,
	RunE: runFeedback,
}

var (
	fbDatabaseURL string
	fbDraftID     string
	fbRating      int
	fbNotes       string
	fbPromote     bool
	fbVerbose     bool
)

func init() {
	feedbackCmd.Flags().StringVar(&fbDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	feedbackCmd.Flags().StringVarP(&fbDraftID, "draft", "d", "", "Draft ID (required)")
	feedbackCmd.Flags().IntVarP(&fbRating, "rating", "r", 0, "Rating from 1 to 5 (required)")
	feedbackCmd.Flags().StringVarP(&fbNotes, "notes", "n", "", "Free-form notes")
	feedbackCmd.Flags().BoolVar(&fbPromote, "promote", false, "Also store the draft as a good/bad example when the rating is clear")
	feedbackCmd.Flags().BoolVarP(&fbVerbose, "verbose", "v", false, "Print the draft's full feedback history")
	_ = feedbackCmd.MarkFlagRequired("draft")
	_ = feedbackCmd.MarkFlagRequired("rating")

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	draftID, err := uuid.Parse(fbDraftID)
	if err != nil {
		return fmt.Errorf("invalid draft ID: %w", err)
	}
	databaseURL, err := resolveDatabaseURL(fbDatabaseURL)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	draft, err := st.GetDraft(ctx, draftID)
	if err != nil {
		return err
	}
	if draft == nil {
		return fmt.Errorf("draft not found: %s", draftID)
	}

	recorder := feedback.NewRecorder(st)
	saved, err := recorder.Record(ctx, types.Feedback{
		DraftID: draftID,
		Rating:  fbRating,
		Notes:   fbNotes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Recorded feedback %s (rating %d/5)\n", saved.ID, saved.Rating)

	if fbPromote {
		if example, ok := feedback.AsExample(*draft, saved); ok {
			if err := st.AddExample(ctx, draft.Scope, example); err != nil {
				return err
			}
			fmt.Printf("Stored draft as %s example for scope %s\n", example.Kind, draft.Scope.Key())
		} else {
			fmt.Println("Rating is mid-scale; draft not stored as an example.")
		}
	}

	history, err := recorder.List(ctx, draftID)
	if err != nil {
		return err
	}
	if feedback.AdviseResynthesis(history) {
		fmt.Println("Feedback trend is negative; consider running 'voiceloop synthesize' again.")
	}

	if fbVerbose {
		observability.NewPrinter(os.Stdout).PrintFeedbackSummary(history)
	}
	return nil
}
