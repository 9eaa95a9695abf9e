package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkuiper/voiceloop/internal/interview"
	"github.com/mkuiper/voiceloop/internal/types"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Walk through the foundation interview",
}

var nextQuestionCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the next unanswered foundation question",
	RunE:  runNextQuestion,
}

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Store or replace an answer to a foundation question",
	RunE:  runAnswer,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import answers in bulk from a JSON file",
	Long: `Reads a JSON object mapping question keys to answer texts and upserts
each one. Unknown question keys are skipped with a warning.`,
	RunE: runImportAnswers,
}

var (
	interviewWorkspace   string
	interviewProject     string
	interviewDatabaseURL string
	answerKey            string
	answerText           string
	importFile           string
)

func init() {
	for _, cmd := range []*cobra.Command{nextQuestionCmd, answerCmd, importCmd} {
		cmd.Flags().StringVarP(&interviewWorkspace, "workspace", "w", "", "Workspace identifier (defaults to VOICELOOP_WORKSPACE env var)")
		cmd.Flags().StringVar(&interviewProject, "project", "", "Optional project identifier")
		cmd.Flags().StringVar(&interviewDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	}

	answerCmd.Flags().StringVarP(&answerKey, "key", "k", "", "Question key (required)")
	answerCmd.Flags().StringVarP(&answerText, "text", "t", "", "Answer text (required)")
	_ = answerCmd.MarkFlagRequired("key")
	_ = answerCmd.MarkFlagRequired("text")

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to answers JSON file (required)")
	_ = importCmd.MarkFlagRequired("file")

	interviewCmd.AddCommand(nextQuestionCmd)
	interviewCmd.AddCommand(answerCmd)
	interviewCmd.AddCommand(importCmd)
	rootCmd.AddCommand(interviewCmd)
}

func runNextQuestion(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	scope, err := resolveScope(interviewWorkspace, interviewProject)
	if err != nil {
		return err
	}
	databaseURL, err := resolveDatabaseURL(interviewDatabaseURL)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	answers, err := st.ListAnswers(ctx, scope)
	if err != nil {
		return err
	}

	engine := interview.NewEngine()
	for _, key := range engine.UnknownKeys(answers) {
		fmt.Fprintf(os.Stderr, "Warning: answer for unknown question key %q ignored\n", key)
	}

	question, more := engine.NextQuestion(answers)
	if !more {
		fmt.Println("Interview complete. Run 'voiceloop synthesize' to build the profile.")
		return nil
	}

	fmt.Printf("[%s]\n%s\n", question.Key, question.Text)
	if len(question.Options) > 0 {
		fmt.Println("Options:")
		for _, opt := range question.Options {
			fmt.Printf("  - %s\n", opt)
		}
	}
	return nil
}

func runAnswer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	scope, err := resolveScope(interviewWorkspace, interviewProject)
	if err != nil {
		return err
	}
	databaseURL, err := resolveDatabaseURL(interviewDatabaseURL)
	if err != nil {
		return err
	}

	if _, ok := interview.Lookup(answerKey); !ok {
		return &interview.UnknownQuestionKeyError{Key: answerKey}
	}

	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	answer := types.FoundationAnswer{
		Scope:       scope,
		QuestionKey: answerKey,
		AnswerText:  answerText,
	}
	if err := st.UpsertAnswer(ctx, answer); err != nil {
		return err
	}

	fmt.Printf("Stored answer for %s\n", answerKey)
	return nil
}

func runImportAnswers(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	scope, err := resolveScope(interviewWorkspace, interviewProject)
	if err != nil {
		return err
	}
	databaseURL, err := resolveDatabaseURL(interviewDatabaseURL)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read answers file: %w", err)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse answers JSON: %w", err)
	}

	st, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer st.Close()

	// Import in canonical bank order so progress output reads naturally.
	stored := 0
	for _, q := range interview.Bank() {
		text, ok := entries[q.Key]
		if !ok {
			continue
		}
		answer := types.FoundationAnswer{
			Scope:       scope,
			QuestionKey: q.Key,
			AnswerText:  text,
		}
		if err := st.UpsertAnswer(ctx, answer); err != nil {
			return err
		}
		stored++
		delete(entries, q.Key)
	}
	for key := range entries {
		fmt.Fprintf(os.Stderr, "Warning: skipping unknown question key %q\n", key)
	}

	fmt.Printf("Imported %d answers for scope %s\n", stored, scope.Key())
	return nil
}
