package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/terra-clan/ia-booster/internal/advisor"
	"github.com/terra-clan/ia-booster/internal/catalog"
	"github.com/terra-clan/ia-booster/internal/config"
	"github.com/terra-clan/ia-booster/internal/llm"
	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/quiz"
	"github.com/terra-clan/ia-booster/internal/scoring"
)

var (
	scoreAnswersFile string
	scoreUseAI       bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Analyze questionnaire answers from a file",
	Long: `Reads questionnaire answers from a YAML or JSON file ("-" for stdin)
and prints the analysis as JSON.

By default the deterministic scorer is used. With --ai the configured
provider is asked first and the scorer is only used as a fallback.

Example:
  ia-booster score --answers answers.yaml
  echo '{"tailleEntreprise":"pme","serviceClient":true}' | ia-booster score --answers -`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreAnswersFile, "answers", "a", "-", "answers file (YAML or JSON, - for stdin)")
	scoreCmd.Flags().BoolVar(&scoreUseAI, "ai", false, "ask the configured LLM provider first")
}

func runScore(cmd *cobra.Command, args []string) error {
	answers, err := readAnswers(cmd.InOrStdin(), scoreAnswersFile)
	if err != nil {
		return err
	}

	if missing := quiz.Missing(answers); len(missing) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: unanswered questions: %v\n", missing)
	}

	result := scoring.Score(answers)
	if scoreUseAI {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout+5*time.Second)
		defer cancel()

		loader := catalog.NewLoader(cfg.Catalog.File)
		result = advisor.New(llm.NewClient(cfg.LLM), loader, cfg.LLM.AnalysisModel).Recommend(ctx, answers)
	}

	return writeJSON(cmd.OutOrStdout(), result)
}

// readAnswers decodes answers from path, or from stdin when path is "-".
// JSON input is accepted as it is a subset of YAML.
func readAnswers(stdin io.Reader, path string) (models.Answers, error) {
	data, err := readInput(stdin, path)
	if err != nil {
		return models.Answers{}, err
	}

	var answers models.Answers
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return models.Answers{}, fmt.Errorf("failed to parse answers: %w", err)
	}
	if answers.TailleEntreprise != "" && !answers.TailleEntreprise.Valid() {
		return models.Answers{}, fmt.Errorf("unknown company size %q", answers.TailleEntreprise)
	}
	return answers, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
