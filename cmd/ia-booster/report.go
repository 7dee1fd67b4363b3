package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terra-clan/ia-booster/internal/models"
	"github.com/terra-clan/ia-booster/internal/report"
	"github.com/terra-clan/ia-booster/internal/scoring"
)

var (
	reportResultFile  string
	reportAnswersFile string
	reportCompany     string
	reportSector      string
	reportFormat      string
	reportOutput      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render an analysis as a PDF or HTML report",
	Long: `Renders a report from an analysis result (JSON, as returned by the API)
or directly from answers scored with the deterministic scorer.

Example:
  ia-booster report --result result.json --company "Boulangerie Durand"
  ia-booster report --answers answers.yaml --format html --out rapport.html`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportResultFile, "result", "r", "", "analysis result file (JSON)")
	reportCmd.Flags().StringVarP(&reportAnswersFile, "answers", "a", "", "answers file to score instead of a result")
	reportCmd.Flags().StringVarP(&reportCompany, "company", "c", "", "company name printed on the report")
	reportCmd.Flags().StringVarP(&reportSector, "sector", "s", "", "business sector printed on the report")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "pdf", "output format (pdf, html)")
	reportCmd.Flags().StringVarP(&reportOutput, "out", "o", "", "output file (defaults to the report file name, - for stdout)")
	reportCmd.MarkFlagsMutuallyExclusive("result", "answers")
	reportCmd.MarkFlagsOneRequired("result", "answers")
}

func runReport(cmd *cobra.Command, args []string) error {
	result, sector, err := loadReportResult(cmd)
	if err != nil {
		return err
	}
	if reportSector != "" {
		sector = reportSector
	}
	opts := report.Options{Company: reportCompany, Sector: sector}

	var body []byte
	switch strings.ToLower(reportFormat) {
	case "pdf":
		body, err = report.PDF(result, opts)
	case "html":
		body, err = report.HTML(result, opts)
	default:
		return fmt.Errorf("unknown format %q", reportFormat)
	}
	if err != nil {
		return err
	}

	out := reportOutput
	if out == "" {
		out = report.Filename(reportCompany)
		if strings.EqualFold(reportFormat, "html") {
			out = strings.TrimSuffix(out, ".pdf") + ".html"
		}
	}

	if out == "-" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out)
	return nil
}

// loadReportResult returns the result to render and the sector found in the answers, if any
func loadReportResult(cmd *cobra.Command) (models.AnalysisResult, string, error) {
	if reportAnswersFile != "" {
		answers, err := readAnswers(cmd.InOrStdin(), reportAnswersFile)
		if err != nil {
			return models.AnalysisResult{}, "", err
		}
		return scoring.Score(answers), answers.SecteurActivite, nil
	}

	data, err := readInput(cmd.InOrStdin(), reportResultFile)
	if err != nil {
		return models.AnalysisResult{}, "", err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return models.AnalysisResult{}, "", fmt.Errorf("failed to parse result: %w", err)
	}
	return result, "", nil
}
