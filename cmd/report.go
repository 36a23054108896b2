package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/coverage-cli/internal/aggregator"
	"github.com/sells-group/coverage-cli/internal/recordstore"
	"github.com/sells-group/coverage-cli/internal/render"
)

var (
	reportCompany string
	reportQuarter string
	reportOut     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate stored records into a coverage report",
	Long:  "Reads one company/quarter partition, builds the ordered coverage document, and writes markdown, document JSON, and a needs-review workbook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		records := recordstore.New(cfg.Ingest.DataDir)
		recs, err := records.ReadAll(reportCompany, reportQuarter)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return eris.Errorf("no records for %s %s", reportCompany, reportQuarter)
		}

		result := aggregator.Build(recs, reportCompany, reportQuarter)

		outDir := reportOut
		if outDir == "" {
			outDir = cfg.Report.OutputDir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return eris.Wrapf(err, "create output dir %s", outDir)
		}

		base := fmt.Sprintf("%s %s News Coverage", reportQuarter, reportCompany)

		mdPath := filepath.Join(outDir, base+".md")
		if err := os.WriteFile(mdPath, []byte(render.Markdown(result.Document)), 0o644); err != nil {
			return eris.Wrap(err, "write markdown report")
		}

		docPath := filepath.Join(outDir, base+".json")
		docJSON, err := json.MarshalIndent(result.Document, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal document")
		}
		if err := os.WriteFile(docPath, docJSON, 0o644); err != nil {
			return eris.Wrap(err, "write document JSON")
		}

		reviewPath := filepath.Join(outDir, "needs_review.xlsx")
		if err := render.WriteReviewsXLSX(reviewPath, result.Reviews); err != nil {
			return err
		}
		reviewTxtPath := filepath.Join(outDir, "needs_review.txt")
		if err := os.WriteFile(reviewTxtPath, []byte(render.ReviewsText(result.Reviews)), 0o644); err != nil {
			return eris.Wrap(err, "write review list")
		}

		zap.L().Info("report written",
			zap.String("company", reportCompany),
			zap.String("quarter", reportQuarter),
			zap.Int("records", len(recs)),
			zap.Int("reviews", len(result.Reviews)),
		)
		fmt.Println(mdPath)
		fmt.Println(docPath)
		fmt.Println(reviewPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportCompany, "company", "", "buyer name (required)")
	reportCmd.Flags().StringVar(&reportQuarter, "quarter", "", `quarter label, e.g. "2026 Q1" (required)`)
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output directory (default from config)")
	_ = reportCmd.MarkFlagRequired("company")
	_ = reportCmd.MarkFlagRequired("quarter")
	rootCmd.AddCommand(reportCmd)
}
