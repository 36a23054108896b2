package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process a single article JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		article, err := loadArticleFile(runFile)
		if err != nil {
			return err
		}

		result, err := e.Pipeline.Run(ctx, article)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		zap.L().Info("article processed",
			zap.String("company", result.Company),
			zap.String("quarter", result.Quarter),
			zap.Int("facts", result.Facts),
			zap.String("path", result.Path),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	runCmd.Flags().StringVar(&runFile, "file", "", "article JSON file (required)")
	_ = runCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(runCmd)
}
