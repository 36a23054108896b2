package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/coverage-cli/internal/model"
)

var batchDir string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process a directory of article JSON files",
	Long:  "Processes every .json file in the directory through the pipeline with a bounded worker pool. Failures are per-article; the batch always runs to completion.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		paths, err := collectArticlePaths(batchDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return eris.Errorf("no article JSON files in %s", batchDir)
		}

		articles := make([]model.Article, 0, len(paths))
		for _, path := range paths {
			article, err := loadArticleFile(path)
			if err != nil {
				return err
			}
			articles = append(articles, article)
		}

		result := e.Pipeline.RunBatch(ctx, articles)

		for i, item := range result.Items {
			if item.Err != nil {
				fmt.Fprintf(os.Stderr, "FAILED  %s: %v\n", filepath.Base(paths[i]), item.Err)
				continue
			}
			fmt.Printf("OK      %s -> %s %s (%d facts)\n",
				filepath.Base(paths[i]), item.Result.Company, item.Result.Quarter, item.Result.Facts)
		}

		zap.L().Info("batch complete",
			zap.Int64("processed", result.Processed),
			zap.Int64("failed", result.Failed),
		)
		fmt.Printf("processed=%d failed=%d\n", result.Processed, result.Failed)
		return nil
	},
}

// collectArticlePaths lists the .json files in a directory, sorted by name.
func collectArticlePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "read article dir %s", dir)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of article JSON files (required)")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}
