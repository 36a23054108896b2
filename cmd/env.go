package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/coverage-cli/internal/assembler"
	"github.com/sells-group/coverage-cli/internal/matcher"
	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/pipeline"
	"github.com/sells-group/coverage-cli/internal/recordstore"
	"github.com/sells-group/coverage-cli/internal/router"
	"github.com/sells-group/coverage-cli/internal/runstore"
	anthropicpkg "github.com/sells-group/coverage-cli/pkg/anthropic"
)

// env bundles the wired pipeline and its closable dependencies.
type env struct {
	Pipeline *pipeline.Pipeline
	Records  *recordstore.Store
	Runs     runstore.Store
}

func (e *env) Close() {
	if e.Runs != nil {
		_ = e.Runs.Close()
	}
}

// initRunstore opens and migrates the run audit store.
func initRunstore(ctx context.Context) (runstore.Store, error) {
	dsn := cfg.Runs.SQLitePath
	if cfg.Runs.Driver == "postgres" {
		dsn = cfg.Runs.DatabaseURL
	}
	st, err := runstore.Open(ctx, cfg.Runs.Driver, dsn)
	if err != nil {
		return nil, eris.Wrap(err, "open run store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate run store")
	}
	return st, nil
}

// initMatcher builds the buyer matcher from the configured keyword file or
// the built-in table.
func initMatcher() (*matcher.Matcher, error) {
	mcfg := matcher.DefaultConfig()
	if cfg.Buyers.KeywordsFile != "" {
		loaded, err := matcher.LoadConfig(cfg.Buyers.KeywordsFile)
		if err != nil {
			return nil, err
		}
		mcfg = loaded
	}
	return matcher.New(mcfg)
}

// initPipeline wires the full processing pipeline.
func initPipeline(ctx context.Context) (*env, error) {
	runs, err := initRunstore(ctx)
	if err != nil {
		return nil, err
	}

	m, err := initMatcher()
	if err != nil {
		runs.Close()
		return nil, err
	}

	r := router.New(router.DefaultRules(), router.Options{
		ConfidenceFloor:     cfg.Routing.ConfidenceFloor,
		UnprefixedExecNotes: cfg.Assembler.UnprefixedExecNotes(),
	})
	asm := assembler.New(assembler.Options{
		Strict:              cfg.Assembler.Strict,
		UnprefixedExecNotes: cfg.Assembler.UnprefixedExecNotes(),
	})
	records := recordstore.New(cfg.Ingest.DataDir)
	aiClient := anthropicpkg.NewClient(cfg.Anthropic.Key, anthropicpkg.Options{
		RequestsPerMinute: cfg.Anthropic.RequestsPerMinute,
	})

	return &env{
		Pipeline: pipeline.New(cfg, aiClient, m, r, asm, records, runs),
		Records:  records,
		Runs:     runs,
	}, nil
}

// loadArticleFile reads one article from a JSON file. A single-element JSON
// array is accepted for compatibility with exported capture files.
func loadArticleFile(path string) (model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Article{}, eris.Wrapf(err, "read article file %s", path)
	}

	var article model.Article
	if err := json.Unmarshal(data, &article); err == nil && article.URL != "" {
		return article, nil
	}

	var list []model.Article
	if err := json.Unmarshal(data, &list); err != nil {
		return model.Article{}, eris.Wrapf(err, "parse article file %s", path)
	}
	if len(list) != 1 {
		return model.Article{}, eris.Errorf("article file %s must contain exactly one article", path)
	}
	return list[0], nil
}
