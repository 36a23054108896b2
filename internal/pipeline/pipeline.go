// Package pipeline orchestrates one article end to end: normalize, classify,
// route, summarize, assemble facts, persist the record, and audit the run.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/coverage-cli/internal/assembler"
	"github.com/sells-group/coverage-cli/internal/config"
	"github.com/sells-group/coverage-cli/internal/matcher"
	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/recordstore"
	"github.com/sells-group/coverage-cli/internal/router"
	"github.com/sells-group/coverage-cli/internal/runstore"
	"github.com/sells-group/coverage-cli/internal/taxonomy"
	"github.com/sells-group/coverage-cli/pkg/anthropic"
)

// Pipeline processes articles into stored coverage records.
type Pipeline struct {
	cfg     *config.Config
	ai      anthropic.Client
	matcher *matcher.Matcher
	router  *router.Router
	asm     *assembler.Assembler
	records *recordstore.Store
	runs    runstore.Store
}

// New creates a Pipeline with all dependencies. The run store may be nil,
// which disables run auditing.
func New(
	cfg *config.Config,
	aiClient anthropic.Client,
	m *matcher.Matcher,
	r *router.Router,
	asm *assembler.Assembler,
	records *recordstore.Store,
	runs runstore.Store,
) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		ai:      aiClient,
		matcher: m,
		router:  r,
		asm:     asm,
		records: records,
		runs:    runs,
	}
}

// Result summarizes one processed article.
type Result struct {
	RunID    string
	RecordID string
	Company  string
	Quarter  string
	Route    string
	Facts    int
	Path     string
	Usage    anthropic.TokenUsage
}

// Run processes a single article and appends its record to the store.
func (p *Pipeline) Run(ctx context.Context, article model.Article) (*Result, error) {
	log := zap.L().With(zap.String("url", article.URL), zap.String("title", article.Title))

	var runID string
	if p.runs != nil {
		run, err := p.runs.CreateRun(ctx, article.URL)
		if err != nil {
			return nil, eris.Wrap(err, "pipeline: create run")
		}
		runID = run.ID
	}

	result, err := p.process(ctx, article, log)
	if p.runs != nil {
		if err != nil {
			if failErr := p.runs.FailRun(ctx, runID, err); failErr != nil {
				log.Warn("recording run failure failed", zap.Error(failErr))
			}
		} else {
			if doneErr := p.runs.CompleteRun(ctx, runID, result.Company, result.Quarter, result.Facts); doneErr != nil {
				log.Warn("recording run completion failed", zap.Error(doneErr))
			}
		}
	}
	if err != nil {
		return nil, err
	}
	result.RunID = runID
	return result, nil
}

func (p *Pipeline) process(ctx context.Context, article model.Article, log *zap.Logger) (*Result, error) {
	article, replacements := NormalizeArticle(article)
	if replacements > 0 {
		log.Info("normalized article text", zap.Int("replacements", replacements))
	}

	if article.PublishedAt == nil {
		return nil, eris.New("pipeline: published_at is required to infer quarter")
	}
	quarter := model.QuarterOf(*article.PublishedAt)
	company, strength := p.matcher.Infer(article)

	var usage anthropic.TokenUsage

	cls, classifyUsage, err := p.classify(ctx, article)
	if err != nil {
		return nil, err
	}
	usage.Add(classifyUsage)
	cls.CategoryPath = taxonomy.Normalize(cls.CategoryPath)

	route := p.router.Route(cls)
	log.Info("routed article",
		zap.String("category", cls.CategoryPath),
		zap.String("rule", route.Rule),
		zap.String("company", company),
		zap.String("quarter", quarter))

	bullets, summarizeUsage, err := p.summarize(ctx, article, route)
	if err != nil {
		return nil, err
	}
	usage.Add(summarizeUsage)

	section, subheading := taxonomy.ParsePath(cls.CategoryPath)
	facts, err := p.asm.Assemble(assembler.Input{
		Lines:        bullets,
		Style:        route.Style,
		CategoryPath: cls.CategoryPath,
		Section:      section,
		Subheading:   subheading,
		Company:      company,
		Quarter:      quarter,
		PublishedAt:  model.DateOf(*article.PublishedAt),
		Headline:     article.Title,
	})
	if err != nil {
		return nil, err
	}

	capturedAt := time.Now().UTC()
	if article.CapturedAt != nil {
		capturedAt = article.CapturedAt.UTC()
	}
	record := model.Record{
		ID:            uuid.New().String(),
		Company:       company,
		Quarter:       quarter,
		Title:         article.Title,
		Source:        article.Source,
		URL:           article.URL,
		PublishedAt:   model.DateOf(*article.PublishedAt),
		CapturedAt:    capturedAt,
		IngestSource:  p.cfg.Ingest.Source,
		IngestVersion: p.cfg.Ingest.Version,
		CompanyMatch:  strength,
		Facts:         facts,
	}
	path, err := p.records.Append(record)
	if err != nil {
		return nil, err
	}

	usage.LogCost(p.cfg.Anthropic.SummarizerModel, "article")
	log.Info("stored record",
		zap.String("record_id", record.ID),
		zap.Int("facts", len(facts)),
		zap.String("path", path))

	return &Result{
		RecordID: record.ID,
		Company:  company,
		Quarter:  quarter,
		Route:    route.Rule,
		Facts:    len(facts),
		Path:     path,
		Usage:    usage,
	}, nil
}

// ItemResult is the per-article outcome of a batch run.
type ItemResult struct {
	URL    string
	Title  string
	Result *Result
	Err    error
}

// BatchResult aggregates a batch run. Failures are per-article and never
// abort the batch.
type BatchResult struct {
	Items     []ItemResult
	Processed int64
	Failed    int64
}

// RunBatch processes articles concurrently with a bounded worker pool,
// preserving input order in the results.
func (p *Pipeline) RunBatch(ctx context.Context, articles []model.Article) *BatchResult {
	limit := p.cfg.Batch.MaxConcurrentArticles
	if limit < 1 {
		limit = 1
	}

	batch := &BatchResult{Items: make([]ItemResult, len(articles))}
	var processed, failed atomic.Int64
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, article := range articles {
		g.Go(func() error {
			result, err := p.Run(gctx, article)
			if err != nil {
				failed.Add(1)
				zap.L().Error("article failed", zap.String("url", article.URL), zap.Error(err))
			} else {
				processed.Add(1)
			}
			mu.Lock()
			batch.Items[i] = ItemResult{URL: article.URL, Title: article.Title, Result: result, Err: err}
			mu.Unlock()
			return nil
		})
	}
	// Workers report failures through batch.Items and never return errors.
	_ = g.Wait()

	batch.Processed = processed.Load()
	batch.Failed = failed.Load()
	return batch
}
