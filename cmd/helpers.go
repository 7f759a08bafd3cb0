package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/audio"
	"github.com/sells-group/motivation-cli/internal/dealnum"
	"github.com/sells-group/motivation-cli/internal/jobs"
	"github.com/sells-group/motivation-cli/internal/pipeline"
	"github.com/sells-group/motivation-cli/internal/scorer"
	"github.com/sells-group/motivation-cli/internal/usage"
	anthropicpkg "github.com/sells-group/motivation-cli/pkg/anthropic"
	openaipkg "github.com/sells-group/motivation-cli/pkg/openai"
)

// runnerEnv holds the initialized store and pipeline runner used by the
// analyze/batch/serve/usage commands.
type runnerEnv struct {
	Store  usage.Store
	Runner *pipeline.Runner
}

// Close releases resources held by the environment.
func (re *runnerEnv) Close() {
	if re.Store != nil {
		_ = re.Store.Close()
	}
}

// initStore builds the usage store named by store.driver.
func initStore(ctx context.Context) (usage.Store, error) {
	switch cfg.Store.Driver {
	case "jsonfile":
		return usage.NewJSONFile(cfg.Store.Path)
	case "sqlite":
		return usage.NewSQLite(cfg.Store.Path)
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store: postgres driver requires store.database_url")
		}
		return usage.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}

// initRunner sets up the store, API clients, and the pipeline runner.
// Callers should defer env.Close(). Transcription and insight are optional:
// without an OpenAI key only transcript analysis works, and without an
// Anthropic key the LLM insight is skipped.
func initRunner(ctx context.Context) (*runnerEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	ledger := usage.NewLedger(st)
	registry := jobs.New()

	var insight scorer.InsightClient
	if cfg.Anthropic.Key != "" {
		insight = scorer.NewClaudeInsight(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.HaikuModel)
	} else {
		zap.L().Debug("MOTIVATION_ANTHROPIC_KEY not set, strategic insight disabled")
	}
	analyzer := scorer.NewAnalyzer(insight)

	var (
		openaiClient openaipkg.Client
		extractor    *dealnum.Extractor
	)
	if cfg.OpenAI.Key != "" {
		openaiClient = openaipkg.NewClient(cfg.OpenAI.Key, cfg.OpenAI.RequestsPerSecond,
			openaipkg.WithTranscribeModel(cfg.OpenAI.TranscribeModel))
		extractor = dealnum.NewExtractor(openaiClient, cfg.OpenAI.ExtractModel)
	} else {
		zap.L().Warn("MOTIVATION_OPENAI_KEY not set, transcription and deal-number extraction disabled")
	}

	compressor, err := audio.NewCompressor()
	if err != nil {
		zap.L().Warn("ffmpeg not available, large uploads will be rejected", zap.Error(err))
		compressor = nil
	}

	runner := pipeline.NewRunner(analyzer, extractor, openaiClient, compressor, ledger, registry)
	return &runnerEnv{Store: st, Runner: runner}, nil
}
