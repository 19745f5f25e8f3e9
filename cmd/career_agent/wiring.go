package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/catalog"
	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/db"
	"github.com/jonathan/career-compass/internal/labor"
	"github.com/jonathan/career-compass/internal/llm"
	"github.com/jonathan/career-compass/internal/matching"
	"github.com/jonathan/career-compass/internal/metrics"
	"github.com/jonathan/career-compass/internal/pipeline"
	"github.com/jonathan/career-compass/internal/recommend"
	"github.com/jonathan/career-compass/internal/session"
)

// runtime holds the wired service and everything that must be closed.
type runtime struct {
	catalog  *catalog.Catalog
	service  *pipeline.Service
	database *db.DB
	closers  []func()
}

// Close releases resources in reverse order of acquisition.
func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// wireOptions selects which collaborators a command needs.
type wireOptions struct {
	// sessions requires a session store; Redis unless memory_sessions is set
	sessions bool
	progress pipeline.ProgressCallback
}

// wire builds the pipeline service from configuration. Optional
// collaborators that fail to connect are logged and skipped; required ones
// fail the command.
func wire(ctx context.Context, cfg *config.Config, log *zap.Logger, opts wireOptions) (*runtime, error) {
	rt := &runtime{}
	ok := false
	defer func() {
		if !ok {
			rt.Close()
		}
	}()

	database, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if database != nil {
		rt.database = database
		rt.closers = append(rt.closers, database.Close)
	}

	rt.catalog, err = loadCatalog(ctx, cfg, database)
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded", zap.Int("careers", rt.catalog.Len()))

	rdb := connectRedis(ctx, cfg, log, opts.sessions && !cfg.Server.MemorySessions)
	if opts.sessions && !cfg.Server.MemorySessions && rdb == nil {
		return nil, fmt.Errorf("redis is required for sessions at %s (set server.memory_sessions to run without it)", cfg.Redis.Address)
	}
	if rdb != nil {
		rt.closers = append(rt.closers, func() { _ = rdb.Close() })
	}

	var laborProvider labor.Provider = labor.NewRegionalProvider()
	if rdb != nil {
		laborProvider = labor.NewCachedProvider(laborProvider, rdb, cfg.Redis.CacheTTL, log)
	}
	engine := matching.NewEngine(rt.catalog,
		matching.WithLaborProvider(laborProvider),
		matching.WithLogger(log),
		matching.WithDefaultLimit(cfg.Matching.DefaultLimit))

	provider, closeProvider, err := buildProvider(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, closeProvider)
	augmenter := recommend.New(provider,
		recommend.WithTopN(cfg.LLM.TopN),
		recommend.WithTimeout(cfg.LLM.Timeout),
		recommend.WithRetries(cfg.LLM.MaxRetries),
		recommend.WithConcurrency(cfg.LLM.Concurrency),
		recommend.WithCallInterval(cfg.LLM.CallInterval),
		recommend.WithLogger(log),
		recommend.WithRecorder(metrics.Recorder{}))

	svcOpts := []pipeline.Option{pipeline.WithLogger(log)}
	if database != nil {
		svcOpts = append(svcOpts, pipeline.WithPersister(database))
	}
	if opts.sessions {
		if cfg.Server.MemorySessions {
			svcOpts = append(svcOpts, pipeline.WithSessionStore(session.NewMemoryStore(cfg.Redis.SessionTTL)))
		} else {
			svcOpts = append(svcOpts, pipeline.WithSessionStore(session.NewRedisStore(rdb, cfg.Redis.SessionTTL)))
		}
	}
	if opts.progress != nil {
		svcOpts = append(svcOpts, pipeline.WithProgress(opts.progress))
	}
	rt.service = pipeline.New(rt.catalog, engine, augmenter, svcOpts...)

	ok = true
	return rt, nil
}

// connectDatabase opens Postgres when configured. A connection failure is
// fatal only when the catalog is read from the database.
func connectDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*db.DB, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}
	database, err := db.Connect(ctx, cfg.Database.URL)
	if err == nil {
		err = database.EnsureSchema(ctx)
		if err != nil {
			database.Close()
		}
	}
	if err != nil {
		if cfg.Catalog.FromDB || cfg.Catalog.SeedOnBoot {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Warn("database unavailable; continuing without persistence", zap.Error(err))
		return nil, nil
	}
	return database, nil
}

// loadCatalog reads the catalog from the database, a file, or the embedded
// default, seeding the database first when configured.
func loadCatalog(ctx context.Context, cfg *config.Config, database *db.DB) (*catalog.Catalog, error) {
	fileCatalog := func() (*catalog.Catalog, error) {
		if cfg.Catalog.Path != "" {
			return catalog.LoadFile(cfg.Catalog.Path)
		}
		return catalog.Default()
	}

	if database == nil || (!cfg.Catalog.FromDB && !cfg.Catalog.SeedOnBoot) {
		return fileCatalog()
	}

	if cfg.Catalog.SeedOnBoot {
		seed, err := fileCatalog()
		if err != nil {
			return nil, err
		}
		if err := database.UpsertCareers(ctx, seed.All()); err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		if !cfg.Catalog.FromDB {
			return seed, nil
		}
	}

	careers, err := database.LoadCareers(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(careers)
}

// connectRedis returns a connected client, or nil when Redis is
// unreachable. Failures are warnings only when Redis is optional.
func connectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger, required bool) redis.UniversalClient {
	if cfg.Redis.Address == "" {
		return nil
	}
	rdb, err := session.NewRedisClient(ctx, session.RedisOptions{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if required {
			log.Error("redis unavailable", zap.String("address", cfg.Redis.Address), zap.Error(err))
		} else {
			log.Debug("redis unavailable; labor estimates are not cached", zap.Error(err))
		}
		return nil
	}
	return rdb
}

// buildProvider creates the generative provider, or nil when generation is
// disabled or unconfigured.
func buildProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (llm.Provider, func(), error) {
	noop := func() {}
	if !cfg.LLMEnabled() {
		log.Info("generative provider disabled; using rule-based recommendations")
		return nil, noop, nil
	}

	llmCfg := llm.DefaultGeminiConfig().WithProvider(llm.ProviderName(cfg.LLM.Provider))
	if cfg.LLM.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.LLM.Model)
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
	if errors.Is(err, llm.ErrDisabled) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}

	provider := llm.NewClientProvider(client, llmCfg.Provider, llm.TierStandard, log)
	return provider, func() { _ = provider.Close() }, nil
}
