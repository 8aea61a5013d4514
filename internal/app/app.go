package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/courtside/external/nbacdn"
	"github.com/riskibarqy/courtside/internal/config"
	"github.com/riskibarqy/courtside/internal/domain/artifact"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/file"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/courtside/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/courtside/internal/infrastructure/repository/redis"
	"github.com/riskibarqy/courtside/internal/interfaces/display"
	"github.com/riskibarqy/courtside/internal/interfaces/frameapi"
	idgen "github.com/riskibarqy/courtside/internal/platform/id"
	"github.com/riskibarqy/courtside/internal/platform/logging"
	"github.com/riskibarqy/courtside/internal/usecase"
)

// App is the wired ticker: the poll runner, its sinks and the optional
// frame API.
type App struct {
	Runner   *Runner
	Latest   *memory.ArtifactRepository
	FrameAPI *frameapi.Server

	closers []func() error
}

// New wires every component from cfg. Connections to redis and postgres are
// opened and pinged here so a bad address fails at startup.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if err := cfg.Display.Validate(); err != nil {
		return nil, errors.Wrap(err, "display budgets")
	}

	a := &App{Latest: memory.NewArtifactRepository()}
	sinks := artifact.Sinks{a.Latest}

	for _, name := range cfg.ArtifactSinks {
		sink, err := a.openSink(ctx, name, cfg)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		sinks = append(sinks, sink)
		logger.Info("artifact sink enabled", "sink", name)
	}

	client := nbacdn.NewClient(nbacdn.ClientConfig{
		BaseURL:          cfg.NBABaseURL,
		ScheduleTemplate: cfg.NBAScheduleTemplate,
		Timeout:          cfg.NBATimeout,
		MaxRetries:       cfg.NBAMaxRetries,
		Logger:           logger.Named("nbacdn"),
		CircuitBreaker:   cfg.NBACircuit,
	})

	schedule := usecase.NewScheduleService(client, usecase.ScheduleConfig{
		LookaheadDays: cfg.LookaheadDays,
		Workers:       cfg.LookaheadWorkers,
		CacheTTL:      cfg.ScheduleCacheTTL,
		Location:      cfg.Location,
	}, logger)

	compositor := display.NewCompositor(cfg.Display, cfg.Location, display.WithLastPlay(cfg.DisplayLastPlay))

	ticker := usecase.NewTickerService(
		client,
		schedule,
		compositor,
		sinks,
		idgen.NewUUIDGenerator(),
		usecase.TickerConfig{Team: cfg.Team.Ref(), TaggedFrames: cfg.DisplaySizeTags},
		logger,
	)

	a.Runner = NewRunner(ticker, RunnerConfig{Interval: cfg.PollInterval, Location: cfg.Location}, logger)

	if cfg.FrameAPIEnabled {
		a.FrameAPI = frameapi.NewServer(a.Latest, logger.Named("frameapi"))
	}

	return a, nil
}

func (a *App) openSink(ctx context.Context, name string, cfg config.Config) (artifact.Repository, error) {
	switch name {
	case config.SinkFile:
		repo, err := file.NewArtifactRepository(cfg.ArtifactDir)
		if err != nil {
			return nil, errors.Wrap(err, "open file sink")
		}
		return repo, nil
	case config.SinkRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, errors.Wrapf(err, "ping redis %s", cfg.RedisAddr)
		}
		return redisrepo.NewArtifactRepository(client, redisrepo.Config{
			Channel: cfg.RedisChannel,
			TTL:     cfg.RedisTTL,
		}), nil
	case config.SinkPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewArtifactRepository(db), nil
	default:
		return nil, errors.Newf("unknown artifact sink %q", name)
	}
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := PostgresDSN(cfg)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatQueryForSpan),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// Close releases connections opened by New, newest first.
func (a *App) Close() error {
	var combined error
	for i := len(a.closers) - 1; i >= 0; i-- {
		combined = errors.CombineErrors(combined, a.closers[i]())
	}
	a.closers = nil
	return combined
}
