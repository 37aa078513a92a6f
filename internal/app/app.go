package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/league-importer/external/footballdata"
	"github.com/riskibarqy/league-importer/internal/config"
	"github.com/riskibarqy/league-importer/internal/domain/competition"
	"github.com/riskibarqy/league-importer/internal/domain/member"
	"github.com/riskibarqy/league-importer/internal/domain/team"
	"github.com/riskibarqy/league-importer/internal/domain/teamcompetition"
	cacherepo "github.com/riskibarqy/league-importer/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-importer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-importer/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-importer/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/league-importer/internal/platform/cache"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"github.com/riskibarqy/league-importer/internal/platform/metrics"
	"github.com/riskibarqy/league-importer/internal/platform/resilience"
	"github.com/riskibarqy/league-importer/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"golang.org/x/time/rate"
)

// Container holds the wired services shared by the API server and the batch importer.
type Container struct {
	Config        config.Config
	Logger        *logging.Logger
	ImportService *usecase.ImportLeagueService
	QueryService  *usecase.QueryService
	BatchImporter *usecase.BatchImporter
	Metrics       *metrics.Metrics

	db *sqlx.DB
}

type repositories struct {
	competitions competition.Repository
	teams        team.Repository
	members      member.Repository
	links        teamcompetition.Repository
}

func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	c := &Container{Config: cfg, Logger: logger}
	if cfg.MetricsEnabled {
		c.Metrics = metrics.New()
	}

	repos, err := c.openRepositories(ctx)
	if err != nil {
		return nil, err
	}

	var afterImport func(context.Context, string)
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheSize, cfg.CacheTTL)
		repos = repositories{
			competitions: cacherepo.NewCompetitionRepository(repos.competitions, store),
			teams:        cacherepo.NewTeamRepository(repos.teams, store),
			members:      cacherepo.NewMemberRepository(repos.members, store),
			links:        cacherepo.NewTeamCompetitionRepository(repos.links, store),
		}
		afterImport = func(ctx context.Context, code string) {
			cacherepo.InvalidateLeague(ctx, store, code)
			logger.DebugContext(ctx, "query cache invalidated", "cached_entries", store.Len())
		}
	}

	clock := clockwork.NewRealClock()
	providerLogger := logger.Named("footballdata")
	breakerCfg := cfg.FootballDataCircuit
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		providerLogger.Warn("football-data circuit breaker changed state", "from", from, "to", to)
		c.Metrics.SetCircuitState("football-data", string(to))
	}
	c.Metrics.SetCircuitState("football-data", string(resilience.CircuitStateClosed))

	clientCfg := footballdata.ClientConfig{
		BaseURL:        cfg.FootballDataBaseURL,
		Token:          cfg.FootballDataAPIKey,
		Timeout:        cfg.FootballDataTimeout,
		Logger:         providerLogger,
		CircuitBreaker: breakerCfg,
		Clock:          clock,
	}
	importCfg := usecase.ImportLeagueServiceConfig{
		MaxWorkers:  cfg.ImportMaxWorkers,
		Clock:       clock,
		Logger:      logger.Named("import"),
		AfterImport: afterImport,
	}
	if c.Metrics != nil {
		clientCfg.Observer = c.Metrics
		importCfg.Metrics = c.Metrics
	}

	provider := footballdata.NewClient(clientCfg)
	c.ImportService = usecase.NewImportLeagueService(provider, repos.competitions, repos.teams, repos.members, repos.links, importCfg)
	c.QueryService = usecase.NewQueryService(repos.competitions, repos.teams, repos.members, repos.links)
	c.BatchImporter = usecase.NewBatchImporter(c.ImportService, clock)

	return c, nil
}

func (c *Container) openRepositories(ctx context.Context) (repositories, error) {
	if c.Config.StorageDriver == config.StorageDriverMemory {
		c.Logger.Warn("using in-memory storage", "reason", "STORAGE_DRIVER=memory")
		store := memory.NewStore(memory.Seed{})
		return repositories{
			competitions: memory.NewCompetitionRepository(store),
			teams:        memory.NewTeamRepository(store),
			members:      memory.NewMemberRepository(store),
			links:        memory.NewTeamCompetitionRepository(store),
		}, nil
	}

	dsn := parsePostgresDSN(c.Config.DBURL)
	db, err := otelsqlx.Open("postgres", dsn.connString(c.Config.DBBinaryParameters),
		otelsql.WithDBName(dsn.name),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(c.Config.DBMaxOpenConns)
	db.SetMaxIdleConns(c.Config.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("ping postgres: %w", err)
	}
	otelsql.ReportDBStatsMetrics(db.DB)

	c.db = db
	return repositories{
		competitions: postgres.NewCompetitionRepository(db),
		teams:        postgres.NewTeamRepository(db),
		members:      postgres.NewMemberRepository(db),
		links:        postgres.NewTeamCompetitionRepository(db),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func NewHTTPServer(c *Container) (*http.Server, error) {
	cfg := c.Config

	routerCfg := httpapi.RouterConfig{
		Logger:             c.Logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ImportLimiter:      importLimiter(cfg.ImportRateLimitPerMinute),
	}
	if c.Metrics != nil {
		routerCfg.Metrics = c.Metrics
		routerCfg.MetricsHandler = c.Metrics.Handler()
	}

	handler := httpapi.NewHandler(c.ImportService, c.QueryService, c.Logger.Named("http"))
	router := httpapi.NewRouter(handler, routerCfg)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// importLimiter allows perMinute imports per rolling minute; zero disables limiting.
func importLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}
