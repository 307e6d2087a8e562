// Package wire provides dependency injection for the rollcall application.
// It creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	cliadapter "github.com/example/rollcall/internal/adapters/cli"
	"github.com/example/rollcall/internal/adapters/sqlite"
	"github.com/example/rollcall/internal/app"
	"github.com/example/rollcall/internal/config"
	"github.com/example/rollcall/internal/core/dedupe"
	"github.com/example/rollcall/internal/core/names"
	"github.com/example/rollcall/internal/core/votematch"
	"github.com/example/rollcall/internal/db"
	"github.com/example/rollcall/internal/ports/primary"
)

// Options are set by the command line before the first service is used.
type Options struct {
	ConfigPath string // explicit config file; empty means <Dir>/.rollcall/config.yaml
	Dir        string // empty means the working directory
	SkipFatal  bool
}

var (
	options Options

	cfg     *config.Config
	tester  *names.Tester
	baseErr error
	base    sync.Once

	voteMatchService primary.VoteMatchService
	mergeService     primary.MergeService
	nameService      primary.NameService
	logService       primary.LogService
	servicesErr      error
	once             sync.Once
)

// Configure records the command-line options. It must be called before any
// other function in this package.
func Configure(opts Options) {
	options = opts
}

// Config returns the loaded configuration.
func Config() (*config.Config, error) {
	base.Do(initBase)
	return cfg, baseErr
}

// Init loads the configuration and opens the database. Commands that touch
// storage call it first so failures surface as errors instead of exits.
func Init() error {
	once.Do(initServices)
	return servicesErr
}

// initBase loads config and builds the name tester. It needs no database.
func initBase() {
	cfg, baseErr = loadConfig()
	if baseErr != nil {
		return
	}

	nicknames := names.DefaultNicknames()
	if cfg.Nicknames.File != "" {
		data, err := os.ReadFile(cfg.Nicknames.File)
		if err != nil {
			baseErr = fmt.Errorf("failed to read nickname table: %w", err)
			return
		}
		if nicknames, err = names.ParseNicknames(data); err != nil {
			baseErr = fmt.Errorf("failed to parse nickname table %s: %w", cfg.Nicknames.File, err)
			return
		}
	}
	nicknames = nicknames.With(cfg.Nicknames.Overrides, cfg.Nicknames.Canonical)

	tester = names.NewTester(nicknames)
	nameService = app.NewNameService(tester)
}

func loadConfig() (*config.Config, error) {
	if options.ConfigPath != "" {
		return config.LoadFile(options.ConfigPath)
	}
	dir := options.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	return config.LoadConfig(dir)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	base.Do(initBase)
	if baseErr != nil {
		servicesErr = baseErr
		return
	}

	db.Configure(db.Options{
		Engine: cfg.Database.Engine,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	})
	database, err := db.GetDB()
	if err != nil {
		servicesErr = fmt.Errorf("failed to initialize database: %w", err)
		return
	}
	engine := db.Engine()

	// Create repository adapters (secondary ports) with the injected DB
	memberRepo := sqlite.NewMemberRepository(database, engine)
	serviceRepo := sqlite.NewServiceRepository(database, engine)
	voteRepo := sqlite.NewVoteRepository(database, engine)
	crawlRepo := sqlite.NewCrawlRepository(database, engine)
	logRepo := sqlite.NewResolutionLogRepository(database, engine)

	executor := app.NewEffectExecutor(memberRepo, serviceRepo, voteRepo, sqlite.NewLogWriterAdapter(logRepo))

	voteMatchService = app.NewVoteMatchService(
		crawlRepo, memberRepo, voteRepo,
		votematch.NewMatcher(tester, options.SkipFatal),
		executor,
	)
	mergeService = app.NewMergeService(
		memberRepo, serviceRepo,
		dedupe.NewPlanner(tester, options.SkipFatal),
		executor,
	)
	logService = app.NewLogService(logRepo)

	slog.Debug("services initialized", "engine", engine, "skip_fatal", options.SkipFatal)
}

func mustInit() {
	if err := Init(); err != nil {
		slog.Error("initialization failed", "error", err)
		os.Exit(1)
	}
}

func mustBase() {
	if _, err := Config(); err != nil {
		slog.Error("initialization failed", "error", err)
		os.Exit(1)
	}
}

// MatchAdapter returns a new MatchAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func MatchAdapter() *cliadapter.MatchAdapter {
	return MatchAdapterWithOutput(os.Stdout)
}

// MatchAdapterWithOutput returns a new MatchAdapter writing to the given output.
func MatchAdapterWithOutput(out io.Writer) *cliadapter.MatchAdapter {
	mustInit()
	urls := cliadapter.BioURLs{
		House:  cfg.Report.HouseBioURL,
		Senate: cfg.Report.SenateBioURL,
	}
	return cliadapter.NewMatchAdapter(voteMatchService, urls, out)
}

// MergeAdapter returns a new MergeAdapter writing to stdout.
func MergeAdapter() *cliadapter.MergeAdapter {
	return MergeAdapterWithOutput(os.Stdout)
}

// MergeAdapterWithOutput returns a new MergeAdapter writing to the given output.
func MergeAdapterWithOutput(out io.Writer) *cliadapter.MergeAdapter {
	mustInit()
	return cliadapter.NewMergeAdapter(mergeService, out)
}

// NamesAdapter returns a new NamesAdapter writing to stdout. It does not
// open the database.
func NamesAdapter() *cliadapter.NamesAdapter {
	return NamesAdapterWithOutput(os.Stdout)
}

// NamesAdapterWithOutput returns a new NamesAdapter writing to the given output.
func NamesAdapterWithOutput(out io.Writer) *cliadapter.NamesAdapter {
	mustBase()
	return cliadapter.NewNamesAdapter(nameService, out)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	return LogAdapterWithOutput(os.Stdout)
}

// LogAdapterWithOutput returns a new LogAdapter writing to the given output.
func LogAdapterWithOutput(out io.Writer) *cliadapter.LogAdapter {
	mustInit()
	return cliadapter.NewLogAdapter(logService, out)
}
