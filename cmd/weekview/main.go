package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sportkalender-service/internal/config"
	"sportkalender-service/internal/controller"
	"sportkalender-service/internal/domain/matches"
	"sportkalender-service/internal/domain/options"
	"sportkalender-service/internal/logging"
	"sportkalender-service/internal/providers"
	"sportkalender-service/internal/providers/fixture"
	"sportkalender-service/internal/providers/openligadb"
	"sportkalender-service/internal/schedule"
	"sportkalender-service/internal/timeutil"
	"sportkalender-service/internal/tvrights"
)

const loadTimeout = 30 * time.Second

type app struct {
	stdout      io.Writer
	stderr      io.Writer
	now         func() time.Time
	newProvider func(name string, cfg config.Config) (providers.MatchProvider, error)
}

func main() {
	_ = config.LoadEnvFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		now:         time.Now,
		newProvider: buildProvider,
	}
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func (a app) run(ctx context.Context, args []string) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("weekview", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	league := fs.String("league", cfg.Schedule.League, "league id (bl1, bl2, bl3, dfb, ucl)")
	season := fs.String("season", cfg.Schedule.Season, "season start year")
	week := fs.Int("week", 0, "week offset from the current week")
	providerName := fs.String("provider", cfg.Provider, "match provider (openligadb, fixture)")
	verbose := fs.Bool("v", false, "log upstream calls to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.Config{Level: level, Format: cfg.Log.Format, Output: a.stderr})

	provider, err := a.newProvider(strings.ToLower(*providerName), cfg)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 2
	}

	catalog := options.Default()
	if _, ok := catalog.League(*league); *league != "" && !ok {
		fmt.Fprintf(a.stderr, "%v: %q\n", controller.ErrUnknownLeague, *league)
		return 2
	}
	if _, ok := catalog.Season(*season); *season != "" && !ok {
		fmt.Fprintf(a.stderr, "%v: %q\n", controller.ErrUnknownSeason, *season)
		return 2
	}

	loc := timeutil.LoadZone(cfg.Schedule.Timezone)
	ctrl := controller.New(controller.Config{
		Provider:   providers.NewRetryingProvider(provider, logger, nil, *providerName, cfg.Upstream.MaxAttempts, cfg.Upstream.Backoff),
		Catalog:    catalog,
		Normalizer: matches.NewNormalizer(loc),
		Engine:     schedule.NewEngine(loc, tvrights.NewResolver(nil, loc)),
		Logger:     logger,
		League:     *league,
		Season:     *season,
		Now:        a.now,
	})
	defer ctrl.Close()

	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	snap, err := ctrl.Load(loadCtx)
	if err != nil {
		msg := snap.Error
		if msg == "" {
			msg = err.Error()
		}
		fmt.Fprintf(a.stderr, "Fehler beim Laden: %s\n", msg)
		return 1
	}

	for i := 0; i < *week; i++ {
		snap = ctrl.NextWeek()
	}
	for i := 0; i > *week; i-- {
		snap = ctrl.PreviousWeek()
	}

	render(a.stdout, snap)
	return 0
}

func buildProvider(name string, cfg config.Config) (providers.MatchProvider, error) {
	switch name {
	case config.ProviderOpenLigaDB, "":
		return openligadb.NewClient(openligadb.Config{BaseURL: cfg.Upstream.BaseURL, Timeout: cfg.Upstream.Timeout}), nil
	case config.ProviderFixture:
		return fixture.New(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
