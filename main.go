/* main.go
 * The "main" method for running the scouting admin service. Loads config, opens the selected store and starts the
 * HTTP server and/or the Discord bot, or imports param templates into a season and exits.
 * Usage: go run . -web=true -bot=false
 *        go run . -import=params.yaml -season=2024
 * Authors: scouting-admin contributors
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"scouting-admin/api/api"
	"scouting-admin/api/store"
	"scouting-admin/bot"
	"scouting-admin/config"
	"scouting-admin/web"
)

const connectTimeout = 15 * time.Second

func main() {
	// Flags
	webPtr := flag.String("web", "true", "Start the HTTP server: takes true or false as argument")
	botPtr := flag.String("bot", "false", "Start the Discord admin bot: takes true or false as argument")
	importPtr := flag.String("import", "", "YAML param template file to import into -season, then exit")
	seasonPtr := flag.String("season", "", "Season year used by -import")
	flag.Parse()

	runWeb, err := convertStrToBool(*webPtr)
	if err != nil {
		log.Fatalf("invalid \"web\" flag, should be true or false: %v", err)
	}
	runBot, err := convertStrToBool(*botPtr)
	if err != nil {
		log.Fatalf("invalid \"bot\" flag, should be true or false: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	if *importPtr == "" {
		if err := checkSurfaces(cfg, runBot); err != nil {
			log.Fatalf("invalid config: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	s, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Backend, err)
	}
	closeStore := func() {
		if err := s.Close(context.Background()); err != nil {
			logger.Error("failed to close store", "err", err)
		}
	}
	defer closeStore()
	// os.Exit skips deferred calls, so the store is closed first
	fail := func(msg string, err error) {
		logger.Error(msg, "err", err)
		closeStore()
		os.Exit(1)
	}

	apiPtr, err := api.NewAPI(s, cfg.Admin, logger)
	if err != nil {
		fail("failed to initialize API", err)
	}

	if *importPtr != "" {
		n, err := importTemplates(context.Background(), apiPtr, *importPtr, *seasonPtr)
		if err != nil {
			logger.Error("param import failed", "file", *importPtr, "season", *seasonPtr, "imported", n, "err", err)
			return
		}
		logger.Info("param import finished", "file", *importPtr, "season", *seasonPtr, "imported", n)
		return
	}

	if !runWeb && !runBot {
		logger.Warn("neither -web nor -bot is enabled, nothing to run")
		return
	}

	errs := make(chan error, 2)
	if runWeb {
		go func() {
			errs <- web.Start(web.Config{
				Addr:        cfg.HTTPAddr,
				API:         apiPtr,
				CORSOrigins: cfg.CORSOrigins,
				Logger:      logger,
			})
		}()
	}
	if runBot {
		b, err := bot.NewBot(cfg.DiscordToken, apiPtr, cfg.DiscordChannelID, logger)
		if err != nil {
			fail("failed to initialize bot", err)
		}
		go func() {
			errs <- b.Run()
		}()
	}

	// The bot returns nil on interrupt, the server only returns on failure
	if err := <-errs; err != nil {
		logger.Error("service stopped", "err", err)
	}
}

// openStore connects to the configured backend. For mongo the connection is pinged and the indexes are created,
// so a bad URI or missing permissions fail here instead of on the first request.
// Preconditions: Receives context bounding the connect step and a loaded config
// Postconditions: Returns an open store.Interface, or an error if it occurs
func openStore(ctx context.Context, cfg *config.Config) (store.Interface, error) {
	switch cfg.Backend {
	case config.BackendMongo:
		s, err := store.NewStore(ctx, cfg.MongoDBName, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(context.Background())
			return nil, err
		}
		return s, nil
	case config.BackendFirestore:
		return store.NewFirestoreStore(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

// importTemplates loads a YAML template file and sets every param in it on the season
// Preconditions: Receives context, API, template file path and season year
// Postconditions: Returns the number of params imported, or an error if it occurs
func importTemplates(ctx context.Context, apiPtr *api.API, path string, season string) (int, error) {
	if season == "" {
		return 0, fmt.Errorf("-season is required with -import")
	}
	templates, err := config.LoadParamTemplates(path)
	if err != nil {
		return 0, err
	}
	return apiPtr.ImportParams(ctx, season, templates)
}
