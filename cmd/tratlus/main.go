package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/tratlus/internal/cli"
	"github.com/alexanderramin/tratlus/internal/config"
	"github.com/alexanderramin/tratlus/internal/db"
	"github.com/alexanderramin/tratlus/internal/llm"
	"github.com/alexanderramin/tratlus/internal/planner"
	"github.com/alexanderramin/tratlus/internal/repository"
	"github.com/alexanderramin/tratlus/internal/service"
	"github.com/alexanderramin/tratlus/internal/swipe"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Settings: .env first, then the process environment
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	// Model client. Without a provider the planner commands fail on use,
	// everything else keeps working.
	llmCfg, err := llm.LoadConfig()
	if err != nil {
		return err
	}
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	llmClient, err := llm.NewClient(llmCfg, observer)
	if err != nil {
		logger.Debug("llm client unavailable", "error", err)
		llmClient = llm.Unavailable(err)
	}

	deck, err := swipe.LoadDeck()
	if err != nil {
		return fmt.Errorf("loading card deck: %w", err)
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	dayRepo := repository.NewSQLiteDayRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	itineraryRepo := repository.NewSQLiteItineraryRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	observerUC := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Days:        service.NewDayService(dayRepo, uow, cfg.Geometry(), observerUC),
		Swipe:       service.NewSwipeService(profileRepo, deck, observerUC),
		Itineraries: service.NewItineraryService(itineraryRepo, profileRepo, planner.NewGenerator(llmClient), uow, observerUC),
	}

	// Forms, the card deck and spinners only run on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
