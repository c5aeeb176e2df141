package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/SchellingSegregation/internal/config"
	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim"
	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/events"
	"github.com/mitchelldurbincs/SchellingSegregation/internal/sim/events/subscribers"
)

const clearScreen = "\033[H\033[2J"

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay to merge (loads config.<env>.yaml)")
	steps := flag.Int("steps", -1, "Maximum number of steps, 0 for unlimited (-1 to use config default)")
	threshold := flag.Float64("threshold", -1, "Satisfaction threshold in [0,1] (-1 to use config default)")
	population := flag.Int("population", -1, "Population size (-1 to use config default)")
	seed := flag.Int64("seed", -1, "RNG seed, 0 for time based (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	showBoard := flag.Bool("show-board", false, "Print the board after every step")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	// Flags override config values and go through the same validation
	override := func(key string, value interface{}) {
		if err := config.Set(key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Invalid command line override")
		}
	}
	if *steps != -1 {
		override("simulation.max_steps", *steps)
	}
	if *threshold != -1 {
		override("simulation.threshold", *threshold)
	}
	if *population != -1 {
		override("world.population", *population)
	}
	if *seed != -1 {
		override("simulation.seed", *seed)
	}
	if *logLevel != "" {
		override("logging.level", *logLevel)
	}
	if *showBoard {
		override("development.show_board", true)
	}

	cfg := config.Get()

	runSeed := cfg.Simulation.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	setupLogging(cfg.Logging)

	if *watch {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Error().Err(err).Str("file", config.ConfigFilePath()).Msg("Config reload rejected")
				return
			}
			zerolog.SetGlobalLevel(config.Get().Logging.ZerologLevel())
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
		})
	}

	strategy, err := sim.ParseVacancyStrategy(cfg.Simulation.VacancyStrategy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid vacancy strategy")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewEventBusWithLogger(log.Logger)
	if cfg.Development.LogEvents {
		eventLogger := subscribers.NewLoggerSubscriber("event_logger", log.Logger, zerolog.DebugLevel)
		eventLogger.SetDevMode(cfg.Logging.ZerologLevel() <= zerolog.DebugLevel)
		bus.Subscribe(eventLogger)
	}

	log.Info().
		Int("population", cfg.World.Population).
		Float64("frac_a", cfg.World.FracA).
		Float64("frac_b", cfg.World.FracB).
		Float64("threshold", cfg.Simulation.Threshold).
		Int64("seed", runSeed).
		Int("max_steps", cfg.Simulation.MaxSteps).
		Msg("Starting segregation simulation")

	engine, err := sim.NewEngine(ctx, sim.EngineConfig{
		Population: cfg.World.Population,
		FracA:      cfg.World.FracA,
		FracB:      cfg.World.FracB,
		Threshold:  cfg.Simulation.Threshold,
		Vacancy:    strategy,
		Rng:        rand.New(rand.NewSource(runSeed)),
		Logger:     log.Logger,
		EventBus:   bus,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create engine")
	}

	if cfg.Development.ShowBoard {
		fmt.Print(clearScreen + engine.Board())
	}

	interval := time.Duration(cfg.Simulation.TickIntervalMs) * time.Millisecond
	reason := run(ctx, engine, cfg.Simulation.MaxSteps, interval, cfg.Development.ShowBoard)

	st := engine.Stats()
	log.Info().
		Str("run_id", engine.RunID()).
		Str("reason", reason).
		Int("steps", engine.Turn()).
		Int("unsatisfied", st.Unsatisfied).
		Float64("satisfied_fraction", st.SatisfiedFraction()).
		Float64("mean_similarity", st.MeanSimilarity).
		Msg("Simulation finished")
}

// run steps the engine until it converges, reaches maxSteps or ctx is done,
// and returns why it stopped.
func run(ctx context.Context, engine *sim.Engine, maxSteps int, interval time.Duration, showBoard bool) string {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if engine.IsConverged() {
			return "converged"
		}
		if maxSteps > 0 && engine.Turn() >= maxSteps {
			return "max_steps"
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return "interrupted"
			case <-tick:
			}
		}

		result, err := engine.Step(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return "interrupted"
			}
			log.Fatal().Err(err).Int("step", engine.Turn()+1).Msg("Simulation step failed")
		}

		if showBoard {
			fmt.Print(clearScreen + engine.Board())
		}
		log.Debug().
			Int("step", engine.Turn()).
			Int("moved", result.Moved()).
			Msg("Step applied")
	}
}

func setupLogging(lc config.LoggingConfig) {
	zerolog.SetGlobalLevel(lc.ZerologLevel())

	if lc.Format == "json" || os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
