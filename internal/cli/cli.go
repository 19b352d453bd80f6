// Package cli wires the parsers and generators into the romwiki command.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"romwiki/internal/config"
	"romwiki/internal/generator"
	"romwiki/internal/location"
	"romwiki/internal/pokedb"
	"romwiki/internal/runner"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var configPath string

	rootCmd := &cobra.Command{
		Use:   "romwiki",
		Short: "Generate ROM hack wiki pages from documentation and PokeDB records",
		Long: `romwiki parses hack documentation files into markdown pages and renders
the PokeDB record store into a browsable pokedex, tracking what the hack
changed relative to the base game.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the project YAML file")

	rootCmd.AddCommand(parseCmd(&configPath))
	rootCmd.AddCommand(generateCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [parser...]",
		Short: "Parse documentation files into markdown and the location store",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(*configPath, args)
		},
	}
}

func generateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [generator...]",
		Short: "Render PokeDB records and locations into wiki pages",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(*configPath, args)
		},
	}
}

// runParse handles the `parse` command.
func runParse(configPath string, names []string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	registry := runner.NewRegistry("parser")
	registry.Add("locations", func() error {
		p, err := location.NewWildParser(cfg, "Locations.txt")
		if err != nil {
			return err
		}
		log.Info().Str("document", p.Title()).Msg("Parsing documentation")
		return p.Run()
	})

	return run(ctx, cfg, registry, names)
}

// runGenerate handles the `generate` command.
func runGenerate(configPath string, names []string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	db := pokedb.Open(cfg.PokeDBDir())

	registry := runner.NewRegistry("generator")
	registry.Add("pokemon", generator.NewPokemon(cfg, db).Run)
	registry.Add("moves", generator.NewMoves(cfg, db).Run)
	registry.Add("abilities", generator.NewAbilities(cfg, db).Run)
	registry.Add("items", generator.NewItems(cfg, db).Run)
	registry.Add("locations", generator.NewLocations(cfg, db).Run)

	return run(ctx, cfg, registry, names)
}

// run resolves the requested component names and executes them, reporting
// failures after every component had its chance to run.
func run(ctx context.Context, cfg *config.Config, registry *runner.Registry, names []string) error {
	if len(names) == 0 {
		names = []string{"all"}
	}
	jobs, err := registry.Select(names)
	if err != nil {
		return err
	}

	failures := runner.Execute(ctx, cfg.Workers, jobs)
	if len(failures) > 0 {
		failed := make([]string, len(failures))
		for i, f := range failures {
			failed[i] = f.Name
		}
		return fmt.Errorf("%d of %d components failed: %s", len(failures), len(jobs), strings.Join(failed, ", "))
	}

	log.Info().Int("components", len(jobs)).Str("project", cfg.GameTitle).Msg("Run complete")
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
