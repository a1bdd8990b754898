package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/vaultroll/internal"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultRunConfig(time.Now())
	cfg.ConfigPath = cmd.String("config")
	cfg.Force = cmd.Bool("force")
	cfg.ValidateOnly = cmd.Bool("validate-only")

	if year := int(cmd.Int("year")); year != 0 {
		cfg.TargetYear = year
	}
	cfg.SourceYear = cfg.TargetYear - 1
	if from := int(cmd.Int("from")); from != 0 {
		cfg.SourceYear = from
	}
	if cmd.Bool("verbose") {
		cfg.LogLevel = slog.LevelDebug
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func initConfig(_ context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if err := internal.WriteSampleConfig(path, cmd.Bool("force")); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}
	slog.Info("Sample configuration written", slog.String("path", path))
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "vaultroll",
		Usage:  "Provision next year's vault from a curated subset of the previous one",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to vault config file (.json, .yaml or .yml)",
				DefaultText: internal.DefaultConfigFile,
				Value:       internal.DefaultConfigFile,
				Sources:     cli.EnvVars("VAULTROLL_CONFIG"),
			},
			&cli.IntFlag{
				Name:        "year",
				Aliases:     []string{"y"},
				Usage:       "Year of the vault to create",
				DefaultText: "current year + 1",
				Sources:     cli.EnvVars("VAULTROLL_YEAR"),
			},
			&cli.IntFlag{
				Name:        "from",
				Usage:       "Year of the vault to clone from",
				DefaultText: "target year - 1",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite the target vault if it already exists",
			},
			&cli.BoolFlag{
				Name:  "validate-only",
				Usage: "Run all checks without changing anything",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a sample vault config file",
				Action: initConfig,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the sample config; the extension picks JSON or YAML",
						Value:   internal.DefaultConfigFile,
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Replace an existing file",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
