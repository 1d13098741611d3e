package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/Leochens/LifeOs-sub001/internal"
	"github.com/Leochens/LifeOs-sub001/internal/index"
	"github.com/Leochens/LifeOs-sub001/internal/mcpserver"
	"github.com/Leochens/LifeOs-sub001/internal/storage"
	"github.com/Leochens/LifeOs-sub001/internal/vault"
	pkgconfig "github.com/Leochens/LifeOs-sub001/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfPresent(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if v := cmd.String("vault"); v != "" {
		cfg.Vault.Path = v
	}
	return cfg, nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func runInit(_ context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: lifeos init <vault-path>")
	}
	if err := vault.Scaffold(path); err != nil {
		return err
	}
	fmt.Printf("vault initialized at %s\n", path)
	return nil
}

func runMCP(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := vault.Scaffold(cfg.Vault.Path); err != nil {
		return fmt.Errorf("scaffold vault: %w", err)
	}
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.Index.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	// MCP talks on stdout; keep logs on stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	loader := vault.NewLoader(store, logger)
	loader.LoadAll(context.Background())
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial index sync failed", slog.String("error", err.Error()))
	}

	return mcpserver.New(loader, db).ServeStdio()
}

func main() {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file",
			DefaultText: "config/config.yaml",
			Value:       "config/config.yaml",
			Sources:     cli.EnvVars("APP_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:    "vault",
			Usage:   "Vault directory (overrides config)",
			Sources: cli.EnvVars("LIFEOS_VAULT"),
		},
	}

	cmd := &cli.Command{
		Name:   "lifeos",
		Usage:  "File-backed personal productivity vault: daily tasks, projects, habits, diary, and more",
		Action: runServe,
		Flags:  flags,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the vault API for the desktop shell",
				Action: runServe,
				Flags:  flags,
			},
			{
				Name:      "init",
				Usage:     "Scaffold a new vault directory",
				ArgsUsage: "<vault-path>",
				Action:    runInit,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP stdio server for assistant integration",
				Action: runMCP,
				Flags:  flags,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
