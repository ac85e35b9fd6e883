package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sift-db/sift/internal/app"
	"github.com/sift-db/sift/internal/config"
	"github.com/sift-db/sift/internal/db"
	"github.com/sift-db/sift/internal/logger"
)

// Version info (set by ldflags)
var version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "sift [database]",
		Short: "Interactive terminal SQL client",
		Long: `sift is a terminal SQL client with a vim-style query editor and a
paginated result grid. It connects to PostgreSQL or SQLite.

Connection settings come from ~/.config/sift/config.yaml, SIFT_*
environment variables, and the flags below, in increasing precedence.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE:    run,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "config file path (default ~/.config/sift/config.yaml)")
	rootCmd.Flags().String("backend", "", "database backend: postgres or sqlite")
	rootCmd.Flags().StringP("host", "H", "", "postgres host")
	rootCmd.Flags().IntP("port", "p", 0, "postgres port")
	rootCmd.Flags().StringP("user", "u", "", "postgres user")
	rootCmd.Flags().StringP("database", "d", "", "database name")
	rootCmd.Flags().String("sslmode", "", "postgres sslmode")
	rootCmd.Flags().String("path", "", "sqlite database file")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn, error")

	bindings := map[string]string{
		"connection.backend":  "backend",
		"connection.host":     "host",
		"connection.port":     "port",
		"connection.user":     "user",
		"connection.database": "database",
		"connection.sslmode":  "sslmode",
		"connection.path":     "path",
		"logging.level":       "log-level",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "flag binding failed: %v\n", err)
			os.Exit(1)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if configPath != "" {
		viper.SetConfigFile(configPath)
	}
	if len(args) == 1 {
		viper.Set("connection.database", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logging.Level), cfg.Logging.File)
	defer logger.Close()
	logger.Info("starting sift", "version", version, "backend", cfg.Connection.Backend)

	if cfg.Connection.Backend == config.BackendPostgres {
		password, err := db.ResolvePassword(cfg.Connection.Password)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		cfg.Connection.Password = password
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	session, err := db.Open(ctx, &cfg.Connection)
	cancel()
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}

	p := tea.NewProgram(
		app.New(cfg, session),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		session.Close()
		return fmt.Errorf("running UI: %w", err)
	}

	if m, ok := finalModel.(app.Model); ok {
		m.Cleanup()
	} else {
		session.Close()
	}
	return nil
}
