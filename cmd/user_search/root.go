package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sajidahmed21/LearnR/config"
	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/store"
)

// cli carries state shared by every subcommand
type cli struct {
	configPath string
	settings   *config.Settings
}

// newRootCmd creates the root command for the user_search CLI.
func newRootCmd() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:   "user_search",
		Short: "User autocomplete search service",
		Long: `user_search answers autocomplete queries over the user directory,
matching display names, login handles, or both.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadSettings()
		},
	}
	cmd.SetVersionTemplate("user_search version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file (defaults to $LEARNR_CONFIG)")

	cmd.AddCommand(newServeCmd(c))
	cmd.AddCommand(newSeedCmd(c))
	cmd.AddCommand(newQueryCmd(c))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadSettings reads the layered configuration and applies the log level.
func (c *cli) loadSettings() error {
	settings, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.settings = settings

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.SetLevelString(settings.LogLevel)
}

// openStore opens the configured user database
func (c *cli) openStore() (*store.UserStore, error) {
	userStore, err := store.NewUserStore(c.settings.DatabasePath, c.settings.QueryTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store at %s: %w", c.settings.DatabasePath, err)
	}
	return userStore, nil
}

// seedIfEmpty loads the configured seed file into an empty store.
func (c *cli) seedIfEmpty(ctx context.Context, userStore *store.UserStore, log logger.Logger) error {
	if c.settings.SeedFile == "" {
		return nil
	}

	count, err := userStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug(ctx, "store already populated, skipping seed", logger.Int("users", count))
		return nil
	}

	added, err := seedFromFile(ctx, userStore, c.settings.SeedFile)
	if err != nil {
		return err
	}
	log.Info(ctx, "seeded user store",
		logger.String("file", c.settings.SeedFile),
		logger.Int("users", added),
	)
	return nil
}
