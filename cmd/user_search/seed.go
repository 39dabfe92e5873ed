package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sajidahmed21/LearnR/internal/logger"
	"github.com/sajidahmed21/LearnR/internal/persistence"
	"github.com/sajidahmed21/LearnR/store"
)

func newSeedCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users from a YAML fixtures file",
		Long: `Insert every user listed in a YAML fixtures file into the database.
The whole file is loaded in one transaction: either every user is added or none is.`,
		Example: `  user_search seed --file testdata/users.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = c.settings.SeedFile
			}
			if file == "" {
				return errors.New("no fixtures file given: use --file or set seed_file")
			}

			userStore, err := c.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = userStore.Close() }()

			added, err := seedFromFile(cmd.Context(), userStore, file)
			if err != nil {
				return err
			}

			logger.Named("seed").Info(cmd.Context(), "seed complete",
				logger.String("file", file),
				logger.Int("users", added),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users from %s\n", added, file)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixtures file (defaults to seed_file)")

	return cmd
}

// seedFromFile loads, validates and inserts a fixtures file.
func seedFromFile(ctx context.Context, userStore *store.UserStore, file string) (int, error) {
	fixtures, err := persistence.LoadFixtures(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("fixtures file %s does not exist", file)
		}
		return 0, err
	}
	return userStore.Seed(ctx, fixtures.Users)
}
