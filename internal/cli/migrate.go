package cli

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/bookstore-api/internal/config"
	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/spf13/cobra"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg := config.MustLoad(rootOpts.ConfigPath)

			db, err := repository.Open(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := repository.Migrate(context.Background(), db)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}

			for _, version := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
			}

			return nil
		},
	}
}
