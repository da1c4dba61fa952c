package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dashboard-backend/internal/config"
	handler "dashboard-backend/internal/handlers"
	"dashboard-backend/internal/services/seed"
)

// seedTarget opens the database the seed command writes to. It returns
// the configured default groups and a release func for the connection.
type seedTarget func(ctx context.Context) (defaults []string, s handler.Seeder, release func(), err error)

func openSeedTarget(ctx context.Context) ([]string, handler.Seeder, func(), error) {
	cfg, pool, err := setup(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg.Seed.Groups, seed.NewService(pool, seed.Placeholder()), pool.Close, nil
}

// newSeedCmd builds `dashboard seed`. --groups overrides
// DASHBOARD_SEED_GROUPS.
func newSeedCmd(open seedTarget) *cobra.Command {
	var groupsFlag []string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the tables and insert the placeholder data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			defaults, seeder, release, err := open(ctx)
			if err != nil {
				return err
			}
			defer release()

			names := defaults
			if requested := config.SplitList(groupsFlag); len(requested) > 0 {
				names = requested
			}
			groups, err := seed.ParseGroups(names)
			if err != nil {
				return err
			}

			result, err := seeder.Seed(ctx, groups)
			if err != nil {
				return err
			}

			for _, g := range groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d inserted\n", g, result[g])
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&groupsFlag, "groups", "g", nil, "Groups to seed (users, customers, invoices, revenue); defaults to DASHBOARD_SEED_GROUPS")
	return cmd
}
