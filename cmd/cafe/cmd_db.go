package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/database/seeders"
	"github.com/shashiranjanraj/cafedesk/pkg/migration"
)

// cafe migrate
var migrateCmd = &cobra.Command{
	Use:         "migrate",
	Short:       "Run all pending database migrations",
	Annotations: standalone,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		n, err := migration.New(app.DB, cmd.OutOrStdout()).Run()
		if errors.Is(err, migration.ErrNoMigrations) {
			fmt.Fprintln(cmd.OutOrStdout(), "No migrations registered.")
			return nil
		}
		if err != nil {
			return err
		}
		if n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Ran %d migrations.\n", n)
		}
		return nil
	},
}

// cafe migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:         "migrate:rollback",
	Short:       "Rollback the last batch of migrations",
	Annotations: standalone,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
		n, err := migration.New(app.DB, cmd.OutOrStdout()).Rollback()
		if err != nil {
			return err
		}
		if n > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migrations.\n", n)
		}
		return nil
	},
}

// cafe migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:         "migrate:status",
	Short:       "Show the status of each migration",
	Annotations: standalone,
	RunE: func(cmd *cobra.Command, args []string) error {
		statuses, err := migration.New(app.DB, cmd.OutOrStdout()).Status()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tRAN\tBATCH")
		fmt.Fprintln(w, "---------\t---\t-----")
		for _, s := range statuses {
			ran, batch := "No", "-"
			if s.Ran {
				ran, batch = "Yes", fmt.Sprint(s.Batch)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, ran, batch)
		}
		return w.Flush()
	},
}

// cafe seed
var seedCmd = &cobra.Command{
	Use:         "seed [NAME...]",
	Short:       "Run database seeders (all when no name is given)",
	Annotations: standalone,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		if err := seeders.Run(app.DB, cmd.OutOrStdout(), args...); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Default administrator: admin / admin. Change the password with `cafe users password admin`.")
		return nil
	},
}
