package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the sqlite database to the storage disk",
	Annotations: map[string]string{
		annPermission: services.PermBackup,
		annNoBackup:   "true",
	},
}

// cafe backup run
var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Write a backup now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := app.RunBackup(cmd.Context(), current.Login)
		switch report.Status {
		case services.BackupOK:
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s (%d bytes).\n", report.Path, report.Size)
			for _, p := range report.Pruned {
				fmt.Fprintf(cmd.OutOrStdout(), "  pruned %s\n", p)
			}
		case services.BackupSkipped:
			fmt.Fprintf(cmd.OutOrStdout(), "Backup skipped: %s.\n", report.Reason)
		default:
			return report.Err
		}
		return nil
	},
}

// cafe backup list
var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing backups, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := app.Backup.Files(cmd.Context())
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups yet.")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PATH\tBYTES\tMODIFIED")
		fmt.Fprintln(w, "----\t-----\t--------")
		for _, f := range files {
			fmt.Fprintf(w, "%s\t%d\t%s\n", f.Path, f.Size, f.Modified.Local().Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	backupCmd.AddCommand(backupRunCmd, backupListCmd)
}
