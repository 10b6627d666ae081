package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
	"github.com/shashiranjanraj/cafedesk/config"
	"github.com/shashiranjanraj/cafedesk/internal/kernel"
	"github.com/shashiranjanraj/cafedesk/pkg/auth"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/cafedesk/database/migrations"
)

// Command annotations read by boot.
const (
	annPermission = "cafe.permission" // permission the signed-in operator needs
	annNoSession  = "cafe.no-session" // runs without logging in
	annNoBackup   = "cafe.no-backup"  // skips the start-up backup
)

var (
	app     *kernel.Kernel
	current services.Principal
)

func main() {
	err := rootCmd.Execute()
	finish()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "cafe",
	Short:             "cafe: café back-office CLI",
	Long:              "Manage the menu, ingredient stock, recipes, orders and operators of a café.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: boot,
}

func init() {
	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Session
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	// Back office
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(stockCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(metricsCmd)
}

// boot builds the kernel, runs the start-up backup and resumes the session
// the command needs.
func boot(cmd *cobra.Command, _ []string) error {
	if builtin(cmd) {
		return nil
	}
	k, err := kernel.Boot(cmd.Context())
	if err != nil {
		return err
	}
	app = k
	ctx := app.Context(cmd.Context(), "command", cmd.CommandPath())
	cmd.SetContext(ctx)

	if config.BackupOnStart() && !annotated(cmd, annNoBackup) {
		if report := app.RunBackup(ctx, "system"); report.Status == services.BackupFailed {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: start-up backup failed:", report.Err)
		}
	}

	if annotated(cmd, annNoSession) {
		return nil
	}
	token, err := sessionFile().Load()
	if errors.Is(err, auth.ErrNoSession) {
		return errors.New("not logged in: run `cafe login` first")
	}
	if err != nil {
		return err
	}
	if current, err = app.Auth.Resume(ctx, token); err != nil {
		return fmt.Errorf("session expired or revoked, run `cafe login` again: %w", err)
	}

	cmd.SetContext(app.Context(ctx, "user", current.Login))

	if perm := permission(cmd); perm != "" {
		return current.Authorize(perm)
	}
	return nil
}

// finish leaves a metrics snapshot and closes the database.
func finish() {
	if path := config.MetricsTextfile(); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			fmt.Fprintln(os.Stderr, "warning: metrics textfile:", err)
		}
	}
	if app != nil {
		_ = app.Close()
	}
}

func sessionFile() *auth.SessionFile {
	return auth.NewSessionFile(config.SessionFile())
}

// annotated reports whether cmd or one of its parents carries key.
func annotated(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[key]; ok {
			return true
		}
	}
	return false
}

func permission(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if perm := c.Annotations[annPermission]; perm != "" {
			return perm
		}
	}
	return ""
}

// builtin reports cobra's own help and completion commands.
func builtin(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

func needs(perm string) map[string]string {
	return map[string]string{annPermission: perm}
}

var standalone = map[string]string{annNoSession: "true"}
