package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

func TestCommandsInheritPermissions(t *testing.T) {
	cases := map[string]string{
		"order create": services.PermOrders,
		"stock apply":  services.PermStock,
		"recipe save":  services.PermRecipes,
		"users role":   services.PermUsers,
		"users delete": services.PermUsers,
		"report sales": services.PermReports,
		"audit list":   services.PermAudit,
		"backup run":   services.PermBackup,
		"menu delete":  services.PermMenu,
		"menu list":    "",
		"whoami":       "",
	}
	for path, want := range cases {
		cmd := find(t, path)
		assert.Equal(t, want, permission(cmd), path)
	}
}

func TestStandaloneCommands(t *testing.T) {
	for _, path := range []string{"migrate", "migrate:rollback", "migrate:status", "seed", "login", "logout", "metrics"} {
		assert.True(t, annotated(find(t, path), annNoSession), path)
	}
	for _, path := range []string{"order list", "menu add", "backup list"} {
		assert.False(t, annotated(find(t, path), annNoSession), path)
	}

	assert.True(t, annotated(find(t, "backup run"), annNoBackup))
	assert.False(t, annotated(find(t, "order create"), annNoBackup))
}

func find(t *testing.T, path string) *cobra.Command {
	t.Helper()
	cmd, _, err := rootCmd.Find(strings.Fields(path))
	if err != nil || cmd == rootCmd {
		t.Fatalf("command %q not found: %v", path, err)
	}
	return cmd
}
