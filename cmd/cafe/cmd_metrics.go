package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/listeners"
	"github.com/shashiranjanraj/cafedesk/pkg/metrics"
)

// cafe metrics
var metricsCmd = &cobra.Command{
	Use:         "metrics",
	Short:       "Print the metrics registry in Prometheus text format",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annNoSession: "true", annNoBackup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if levels, err := app.Inventory.Levels(cmd.Context()); err == nil {
			listeners.SetStockLevels(levels)
		}
		return metrics.WriteText(cmd.OutOrStdout())
	},
}
