package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

var (
	reportFrom string
	reportTo   string
)

var reportCmd = &cobra.Command{
	Use:         "report",
	Short:       "Sales and stock summaries",
	Annotations: needs(services.PermReports),
}

// cafe report sales
var reportSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Summarise orders by status and dish",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDate(reportFrom)
		if err != nil {
			return err
		}
		to, err := parseDate(reportTo)
		if err != nil {
			return err
		}
		report, err := app.Reports.Sales(cmd.Context(), from, to)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "STATUS\tORDERS\tREVENUE")
		fmt.Fprintln(w, "------\t------\t-------")
		for _, s := range report.ByStatus {
			fmt.Fprintf(w, "%s\t%d\t%.2f\n", s.Status, s.Orders, s.Revenue)
		}
		fmt.Fprintf(w, "TOTAL (excl. cancelled)\t\t%.2f\n", report.Revenue)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "DISH\tSOLD\tREVENUE")
		fmt.Fprintln(w, "----\t----\t-------")
		for _, d := range report.Dishes {
			fmt.Fprintf(w, "%s\t%d\t%.2f\n", d.Dish, d.Quantity, d.Revenue)
		}
		return w.Flush()
	},
}

// cafe report stock
var reportStockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Ingredient levels with low and warning flags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := app.Inventory.Report(cmd.Context())
		if err != nil {
			return err
		}
		return printStock(cmd.OutOrStdout(), rows)
	},
}

func init() {
	reportSalesCmd.Flags().StringVar(&reportFrom, "from", "", "first day, YYYY-MM-DD")
	reportSalesCmd.Flags().StringVar(&reportTo, "to", "", "last day, YYYY-MM-DD")
	reportCmd.AddCommand(reportSalesCmd, reportStockCmd)
}
