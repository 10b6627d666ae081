package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

var stockCmd = &cobra.Command{
	Use:         "stock",
	Short:       "Inspect and edit the ingredient ledger",
	Annotations: needs(services.PermStock),
}

// cafe stock list
var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingredient levels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := app.Inventory.Report(cmd.Context())
		if err != nil {
			return err
		}
		return printStock(cmd.OutOrStdout(), rows)
	},
}

// cafe stock set ID NAME QUANTITY UNIT
var stockSetCmd = &cobra.Command{
	Use:   "set ID NAME QUANTITY UNIT",
	Short: "Overwrite an ingredient",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		qty, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		return applyEdits(cmd, []services.StockEdit{{ID: id, Name: args[1], Quantity: qty, Unit: args[3]}})
	},
}

// cafe stock add NAME QUANTITY UNIT
var stockAddCmd = &cobra.Command{
	Use:   "add NAME QUANTITY UNIT",
	Short: "Add an ingredient",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		return applyEdits(cmd, []services.StockEdit{{Name: args[0], Quantity: qty, Unit: args[2]}})
	},
}

// cafe stock delete ID...
var stockDeleteCmd = &cobra.Command{
	Use:   "delete ID...",
	Short: "Delete ingredients and the recipe rows using them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edits := make([]services.StockEdit, 0, len(args))
		for _, arg := range args {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			edits = append(edits, services.StockEdit{ID: id, Delete: true})
		}
		return applyEdits(cmd, edits)
	},
}

// cafe stock apply FILE
var stockApplyCmd = &cobra.Command{
	Use:   "apply FILE",
	Short: "Apply a JSON array of stock edits in one transaction (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		var edits []services.StockEdit
		if err := json.NewDecoder(r).Decode(&edits); err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}
		return applyEdits(cmd, edits)
	},
}

func init() {
	stockCmd.AddCommand(stockListCmd, stockSetCmd, stockAddCmd, stockDeleteCmd, stockApplyCmd)
}

func applyEdits(cmd *cobra.Command, edits []services.StockEdit) error {
	levels, err := app.Inventory.ApplyEdits(cmd.Context(), current.Login, edits)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d ingredients.\n", len(edits))
	if len(levels) == 0 {
		return nil
	}
	rows := make([]services.StockRow, 0, len(levels))
	for _, ing := range levels {
		rows = append(rows, services.StockRow{Ingredient: ing})
	}
	return printStock(cmd.OutOrStdout(), rows)
}

func printStock(out io.Writer, rows []services.StockRow) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tUNIT\tLEVEL")
	fmt.Fprintln(w, "--\t----\t--------\t----\t-----")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%.3f\t%s\t%s\n", r.ID, r.Name, r.Quantity, r.Unit, r.Level)
	}
	return w.Flush()
}
