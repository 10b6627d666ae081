package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/services"
)

var orderCmd = &cobra.Command{
	Use:         "order",
	Short:       "Take and settle orders",
	Annotations: needs(services.PermOrders),
}

// cafe order create DISH[:QTY]...
var orderCreateCmd = &cobra.Command{
	Use:   "create DISH_ID[:QTY]...",
	Short: "Confirm an order and deduct its ingredients",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := parseOrderLines(args)
		if err != nil {
			return err
		}
		id, err := app.Orders.Confirm(cmd.Context(), current.Login, lines)
		if err != nil {
			return err
		}
		order, err := app.Orders.Find(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order #%d confirmed.\n", id)
		return printOrder(cmd.OutOrStdout(), order)
	},
}

// cafe order list
var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orders, err := app.Orders.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tUSER\tSTATUS\tTOTAL")
		fmt.Fprintln(w, "--\t-------\t----\t------\t-----")
		for _, o := range orders {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n", o.ID, o.CreatedAt.Local().Format("2006-01-02 15:04"), o.User, o.Status, o.Total)
		}
		return w.Flush()
	},
}

// cafe order show ID
var orderShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one order with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		order, err := app.Orders.Find(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printOrder(cmd.OutOrStdout(), order)
	},
}

// cafe order pay ID
var orderPayCmd = &cobra.Command{
	Use:   "pay ID",
	Short: "Mark an order as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], models.StatusPaid)
	},
}

// cafe order cancel ID
var orderCancelCmd = &cobra.Command{
	Use:   "cancel ID",
	Short: "Cancel an order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], models.StatusCancelled)
	},
}

func init() {
	orderCmd.AddCommand(orderCreateCmd, orderListCmd, orderShowCmd, orderPayCmd, orderCancelCmd)
}

func setStatus(cmd *cobra.Command, arg string, status models.OrderStatus) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	change, err := app.Orders.SetStatus(cmd.Context(), current.Login, id, status)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if change.AlreadyInState {
		fmt.Fprintf(out, "Order #%d is already %s.\n", id, status)
		return nil
	}
	fmt.Fprintf(out, "Order #%d: %s → %s.\n", id, change.From, change.To)
	for _, ing := range change.Restored {
		fmt.Fprintf(out, "  restored %s, now %.3f %s\n", ing.Name, ing.Quantity, ing.Unit)
	}
	return nil
}

func printOrder(out io.Writer, o models.Order) error {
	fmt.Fprintf(out, "Order #%d by %s at %s, %s\n", o.ID, o.User, o.CreatedAt.Local().Format("2006-01-02 15:04:05"), o.Status)
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DISH\tQTY\tPRICE")
	fmt.Fprintln(w, "----\t---\t-----")
	for _, it := range o.Items {
		fmt.Fprintf(w, "%s\t%d\t%.2f\n", it.Dish.Name, it.Quantity, it.Dish.Price)
	}
	fmt.Fprintf(w, "TOTAL\t\t%.2f\n", o.Total)
	return w.Flush()
}
