package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List and edit dishes",
}

// cafe menu list
var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dishes, err := app.Menu.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE")
		fmt.Fprintln(w, "--\t----\t-----")
		for _, d := range dishes {
			fmt.Fprintf(w, "%d\t%s\t%.2f\n", d.ID, d.Name, d.Price)
		}
		return w.Flush()
	},
}

// cafe menu add NAME PRICE
var menuAddCmd = &cobra.Command{
	Use:         "add NAME PRICE",
	Short:       "Add a dish",
	Args:        cobra.ExactArgs(2),
	Annotations: needs(services.PermMenu),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		dish, err := app.Menu.Add(cmd.Context(), current.Login, services.DishInput{Name: args[0], Price: price})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added dish #%d %s at %.2f.\n", dish.ID, dish.Name, dish.Price)
		return nil
	},
}

// cafe menu update ID NAME PRICE
var menuUpdateCmd = &cobra.Command{
	Use:         "update ID NAME PRICE",
	Short:       "Rename or reprice a dish",
	Args:        cobra.ExactArgs(3),
	Annotations: needs(services.PermMenu),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		price, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		dish, err := app.Menu.Update(cmd.Context(), current.Login, id, services.DishInput{Name: args[1], Price: price})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dish #%d is now %s at %.2f.\n", dish.ID, dish.Name, dish.Price)
		return nil
	},
}

// cafe menu delete ID
var menuDeleteCmd = &cobra.Command{
	Use:         "delete ID",
	Short:       "Delete a dish and its recipe",
	Args:        cobra.ExactArgs(1),
	Annotations: needs(services.PermMenu),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := app.Menu.Delete(cmd.Context(), current.Login, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted dish #%d.\n", id)
		return nil
	},
}

func init() {
	menuCmd.AddCommand(menuListCmd, menuAddCmd, menuUpdateCmd, menuDeleteCmd)
}
