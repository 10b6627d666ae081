package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

var recipeShowAll bool

var recipeCmd = &cobra.Command{
	Use:         "recipe",
	Short:       "Show and replace dish recipes",
	Annotations: needs(services.PermRecipes),
}

// cafe recipe show DISH_ID
var recipeShowCmd = &cobra.Command{
	Use:   "show DISH_ID",
	Short: "Show the ingredients of a dish",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var lines []services.RecipeLine
		if recipeShowAll {
			lines, err = app.Recipes.Sheet(cmd.Context(), id)
		} else {
			lines, err = app.Recipes.Resolve(cmd.Context(), id)
		}
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Dish #%d has no recipe.\n", id)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tINGREDIENT\tAMOUNT\tUNIT")
		fmt.Fprintln(w, "--\t----------\t------\t----")
		for _, l := range lines {
			fmt.Fprintf(w, "%d\t%s\t%g\t%s\n", l.IngredientID, l.Ingredient, l.Amount, l.Unit)
		}
		return w.Flush()
	},
}

// cafe recipe save DISH_ID INGREDIENT=AMOUNT...
var recipeSaveCmd = &cobra.Command{
	Use:   "save DISH_ID [INGREDIENT_ID=AMOUNT...]",
	Short: "Replace the recipe of a dish; zero amounts drop the ingredient",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amounts, err := parseRecipe(args[1:])
		if err != nil {
			return err
		}
		n, err := app.Recipes.Save(cmd.Context(), current.Login, id, amounts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recipe for dish #%d saved with %d ingredients.\n", id, n)
		return nil
	},
}

func init() {
	recipeShowCmd.Flags().BoolVarP(&recipeShowAll, "all", "a", false, "list every ingredient, with 0 for unused ones")
	recipeCmd.AddCommand(recipeShowCmd, recipeSaveCmd)
}
