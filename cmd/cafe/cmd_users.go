package main

import (
	"bufio"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

var userPassword string

var usersCmd = &cobra.Command{
	Use:         "users",
	Short:       "Manage operator accounts",
	Annotations: needs(services.PermUsers),
}

// cafe users list
var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := app.Users.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tLOGIN\tROLE")
		fmt.Fprintln(w, "--\t-----\t----")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Login, u.Role)
		}
		return w.Flush()
	},
}

// cafe users add LOGIN ROLE
var usersAddCmd = &cobra.Command{
	Use:   "add LOGIN ROLE",
	Short: "Create an account (roles: Administrator, Cashier, or any other name for order-only access)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordArg(cmd)
		if err != nil {
			return err
		}
		user, err := app.Users.Create(cmd.Context(), current.Login, services.NewUser{Login: args[0], Password: password, Role: args[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s).\n", user.Login, user.Role)
		return nil
	},
}

// cafe users role LOGIN ROLE
var usersRoleCmd = &cobra.Command{
	Use:   "role LOGIN ROLE",
	Short: "Change the role of an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Users.SetRole(cmd.Context(), current.Login, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", args[0], args[1])
		return nil
	},
}

// cafe users password LOGIN
var usersPasswordCmd = &cobra.Command{
	Use:   "password LOGIN",
	Short: "Set the password of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := passwordArg(cmd)
		if err != nil {
			return err
		}
		if err := app.Users.SetPassword(cmd.Context(), current.Login, args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Password of %s changed.\n", args[0])
		return nil
	},
}

// cafe users delete LOGIN
var usersDeleteCmd = &cobra.Command{
	Use:   "delete LOGIN",
	Short: "Delete an account (not your own, not the last Administrator)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Users.Delete(cmd.Context(), current.Login, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
		return nil
	},
}

func init() {
	usersAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "password (prompted when omitted)")
	usersPasswordCmd.Flags().StringVarP(&userPassword, "password", "p", "", "new password (prompted when omitted)")
	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersRoleCmd, usersPasswordCmd, usersDeleteCmd)
}

func passwordArg(cmd *cobra.Command) (string, error) {
	if userPassword != "" {
		return userPassword, nil
	}
	return promptSecret(cmd, bufio.NewReader(cmd.InOrStdin()), "Password: ")
}
