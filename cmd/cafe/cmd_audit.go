package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/cafedesk/app/services"
)

var (
	auditFrom string
	auditTo   string
)

var auditCmd = &cobra.Command{
	Use:         "audit",
	Short:       "Read the audit log",
	Annotations: needs(services.PermAudit),
}

// cafe audit list --from --to
var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDate(auditFrom)
		if err != nil {
			return err
		}
		to, err := parseDate(auditTo)
		if err != nil {
			return err
		}
		entries, err := app.Audit.Between(cmd.Context(), from, to)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TIME\tUSER\tACTION\tDETAILS")
		fmt.Fprintln(w, "----\t----\t------\t-------")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.User, e.Action, e.Details)
		}
		return w.Flush()
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditFrom, "from", "", "first day, YYYY-MM-DD")
	auditListCmd.Flags().StringVar(&auditTo, "to", "", "last day, YYYY-MM-DD")
	auditCmd.AddCommand(auditListCmd)
}
