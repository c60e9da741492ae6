package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/models"
)

func newAlertsCmd(a *app) *cobra.Command {
	var (
		companyID string
		save      bool
	)
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Derive alerts from the current fleet data",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()
			svc := fleet.NewService(st)

			var alerts []models.Alert
			if save {
				res, err := svc.RefreshAlerts(cmd.Context(), companyID)
				if err != nil {
					return err
				}
				alerts = res.Alerts
			} else {
				alerts, err = svc.DeriveAlerts(cmd.Context(), companyID)
				if err != nil {
					return err
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPRIORITY\tTYPE\tTITLE\tDESCRIPTION")
			for _, al := range alerts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", al.ID, al.Priority, al.Type, al.Title, al.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&companyID, "company", models.DefaultCompany().ID, "Company id")
	cmd.Flags().BoolVar(&save, "save", false, "Merge the derived alerts into the stored list")
	return cmd
}
