package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-console/internal/models"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		companyID string
		reset     bool
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Persist the demo data of a company",
		Long: `Persist the demo records of a company. Lists that already exist are
kept unless --reset is given. Without --company every company is seeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			ids := []string{companyID}
			if companyID == "" {
				ids = ids[:0]
				for _, c := range models.Companies {
					ids = append(ids, c.ID)
				}
			}
			for _, id := range ids {
				if err := st.SeedCompany(cmd.Context(), id, reset); err != nil {
					return err
				}
				log.WithFields(log.Fields{"company_id": id, "reset": reset}).Info("Company seeded")
				fmt.Fprintf(cmd.OutOrStdout(), "seeded company %s\n", id)
			}
			keys, err := st.StoredKeys(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d lists stored\n", len(keys))
			return nil
		},
	}
	cmd.Flags().StringVar(&companyID, "company", "", "Company id (default: all companies)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Replace existing lists with the demo data")
	return cmd
}
