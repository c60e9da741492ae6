package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-console/internal/status"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify an expiry date or a mileage reading",
	}

	var subject string
	expiry := &cobra.Command{
		Use:   "expiry YYYY-MM-DD",
		Short: "Classify an expiry date against today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subj, err := parseSubject(subject)
			if err != nil {
				return err
			}
			e, err := status.ClassifyExpiryDate(subj, args[0], time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) days=%d\n", e.Label, e.Status, e.Days)
			return nil
		},
	}
	expiry.Flags().StringVar(&subject, "subject", "document", "license, technical-review or document")

	mileage := &cobra.Command{
		Use:   "mileage MILEAGE NEXT",
		Short: "Classify the distance to the next service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid mileage %q", args[0])
			}
			next, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid next service mileage %q", args[1])
			}
			due, _ := status.ClassifyMileage(km, nil, &next, 0)
			fmt.Fprintf(cmd.OutOrStdout(), "%s km_until=%d needs=%t\n", due.Label, due.KmUntilMaintenance, due.NeedsMaintenance)
			return nil
		},
	}

	cmd.AddCommand(expiry, mileage)
	return cmd
}

func parseSubject(s string) (status.Subject, error) {
	switch s {
	case "license":
		return status.SubjectLicense, nil
	case "technical-review":
		return status.SubjectTechnicalReview, nil
	case "document":
		return status.SubjectDocument, nil
	default:
		return 0, fmt.Errorf("unknown subject %q", s)
	}
}
