// Command clinicore inspects and maintains a clinical record store from the
// command line. It opens the same storage the embedding application uses, so
// every subcommand sees migrated, seeded data.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"clinicore/internal/clinic"
	"clinicore/internal/config"
	"clinicore/internal/schema"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinicore",
		Short: "Clinical record store maintenance tool",
	}

	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(timelineCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openService wires a service from the environment and hands ownership of its
// shutdown to the caller.
func openService(ctx context.Context) (*clinic.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return clinic.Open(ctx, cfg)
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Open the store, run migrations, and install missing seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			for _, name := range []string{"drugs", "templates", "settings"} {
				fmt.Printf("%-20s %d document(s)\n", name, svc.Store().Count(name))
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show document counts and schema versions per collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			reg := schema.Default()
			fmt.Printf("%-20s %-8s %s\n", "COLLECTION", "VERSION", "DOCUMENTS")
			for _, name := range reg.Collections() {
				sc, _ := reg.Describe(name)
				fmt.Printf("%-20s v%-7d %d\n", name, sc.Version, svc.Store().Count(name))
			}
			return nil
		},
	}
}

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the financial balance, optionally windowed to a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetInt("month")
			year, _ := cmd.Flags().GetInt("year")
			if (month == 0) != (year == 0) {
				return fmt.Errorf("--month and --year must be given together")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("invalid month %d", month)
			}

			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			b, err := svc.GetBalance(clinic.BalanceFilter{
				Month: time.Month(month),
				Year:  year,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(b)
		},
	}
	cmd.Flags().Int("month", 0, "Month 1-12; requires --year")
	cmd.Flags().Int("year", 0, "Four-digit year; requires --month")
	return cmd
}

func timelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print a patient's merged clinical timeline, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			patientID, _ := cmd.Flags().GetString("patient")
			if patientID == "" {
				return fmt.Errorf("--patient is required")
			}

			svc, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()

			entries, err := svc.GetPatientTimeline(patientID)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s  %-16s %s\n", e.Date.Format(time.RFC3339), e.Collection, e.Data["id"])
			}
			return nil
		},
	}
	cmd.Flags().String("patient", "", "Patient id")
	return cmd
}
