package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dan1d/clover-sandbox-simulator/internal/gateways/clover"
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/dan1d/clover-sandbox-simulator/internal/seeder"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision a sandbox merchant with a catalog, staff and customers",
	Long: `seed creates the menu, modifier groups, tax rate, discounts, order
types, employees and customers the simulator needs. Seeding matches by name,
so running it against an already seeded merchant is a no-op.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cfg.API.MerchantID == "" || cfg.API.APIToken == "" {
			fmt.Fprintln(os.Stderr, "merchant-id and api-token are required")
			os.Exit(1)
		}

		client := clover.NewClient(cfg.API)
		s := seeder.New(client, client)
		if n := viper.GetInt("seed_employees"); n > 0 {
			s.EmployeeCount = n
		}
		if n := viper.GetInt("seed_customers"); n > 0 {
			s.CustomerCount = n
		}

		if err := s.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.Flags().Int("employees", 8, "Number of employees to seed up to")
	seedCmd.Flags().Int("customers", 25, "Number of customers to seed up to")

	viper.BindPFlag("seed_employees", seedCmd.Flags().Lookup("employees"))
	viper.BindPFlag("seed_customers", seedCmd.Flags().Lookup("customers"))

	rootCmd.AddCommand(seedCmd)
}
