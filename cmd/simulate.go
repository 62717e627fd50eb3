package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dan1d/clover-sandbox-simulator/internal/gateways/clover"
	"github.com/dan1d/clover-sandbox-simulator/internal/models"
	"github.com/dan1d/clover-sandbox-simulator/internal/output"
	"github.com/dan1d/clover-sandbox-simulator/internal/simulator"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a day of orders, payments and refunds",
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

		date := time.Now()
		if dateStr := viper.GetString("simulate_date"); dateStr != "" {
			date, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid date %q, want YYYY-MM-DD\n", dateStr)
				os.Exit(1)
			}
		}

		ctx := context.Background()
		client := clover.NewClient(cfg.API)

		sink, err := output.NewAuditSink(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating audit sink: %v\n", err)
			os.Exit(1)
		}
		if sink != nil {
			defer func() {
				if err := sink.Close(); err != nil {
					log.Printf("Error closing audit sink: %v", err)
				}
			}()
		}

		sim := simulator.NewSimulator(cfg, simulator.Gateways{
			Catalog:    client,
			Orders:     client,
			Payments:   client,
			Refunds:    client,
			GiftCards:  client,
			CashDrawer: client,
			Audit:      sink,
		})

		days := viper.GetInt("simulate_days")
		if days < 1 {
			days = 1
		}
		orderCount := viper.GetInt("order_count")
		for i := 0; i < days; i++ {
			sim.RunDay(ctx, date.AddDate(0, 0, i), orderCount)
		}
	},
}

func init() {
	simulateCmd.Flags().String("date", "", "Date to simulate (YYYY-MM-DD, default today)")
	simulateCmd.Flags().Int("days", 1, "Number of consecutive days to simulate")
	simulateCmd.Flags().Int("orders", 0, "Fixed order count, overriding the day-of-week draw")
	simulateCmd.Flags().Int64("seed", 0, "Random seed (0 picks one from the clock)")
	simulateCmd.Flags().Float64("refund-percentage", 5.0, "Percentage of completed orders to refund at end of day")
	simulateCmd.Flags().String("audit", "", "Audit destination: none, console, file, kafka, postgres, parquet")

	viper.BindPFlag("simulate_date", simulateCmd.Flags().Lookup("date"))
	viper.BindPFlag("simulate_days", simulateCmd.Flags().Lookup("days"))
	viper.BindPFlag("order_count", simulateCmd.Flags().Lookup("orders"))
	viper.BindPFlag("seed", simulateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("refund_percentage", simulateCmd.Flags().Lookup("refund-percentage"))
	viper.BindPFlag("audit_destination", simulateCmd.Flags().Lookup("audit"))

	rootCmd.AddCommand(simulateCmd)
}
