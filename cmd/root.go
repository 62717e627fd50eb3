package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "clover-sim",
	Short: "Generates realistic restaurant activity against a Clover sandbox merchant",
	Long: `clover-sim drives a Clover sandbox merchant through a realistic day of
restaurant traffic: meal-period order flow, discounts, modifiers, tips,
split and gift-card payments, cash events and refunds. Use it to fill a
sandbox with data worth testing against.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")
	rootCmd.PersistentFlags().String("merchant-id", "", "Sandbox merchant ID")
	rootCmd.PersistentFlags().String("api-token", "", "Sandbox API token")
	rootCmd.PersistentFlags().String("base-url", "https://sandbox.dev.clover.com", "Platform API base URL")
	rootCmd.PersistentFlags().String("ecommerce-token", "", "Ecommerce token for card-processing payments")

	viper.BindPFlag("api.merchant_id", rootCmd.PersistentFlags().Lookup("merchant-id"))
	viper.BindPFlag("api.api_token", rootCmd.PersistentFlags().Lookup("api-token"))
	viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	viper.BindPFlag("api.ecommerce_token", rootCmd.PersistentFlags().Lookup("ecommerce-token"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
