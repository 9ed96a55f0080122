// Package cmd provides the CLI commands for terrafin.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"terrafin/internal/config"
	"terrafin/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "terrafin",
	Short: "Estimate Azure costs from Terraform plans",
	Long: `terrafin estimates the monthly cost of Azure resources declared in a
Terraform plan.

It matches each planned resource to a pricing rule, resolves rates from a
static table or the Azure Retail Prices API, and reports a per-resource
breakdown with a total.

Examples:
  terrafin estimate --plan-file plan.json
  terrafin estimate --plan-file plan.json --format markdown
  terrafin estimate --hcl-dir ./infrastructure --cost-threshold 500`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.terrafin.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("terrafin version 0.1.0")
	},
}
