// Package cmd - estimate command
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"terrafin/adapters/terraform"
	"terrafin/adapters/terraform/hcl"
	"terrafin/adapters/webhook"
	"terrafin/clouds/azure"
	"terrafin/core/cost"
	"terrafin/core/output"
	"terrafin/core/pricing"
	"terrafin/core/types"
	"terrafin/internal/config"
	"terrafin/internal/logging"
)

var (
	planFile      string
	hclDir        string
	outputFormat  string
	outputFile    string
	slackWebhook  string
	costThreshold float64
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate monthly costs for a Terraform plan",
	Long: `Analyze a Terraform plan and produce a monthly cost estimate.

Input is either a plan JSON file (terraform show -json plan.out) or a
directory of .tf files scanned without a plan.

Examples:
  terrafin estimate --plan-file plan.json
  terrafin estimate --plan-file plan.json --format json --output-file report.json
  terrafin estimate --hcl-dir ./infrastructure --cost-threshold 250`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&planFile, "plan-file", "p", "plan.json", "path to Terraform plan JSON file")
	estimateCmd.Flags().StringVar(&hclDir, "hcl-dir", "", "scan a directory of .tf files instead of a plan file")
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, markdown, json)")
	estimateCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "write report to file instead of stdout")
	estimateCmd.Flags().StringVar(&slackWebhook, "slack-webhook", "", "Slack webhook URL for notifications")
	estimateCmd.Flags().Float64VarP(&costThreshold, "cost-threshold", "t", 0, "maximum allowed monthly cost in USD")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	changes, err := loadChanges()
	if err != nil {
		return err
	}
	logging.Info("loaded resource changes", zap.Int("count", len(changes)))

	opts := []pricing.Option{
		pricing.WithCacheTTL(time.Duration(cfg.Pricing.CacheTTLSeconds) * time.Second),
	}
	if cfg.Pricing.Endpoint != "" {
		opts = append(opts, pricing.WithEndpoint(cfg.Pricing.Endpoint))
	}
	client := pricing.NewClient(opts...)

	calc := cost.NewCalculator(azure.NewRegistry(client))
	if cmd.Flags().Changed("cost-threshold") {
		calc.SetCostThreshold(decimal.NewFromFloat(costThreshold))
	}

	breakdown := calc.CalculateCosts(changes)

	formatName := outputFormat
	if formatName == "" {
		formatName = cfg.Output.DefaultFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	report, err := calc.FormatReport(breakdown, format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(report), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logging.Info("cost report written", zap.String("file", outputFile))
	} else {
		fmt.Println(report)
	}

	notifySlack(calc, breakdown)

	if !calc.ValidateCostThreshold(breakdown) {
		return fmt.Errorf("total cost $%s exceeds threshold $%s",
			breakdown.TotalMonthlyCost.StringFixed(2),
			calc.Threshold().StringFixed(2))
	}

	return nil
}

func loadChanges() ([]types.ResourceChange, error) {
	if hclDir != "" {
		return hcl.NewScanner().Scan(hclDir)
	}

	parser := terraform.NewParser(planFile)
	if err := parser.LoadPlan(); err != nil {
		return nil, err
	}
	return parser.ResourceChanges()
}

// notifySlack sends the markdown report when a webhook is configured.
// Delivery failure never fails the run.
func notifySlack(calc *cost.Calculator, breakdown *types.CostBreakdown) {
	webhookURL := slackWebhook
	if webhookURL == "" {
		webhookURL = config.Get().Slack.WebhookURL
	}
	if webhookURL == "" {
		webhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	}
	if webhookURL == "" {
		return
	}

	report, err := calc.FormatReport(breakdown, output.FormatMarkdown)
	if err != nil {
		logging.Error("failed to render slack report", zap.Error(err))
		return
	}

	if err := webhook.NewNotifier(webhookURL).Send(report); err != nil {
		logging.Error("failed to send slack notification", zap.Error(err))
		return
	}
	logging.Info("cost report sent to slack")
}
