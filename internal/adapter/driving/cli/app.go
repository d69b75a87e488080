package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diillson/aws-daily-cost-report/internal/application/usecase"
	"github.com/diillson/aws-daily-cost-report/internal/bootstrap"
	"github.com/diillson/aws-daily-cost-report/internal/domain/entity"
	"github.com/diillson/aws-daily-cost-report/internal/domain/repository"
	"github.com/diillson/aws-daily-cost-report/internal/shared/types"
	"github.com/diillson/aws-daily-cost-report/pkg/version"
)

const serviceName = "aws-daily-cost-report"

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(configRepo repository.ConfigRepository, console types.ConsoleInterface) *CLIApp {
	app := &CLIApp{
		configRepo: configRepo,
		console:    console,
	}

	rootCmd := &cobra.Command{
		Use:           "aws-cost-report",
		Short:         "Daily AWS cost report: Cost Explorer to S3 and Slack",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Daily Cost Report version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("profile", "p", "", "AWS shared config profile")
	flags.StringP("region", "r", "", "AWS region for S3 and STS (Cost Explorer always uses us-east-1)")
	flags.StringP("bucket", "b", "", "S3 bucket that receives the sorted CSV")
	flags.StringP("channel", "c", "", "Slack channel ID for the report")
	flags.String("timezone", "", "IANA timezone that defines 'yesterday' (default UTC)")
	flags.Bool("include-budgets", false, "Add AWS Budgets status to the threaded breakdown")
	flags.Bool("skip-if-exists", false, "Do nothing when the day's CSV is already in the bucket")
	flags.BoolP("verbose", "v", false, "Debug logging")

	rootCmd.Flags().String("date", "", "Report this day (YYYY-MM-DD) instead of yesterday")
	rootCmd.Flags().Bool("dry-run", false, "Fetch and rank only; print a preview instead of writing to S3 and Slack")
	rootCmd.Flags().StringP("report-name", "n", "", "Base name for local report files (without extension)")
	rootCmd.Flags().StringSliceP("report-type", "y", nil, "Also write local copies: csv, json, pdf")
	rootCmd.Flags().StringP("dir", "d", "", "Directory for local report files (default: current directory)")

	rootCmd.AddCommand(app.newDaemonCommand(), app.newVersionCommand())

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// ExecuteContext runs the CLI application with ctx.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args; used in tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	profile, _ := cmd.Flags().GetString("profile")
	region, _ := cmd.Flags().GetString("region")
	bucket, _ := cmd.Flags().GetString("bucket")
	channel, _ := cmd.Flags().GetString("channel")
	timezone, _ := cmd.Flags().GetString("timezone")
	includeBudgets, _ := cmd.Flags().GetBool("include-budgets")
	skipIfExists, _ := cmd.Flags().GetBool("skip-if-exists")
	verbose, _ := cmd.Flags().GetBool("verbose")

	// Flags exclusivas do comando raiz; ausentes no daemon.
	date, _ := cmd.Flags().GetString("date")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile:     configFile,
		Profile:        profile,
		Region:         region,
		Bucket:         bucket,
		Channel:        channel,
		Timezone:       timezone,
		Date:           date,
		DryRun:         dryRun,
		IncludeBudgets: includeBudgets,
		SkipIfExists:   skipIfExists,
		ReportName:     reportName,
		ReportType:     reportType,
		Dir:            dir,
		Verbose:        verbose,
	}, nil
}

// setup carrega a configuração e monta os componentes do relatório.
func (app *CLIApp) setup(cliArgs *types.CLIArgs) (*bootstrap.App, error) {
	cfg, err := bootstrap.LoadConfig(app.configRepo, types.DefaultConfig(), cliArgs.ConfigFile, cliArgs.Overrides(), cliArgs.DryRun)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, serviceName)
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(cmd.OutOrStdout())
	go version.CheckLatestVersion(version.Version)

	cliArgs, err := parseArgs(cmd)
	if err != nil {
		return err
	}

	reportApp, err := app.setup(cliArgs)
	if err != nil {
		return err
	}
	defer reportApp.Close()

	loc, err := reportApp.Config.Location()
	if err != nil {
		return err
	}
	date, err := bootstrap.ParseDate(cliArgs.Date, loc)
	if err != nil {
		return err
	}
	opts, err := reportApp.ReportOptions(cliArgs.DryRun, date)
	if err != nil {
		return err
	}

	status := app.console.Status(fmt.Sprintf("Fetching AWS costs for %s...", reportApp.UseCase.ResolveWindow(opts).StartDate()))
	result, err := reportApp.UseCase.RunDailyReport(cmd.Context(), opts)
	status.Stop()
	if err != nil {
		return err
	}

	app.renderResult(result, opts)

	if len(cliArgs.ReportType) > 0 && !result.Skipped {
		paths, err := reportApp.UseCase.ExportReport(result.Run, cliArgs.ReportType, cliArgs.ReportName, cliArgs.Dir)
		for _, p := range paths {
			app.console.LogSuccess("Report saved: %s", p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (app *CLIApp) renderResult(result *usecase.ReportResult, opts usecase.ReportOptions) {
	run := result.Run
	if result.Skipped {
		app.console.LogInfo("Report for %s already stored as %s, nothing to do", run.Window.StartDate(), result.ObjectKey)
		return
	}
	if run.Empty() {
		app.console.LogWarning("%s", usecase.FormatEmptyMessage(run.Window))
		app.renderDelivery("Empty-data notice", result.Root)
		return
	}

	top := usecase.TopN(run.Records, opts.TopThread)
	table := app.console.CreateTable()
	table.AddColumn("#")
	table.AddColumn("Service")
	table.AddColumn("Operation")
	table.AddColumn("Cost")
	for i, rec := range top {
		table.AddRow(i+1, rec.Service, rec.Operation, "$"+rec.Cost.StringFixed(2))
	}
	app.console.Println(table.Render())
	app.console.Printf("Total cost: $%s\n", run.TotalCost.StringFixed(2))

	if opts.DryRun {
		app.console.Box("Summary message", usecase.FormatSummaryMessage(run, usecase.TopN(run.Records, opts.TopSummary)))
		app.console.Box("Thread reply", usecase.FormatThreadMessage(run, top))
		app.console.LogInfo("Dry run: nothing was written to s3://%s/%s or posted to Slack", opts.Bucket, result.ObjectKey)
		return
	}

	app.console.LogSuccess("Stored s3://%s/%s", opts.Bucket, result.ObjectKey)
	app.renderDelivery("Summary message", result.Root)
	app.renderDelivery("Thread reply", result.Thread)
}

func (app *CLIApp) renderDelivery(label string, d *entity.Delivery) {
	switch {
	case d == nil:
		return
	case d.Status == entity.DeliverySent:
		app.console.LogSuccess("%s posted", label)
	default:
		app.console.LogWarning("%s not posted: %s", label, d.Reason)
	}
}

func (app *CLIApp) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "AWS Daily Cost Report version: %s\n", version.FormatVersion())
		},
	}
}
