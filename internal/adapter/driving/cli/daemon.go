package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runTimeout limita cada execução agendada.
const runTimeout = 10 * time.Minute

func (app *CLIApp) newDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the report on a cron schedule until interrupted",
		Long: `Runs the daily report on a standard 5-field cron schedule, evaluated in the
report timezone. The schedule comes from --schedule, REPORT_SCHEDULE or the
config file, defaulting to "0 1 * * *".`,
		RunE: app.runDaemon,
	}
	cmd.Flags().String("schedule", "", "Cron expression (minute hour dom month dow)")
	cmd.Flags().Bool("run-now", false, "Also run once immediately on start")
	return cmd
}

func (app *CLIApp) runDaemon(cmd *cobra.Command, args []string) error {
	cliArgs, err := parseArgs(cmd)
	if err != nil {
		return err
	}
	reportApp, err := app.setup(cliArgs)
	if err != nil {
		return err
	}
	defer reportApp.Close()

	schedule, _ := cmd.Flags().GetString("schedule")
	if schedule == "" {
		schedule = reportApp.Config.Schedule
	}
	runNow, _ := cmd.Flags().GetBool("run-now")

	loc, err := reportApp.Config.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := reportApp.Logger
	job := func(ctx context.Context) {
		runCtx, cancel := context.WithTimeout(ctx, runTimeout)
		defer cancel()

		opts, err := reportApp.ReportOptions(false, nil)
		if err != nil {
			logger.Error("invalid report options", zap.Error(err))
			return
		}
		result, err := reportApp.UseCase.RunDailyReport(runCtx, opts)
		if err != nil {
			logger.Error("scheduled report failed", zap.Error(err))
			return
		}
		logger.Info("scheduled report finished",
			zap.String("date", result.Run.Window.StartDate()),
			zap.Int("records", len(result.Run.Records)),
			zap.Bool("skipped", result.Skipped))
	}

	scheduler, err := newScheduler(ctx, schedule, loc, logger, job)
	if err != nil {
		return err
	}

	if runNow {
		job(ctx)
	}

	scheduler.Start()
	for _, entry := range scheduler.Entries() {
		app.console.LogInfo("Next report at %s", entry.Next.Format(time.RFC3339))
	}
	logger.Info("daemon started", zap.String("schedule", schedule), zap.String("timezone", loc.String()))

	<-ctx.Done()
	logger.Info("shutting down, waiting for running report")
	<-scheduler.Stop().Done()
	return nil
}

// newScheduler registra job em schedule. Execuções sobrepostas são puladas.
func newScheduler(ctx context.Context, schedule string, loc *time.Location, logger *zap.Logger, job func(context.Context)) (*cron.Cron, error) {
	sched, err := cron.ParseStandard(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	cl := cronLogger{s: logger.Sugar()}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	c.Schedule(sched, cron.FuncJob(func() { job(ctx) }))
	return c, nil
}

// cronLogger adapta o zap à interface de log do cron.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}

var _ cron.Logger = cronLogger{}
