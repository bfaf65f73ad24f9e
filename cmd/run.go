package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coreflux/dispatchd/app"
	"github.com/coreflux/dispatchd/config"
	"github.com/coreflux/dispatchd/infra/logger"
)

var runLimit int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one batch of pending dispatch requests",
	RunE:  runBatch,
}

func init() {
	runCmd.Flags().IntVarP(&runLimit, "limit", "l", 0, "max pending requests to process (0 = configured limit)")
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New("run-command")
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	result, err := svc.RunBatch(ctx, runLimit)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}
	for _, asn := range result.Assignments {
		logg.Infof("request %d -> technician %s (confidence %.3f, %d alternative(s))",
			asn.RequestID, asn.TechnicianID, asn.Confidence, len(asn.Alternatives))
	}
	for _, skip := range result.Skips {
		logg.Warnf("request %d skipped: %s %s", skip.RequestID, skip.Reason, skip.Detail)
	}
	return nil
}
