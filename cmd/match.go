package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/coreflux/dispatchd/app"
	"github.com/coreflux/dispatchd/config"
	"github.com/coreflux/dispatchd/infra/logger"
)

var matchCmd = &cobra.Command{
	Use:   "match <request-id>",
	Short: "Dry-run the candidate ranking for a single pending request",
	Args:  cobra.ExactArgs(1),
	RunE:  matchRequest,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func matchRequest(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request id %q: %w", args[0], err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New("match-command")
	svc, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	ranking, err := svc.RankRequest(ctx, id)
	if err != nil {
		return err
	}
	if len(ranking) == 0 {
		logg.Warnf("request %d: no eligible technician", id)
		return nil
	}
	for i, c := range ranking {
		logg.Infof("%d. %s (%s) score=%.3f skill=%.2f distance=%.2fkm availability=%.2f performance=%.2f",
			i+1, c.Technician.ID, c.Technician.Name, c.Composite,
			c.SkillScore, c.DistanceKm, c.AvailabilityScore, c.PerformanceScore)
	}
	return nil
}
