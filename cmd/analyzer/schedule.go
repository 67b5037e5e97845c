package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Alias1177/cryptopulse/internal/scheduler"
)

func newScheduleCmd() *cobra.Command {
	var (
		spec   string
		runNow bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Analyze the watchlist on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if spec == "" {
				spec = cfg.ScheduleCron
			}
			if err := cfg.ValidateDelivery(); err != nil {
				return err
			}

			a, err := newAnalyzer(cfg, false, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			// The watchlist is re-read on every tick so edits apply without a restart.
			job := func(ctx context.Context) error {
				watchlist, err := cfg.Watchlist()
				if err != nil {
					return err
				}
				return a.Run(ctx, watchlist)
			}

			ctx := cmd.Context()
			sched := scheduler.New(ctx)
			if err := sched.Register("watchlist", spec, job); err != nil {
				return err
			}

			if runNow {
				if err := job(ctx); err != nil {
					log.Error().Err(err).Msg("Initial run failed")
				}
			}

			sched.Start()
			log.Info().Str("cron", spec).Time("next_run", sched.Next()).Msg("Waiting for schedule")
			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return sched.Stop(stopCtx)
		},
	}

	cmd.Flags().StringVar(&spec, "cron", "", "cron expression, overrides SCHEDULE_CRON")
	cmd.Flags().BoolVar(&runNow, "run-now", false, "run once immediately before waiting for the schedule")
	return cmd
}
