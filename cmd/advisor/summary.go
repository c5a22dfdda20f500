package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"price-intel/internal/advicelog"
	"price-intel/internal/logger"
)

func summaryCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Write a per-category CSV digest of one day's advice log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc := cfg.Location()
			day := time.Now().In(loc)
			if date != "" {
				d, err := time.ParseInLocation("2006-01-02", date, loc)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
				day = d
			}

			path, err := advicelog.New(cfg.AdviceLog.Dir, loc).Summarize(day)
			if err != nil {
				logger.ErrorWithErr(cmd.Context(), "Advice summary failed", err, "date", day.Format("2006-01-02"))
				return err
			}
			if path == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "No advice recorded on %s\n", day.Format("2006-01-02"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💾 Summary saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to summarize, YYYY-MM-DD (default: today)")
	return cmd
}
