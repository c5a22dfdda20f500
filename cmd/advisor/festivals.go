package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"price-intel/internal/festival"
	"price-intel/internal/types"
)

func festivalsCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "festivals [category]",
		Short: "List upcoming festival sales for a category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := cfg.Forecast.DefaultCategory
			if len(args) == 1 {
				category = strings.ToLower(args[0])
			}
			printFestivals(cmd.OutOrStdout(), category, time.Now().In(cfg.Location()), days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", festival.UpcomingWindowDays, "look-ahead window in days")
	return cmd
}

func upcomingFestivals(category string, now time.Time, days int) []festival.Festival {
	var out []festival.Festival
	for _, year := range []int{now.Year(), now.Year() + 1} {
		for _, f := range festival.FestivalsForYearIn(year, now.Location()) {
			d := types.DaysBetween(now, f.Date)
			if d >= 0 && d <= days && f.Matches(category) {
				out = append(out, f)
			}
		}
	}
	return out
}

func printFestivals(w io.Writer, category string, now time.Time, days int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Festival sales for %s, next %d days", category, days)))
	if names := festival.InMonth(now.Month(), category); len(names) > 0 {
		fmt.Fprintf(w, "This month: %s\n", strings.Join(names, ", "))
	}

	list := upcomingFestivals(category, now, days)
	if len(list) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No festival sales ahead."))
		return
	}

	best := festival.UpcomingImpact(category, now)
	for _, f := range list {
		marker := "  "
		if best != nil && best.Festival.ID == f.ID && best.Festival.Date.Equal(f.Date) {
			marker = "★ "
		}
		fmt.Fprintf(w, "%s%-24s %s  in %3d days  ~%2.0f%% off  demand x%.1f  window %s to %s\n",
			marker, f.Name, f.Date.Format("02 Jan 2006"), types.DaysBetween(now, f.Date),
			f.TypicalDiscount, f.DemandMultiplier,
			f.WindowStart().Format("02 Jan"), f.WindowEnd().Format("02 Jan"))
	}
}
