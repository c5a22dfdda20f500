package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"price-intel/internal/logger"
	"price-intel/internal/store"
	"price-intel/internal/trace"
)

var (
	cfgFile string
	cfg     *store.Config
	rootCmd = &cobra.Command{
		Use:   "advisor",
		Short: "Price forecasts and buy-or-wait advice for retail products",
		Long: `advisor reads product price and demand histories, forecasts where they are
heading, and says whether to buy now, wait for a festival sale, or set an alert.`,
		SilenceUsage:       true,
		PersistentPreRunE:  bootstrap,
		PersistentPostRunE: shutdown,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $ADVISOR_CONFIG or ./config.yaml)")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(festivalsCmd())
	rootCmd.AddCommand(summaryCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn(ctx, "Received interrupt signal, cancelling analysis")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func shutdown(cmd *cobra.Command, _ []string) error {
	if err := trace.Shutdown(context.WithoutCancel(cmd.Context())); err != nil {
		logger.Warn(cmd.Context(), "Failed to flush traces", "error", err)
	}
	return nil
}
