package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/homework-bot/internal/server"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll continuously and serve health endpoints",
		Long: `Run the bot until SIGINT or SIGTERM.

The bot polls every POLL_INTERVAL, notifies about each status change and
serves /health, /ready and /status on PORT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd, opts)
		},
	}
}

func runBot(cmd *cobra.Command, opts *options) error {
	cfg, logger, err := loadRuntime(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}
