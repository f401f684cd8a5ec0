package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/homework-bot/internal/domain/homework"
	"github.com/preston-bernstein/homework-bot/internal/logging"
	"github.com/preston-bernstein/homework-bot/internal/server"
)

// PollOnceResult is the JSON output of poll-once.
type PollOnceResult struct {
	Changes []homework.ChangeEvent `json:"changes"`
}

func newPollOnceCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poll-once",
		Short: "Run a single poll cycle and print the detected changes",
		Long: `Run one poll cycle against the persisted state, deliver notifications
and print the changes.

With an empty state the whole history is fetched, so every homework is
reported. Exits with code 3 when the homework API cannot be reached.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPollOnce(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.human, "human", false, "Use human-readable output instead of JSON")
	return cmd
}

func runPollOnce(cmd *cobra.Command, opts *options) error {
	// Logs go to stderr so stdout stays machine readable.
	cfg, logger, err := loadRuntime(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := server.BuildComponents(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := components.Close(); cerr != nil {
			logging.Error(logger, "state store close failed", cerr)
		}
	}()

	events, err := components.Poller.RunOnce(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.human {
		if len(events) == 0 {
			fmt.Fprintln(out, "No status changes.")
			return nil
		}
		for _, ev := range events {
			old := string(ev.Old)
			if old == "" {
				old = "new"
			}
			fmt.Fprintf(out, "%s (%s): %s -> %s\n", ev.Name, ev.ID, old, ev.New)
		}
		return nil
	}

	if events == nil {
		events = []homework.ChangeEvent{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(PollOnceResult{Changes: events})
}
